package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomber/internal/audio"
	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomberman"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 7}

func newTestModel(t *testing.T, opts GameOptions) GameModel {
	t.Helper()
	game := bomberman.New(config.DefaultBombermanConfig(), config.DifficultyNormal)
	m := NewGameModel(game, testRuntime, opts)
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestGameModelQuit(t *testing.T) {
	m := newTestModel(t, GameOptions{})

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false, expected true")
	}
	if !isQuit(cmd) {
		t.Error("quit key did not return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() after quit is not empty")
	}
}

func TestGameModelEmbeddedNeverQuitsProgram(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	m.embedded = true

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false, expected true")
	}
	if cmd != nil {
		t.Error("embedded model returned a command on quit")
	}
}

func TestGameModelTickAdvances(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	start := time.Unix(1000, 0)

	m, cmd := update(t, m, TickMsg(start))
	if cmd == nil {
		t.Fatal("tick did not schedule the next tick")
	}
	if m.State().Level != 1 || m.State().Lives != config.DefaultBombermanConfig().Player.Lives {
		t.Errorf("State() = %+v, expected level 1 with full lives", m.State())
	}

	m, _ = update(t, m, TickMsg(start.Add(50*time.Millisecond)))
	if m.State().GameOver {
		t.Error("game over after two ticks")
	}
}

func TestGameModelBackOnlyWhenPausedOrOver(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	start := time.Unix(1000, 0)
	m, _ = update(t, m, TickMsg(start))

	m, cmd := update(t, m, runeKey('b'))
	if m.BackToMenu() || cmd != nil {
		t.Error("back accepted while playing")
	}

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg(start.Add(20*time.Millisecond)))
	if !m.State().Paused {
		t.Fatal("State().Paused = false after pause key")
	}

	m, cmd = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("BackToMenu() = false while paused, expected true")
	}
	if !isQuit(cmd) {
		t.Error("back did not end the standalone program")
	}
}

func TestGameModelDirectionReleasedAfterHoldWindow(t *testing.T) {
	m := newTestModel(t, GameOptions{HoldWindow: 40 * time.Millisecond})
	start := time.Unix(1000, 0)
	m, _ = update(t, m, TickMsg(start))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if !m.hold.Held(core.ActionRight) {
		t.Fatal("Right is not held after the key press")
	}
	m, _ = update(t, m, TickMsg(start.Add(20*time.Millisecond)))
	if !m.hold.Held(core.ActionRight) {
		t.Error("Right released before the hold window")
	}
	m, _ = update(t, m, TickMsg(start.Add(70*time.Millisecond)))
	if m.hold.Held(core.ActionRight) {
		t.Error("Right still held after the hold window")
	}
}

func TestGameModelMute(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	m, _ = update(t, m, runeKey('m'))
	if m.toast != "Sound unavailable" {
		t.Errorf("toast = %q, expected %q", m.toast, "Sound unavailable")
	}

	player := audio.NewPlayer(0.5, nil)
	m = newTestModel(t, GameOptions{Audio: player})
	m, _ = update(t, m, runeKey('m'))
	if !player.Muted() {
		t.Error("Muted() = false after mute key")
	}
	if m.toast != "Sound off" {
		t.Errorf("toast = %q, expected %q", m.toast, "Sound off")
	}
	m, _ = update(t, m, runeKey('m'))
	if player.Muted() || m.toast != "Sound on" {
		t.Errorf("second mute key: Muted() = %v, toast = %q", player.Muted(), m.toast)
	}
}

func TestGameModelConfigReload(t *testing.T) {
	reloads := make(chan config.BombermanConfig, 1)
	m := newTestModel(t, GameOptions{Reloads: reloads})

	cfg := config.DefaultBombermanConfig()
	cfg.Player.HoldWindowMS = 250
	m, cmd := update(t, m, ConfigReloadMsg{Config: cfg})
	if m.toast != "Config reloaded, applies next level" {
		t.Errorf("toast = %q after valid reload", m.toast)
	}
	if m.hold.window != 250*time.Millisecond {
		t.Errorf("hold window = %v, expected 250ms", m.hold.window)
	}
	if cmd == nil {
		t.Error("reload did not keep listening")
	}

	cfg.Player.Lives = 0
	m, _ = update(t, m, ConfigReloadMsg{Config: cfg})
	if m.toast != "Config rejected, see log" {
		t.Errorf("toast = %q after invalid reload", m.toast)
	}
}

func TestGameModelWaitForReload(t *testing.T) {
	if waitForReload(nil) != nil {
		t.Error("waitForReload(nil) returned a command")
	}

	ch := make(chan config.BombermanConfig, 1)
	ch <- config.DefaultBombermanConfig()
	msg := waitForReload(ch)()
	if _, ok := msg.(ConfigReloadMsg); !ok {
		t.Errorf("waitForReload() msg = %T, expected ConfigReloadMsg", msg)
	}

	close(ch)
	if msg := waitForReload(ch)(); msg != nil {
		t.Errorf("waitForReload() on closed channel = %v, expected nil", msg)
	}
}

func TestGameModelSaveScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	m := newTestModel(t, GameOptions{Store: store, Player: "alice"})
	m.gameState = core.GameState{GameOver: true, Score: 700, Level: 3, Reason: "time"}
	m.saveScore()

	scores, err := store.TopScores(bomberman.GameID, 10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("len(scores) = %d, expected 1", len(scores))
	}
	got := scores[0]
	if got.Score != 700 || got.Level != 3 || got.Reason != "time" || got.Player != "alice" {
		t.Errorf("saved entry = %+v", got)
	}

	// Runs without points are not recorded
	m.gameState = core.GameState{GameOver: true, Score: 0, Level: 1, Reason: "lives"}
	m.saveScore()
	if scores, _ = store.TopScores(bomberman.GameID, 10); len(scores) != 1 {
		t.Errorf("len(scores) = %d after zero-score run, expected 1", len(scores))
	}
}

func TestGameModelView(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	m, _ = update(t, m, TickMsg(time.Unix(1000, 0)))

	view := m.View()
	for _, want := range []string{"Level 1", "Score 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m.showToast("Hello toast")
	if !strings.Contains(m.View(), "Hello toast") {
		t.Error("View() does not show the toast")
	}
}

func TestGameModelResizeKeepsRun(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	start := time.Unix(1000, 0)
	m, _ = update(t, m, TickMsg(start))
	m, _ = update(t, m, TickMsg(start.Add(500*time.Millisecond)))

	game := m.game.(*bomberman.Game)
	before := game.Session().Now()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.Session().Now() != before {
		t.Error("resize restarted the run")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 100x40", m.screen.Width(), m.screen.Height())
	}
}

func TestSessionModelFlow(t *testing.T) {
	s := NewSessionModel(SessionOptions{
		Runtime:  testRuntime,
		Game:     config.DefaultBombermanConfig(),
		Username: "bob",
	})

	step := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := s.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update() returned %T, expected SessionModel", next)
		}
		s = sm
		return cmd
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("screen = %v after tab, expected scores", s.screen)
	}
	if !strings.Contains(s.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}

	step(runeKey('b'))
	if s.screen != screenMenu {
		t.Fatalf("screen = %v after back, expected menu", s.screen)
	}

	if cmd := step(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Error("starting a game returned no command")
	}
	if s.screen != screenGame {
		t.Fatalf("screen = %v after enter, expected game", s.screen)
	}
	if s.gameModel.opts.Player != "bob" {
		t.Errorf("player = %q, expected bob", s.gameModel.opts.Player)
	}

	if cmd := step(runeKey('q')); !isQuit(cmd) {
		t.Error("quit inside the game did not end the session")
	}
	if s.View() != "" {
		t.Error("View() after quit is not empty")
	}
}
