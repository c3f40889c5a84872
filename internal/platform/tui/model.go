package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/audio"
	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomberman"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

const (
	defaultHoldWindow = 180 * time.Millisecond
	toastDuration     = 2 * time.Second
)

// ConfigReloadMsg carries a configuration reloaded from disk.
type ConfigReloadMsg struct {
	Config config.BombermanConfig
}

// ConfigErrorMsg reports a config file that failed to reload.
type ConfigErrorMsg struct {
	Err error
}

// GameOptions wires the optional collaborators of a GameModel.
type GameOptions struct {
	Store        *storage.Store
	Audio        *audio.Player                 // nil plays silently
	Reloads      <-chan config.BombermanConfig // hot-reloaded configs, may be nil
	ReloadErrors <-chan error
	Logger       *log.Logger
	Player       string        // name stored with scores
	HoldWindow   time.Duration // how long a direction stays held without a key repeat
}

// Optional game capabilities, detected by type assertion.
type (
	listenerSetter interface {
		SetListener(bomberman.Listener)
	}
	loggerSetter interface {
		SetLogger(*log.Logger)
	}
	reconfigurer interface {
		Reconfigure(config.BombermanConfig) error
	}
)

// GameModel runs one game mode inside Bubble Tea. It feeds real frame
// deltas to the simulation and synthesizes key releases for held directions.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       GameOptions
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	hold       *holdTracker
	keyMapper  *KeyMapper
	gameState  core.GameState
	lastTick   time.Time
	embedded   bool

	toast     string
	toastLeft time.Duration

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a model for game with the given collaborators.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.HoldWindow <= 0 {
		opts.HoldWindow = defaultHoldWindow
	}

	if ls, ok := game.(loggerSetter); ok {
		ls.SetLogger(opts.Logger)
	}
	if ls, ok := game.(listenerSetter); ok && opts.Audio != nil {
		ls.SetListener(opts.Audio)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		hold:       newHoldTracker(opts.HoldWindow),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the run, the tick loop and the config listeners.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(
		tickCmd(m.config.TickRate),
		waitForReload(m.opts.Reloads),
		waitForReloadError(m.opts.ReloadErrors),
	)
}

// waitForReload blocks on the next reloaded config.
func waitForReload(ch <-chan config.BombermanConfig) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadMsg{Config: cfg}
	}
}

func waitForReloadError(ch <-chan error) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigErrorMsg{Err: err}
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board is re-laid out on every render; the run keeps going.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ConfigReloadMsg:
		m.applyReload(msg.Config)
		return m, waitForReload(m.opts.Reloads)

	case ConfigErrorMsg:
		m.opts.Logger.Warn("config reload rejected", "err", msg.Err)
		m.showToast("Config rejected, see log")
		return m, waitForReloadError(m.opts.ReloadErrors)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, m.exit()
	}

	switch {
	case action.IsDirection():
		m.hold.Press(action, &m.inputFrame)
	case action == core.ActionMute:
		m.toggleMute()
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, m.exit()
		}
	case action == core.ActionPause:
		m.hold.ReleaseAll(&m.inputFrame)
		m.inputFrame.Set(action)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

func (m GameModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// handleTick advances the simulation by the time since the previous tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Second / time.Duration(max(m.config.TickRate, 1))
	if !m.lastTick.IsZero() && now.After(m.lastTick) {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	m.hold.Advance(dt, &m.inputFrame)
	result := m.game.Advance(m.inputFrame, dt)
	wasOver := m.gameState.GameOver
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !wasOver {
		m.hold.ReleaseAll(&m.inputFrame)
	}
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	if m.toastLeft > 0 {
		m.toastLeft -= dt
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScore records a finished run. Runs that never scored are not kept.
func (m *GameModel) saveScore() {
	st := m.gameState
	if m.opts.Store == nil || st.Score <= 0 {
		return
	}
	_, err := m.opts.Store.SaveScore(storage.ScoreEntry{
		GameID: m.game.ID(),
		Score:  st.Score,
		Level:  st.Level,
		Reason: st.Reason,
		Player: m.opts.Player,
	})
	if err != nil {
		m.opts.Logger.Error("cannot save score", "game", m.game.ID(), "err", err)
		return
	}
	m.opts.Logger.Info("score saved", "game", m.game.ID(), "score", st.Score, "level", st.Level)
}

func (m *GameModel) applyReload(cfg config.BombermanConfig) {
	if cfg.Player.HoldWindowMS > 0 {
		m.hold.SetWindow(cfg.Player.HoldWindow())
	}
	r, ok := m.game.(reconfigurer)
	if !ok {
		return
	}
	if err := r.Reconfigure(cfg); err != nil {
		m.opts.Logger.Warn("config reload rejected", "err", err)
		m.showToast("Config rejected, see log")
		return
	}
	m.opts.Logger.Info("config reloaded", "game", m.game.ID())
	m.showToast("Config reloaded, applies next level")
}

func (m *GameModel) toggleMute() {
	if m.opts.Audio == nil {
		m.showToast("Sound unavailable")
		return
	}
	if m.opts.Audio.ToggleMute() {
		m.showToast("Sound on")
	} else {
		m.showToast("Sound off")
	}
}

func (m *GameModel) showToast(text string) {
	m.toast = text
	m.toastLeft = toastDuration
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.showToast("Screenshot failed")
		return
	}
	dir := filepath.Join(home, ".bomber", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create screenshot directory", "err", err)
		m.showToast("Screenshot failed")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "err", err)
		m.showToast("Screenshot failed")
		return
	}
	m.showToast("Saved " + filepath.Base(path))
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.toastLeft > 0 && m.toast != "" && m.screen.Height() > 0 {
		m.screen.DrawTextCentered(m.screen.Height()-1, " "+m.toast+" ", core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the terminal until the user quits or goes back.
// Returns true if the user asked for the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(GameModel); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
