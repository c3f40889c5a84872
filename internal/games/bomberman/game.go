package bomberman

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

// GameID is the score-table id of the normal difficulty.
const GameID = "bomberman"

// bombConfirmDelay is how long the level-complete overlay stays up before the
// bomb key also continues. Enter continues at once.
const bombConfirmDelay = 500 * time.Millisecond

// Game adapts a Session to the platform's Reset/Step/Render contract.
type Game struct {
	id     string
	title  string
	preset config.DifficultyPreset

	base    config.BombermanConfig
	runtime core.RuntimeConfig
	session *Session
	err     error // level construction failure, shown instead of the board

	logger   *log.Logger
	listener Listener

	continueIn  time.Duration // auto-continue countdown after a level is complete
	completeFor time.Duration // time the level-complete overlay has been shown
}

// New creates a game that applies preset on top of cfg.
func New(cfg config.BombermanConfig, preset config.DifficultyPreset) *Game {
	id, title := ModeID(preset), "Bomber"
	if id != GameID {
		title = fmt.Sprintf("Bomber (%s)", presetTitle(preset))
	}
	return &Game{
		id:     id,
		title:  title,
		preset: preset,
		base:   cfg,
		logger: log.New(io.Discard),
	}
}

// ModeID returns the registry id of the mode that plays preset.
func ModeID(preset config.DifficultyPreset) string {
	if preset == "" || preset == config.DifficultyNormal {
		return GameID
	}
	return GameID + "_" + string(preset)
}

func presetTitle(p config.DifficultyPreset) string {
	switch p {
	case config.DifficultyEasy:
		return "Easy"
	case config.DifficultyHard:
		return "Hard"
	case config.DifficultyFixed:
		return "No Scaling"
	default:
		return "Normal"
	}
}

// ID returns the unique identifier for this game mode.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game mode.
func (g *Game) Title() string {
	return g.title
}

// SetLogger routes session logs to l.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// SetListener registers the adapter notified of simulation events.
func (g *Game) SetListener(l Listener) {
	g.listener = l
}

// Reconfigure replaces the base configuration. The running level keeps its
// settings; the new ones apply from the next level start.
func (g *Game) Reconfigure(cfg config.BombermanConfig) error {
	effective := g.effective(cfg)
	if err := validateConfig(effective); err != nil {
		return err
	}
	g.base = cfg
	if g.session != nil {
		return g.session.SetConfig(effective)
	}
	return nil
}

func (g *Game) effective(cfg config.BombermanConfig) config.BombermanConfig {
	if g.preset != "" {
		config.ApplyPreset(&cfg, g.preset)
	}
	return cfg
}

// Reset starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.continueIn = 0
	g.completeFor = 0

	s, err := NewSession(g.effective(g.base),
		WithSeed(runtime.Seed),
		WithLogger(g.logger),
		WithListener(g.listener),
	)
	if err != nil {
		g.logger.Error("cannot start run", "game", g.id, "err", err)
		g.session, g.err = nil, err
		return
	}
	g.session, g.err = s, nil
}

// Session returns the running session, or nil if the run failed to start.
func (g *Game) Session() *Session {
	return g.session
}

// Err returns the configuration error that prevented the run from starting.
func (g *Game) Err() error {
	return g.err
}

// Step advances the game by one fixed tick of 1/TickRate.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return g.Advance(in, time.Second/time.Duration(rate))
}

// Advance applies the frame's input and advances the simulation by dt.
func (g *Game) Advance(in core.InputFrame, dt time.Duration) core.StepResult {
	s := g.session
	if s == nil {
		return core.StepResult{State: g.State()}
	}

	for _, dir := range Directions {
		if in.WasReleased(actionOf(dir)) {
			_ = s.RequestMoveRelease(PlayerID, dir)
		}
	}

	switch s.Phase() {
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.restart(s.NewRun)
		}
	case PhaseLevelComplete:
		g.continueIn -= dt
		g.completeFor += dt
		bomb := in.Has(core.ActionBomb) && g.completeFor >= bombConfirmDelay
		if in.Has(core.ActionConfirm) || bomb || g.continueIn <= 0 {
			g.restart(s.NextLevel)
		}
	case PhasePlaying:
		g.applyInput(s, in)
	}

	res := s.Tick(dt)
	for _, ev := range res.Events {
		if ev.Kind == EventLevelComplete {
			g.continueIn = s.Config().Rules.ContinueDelay()
			g.completeFor = 0
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) applyInput(s *Session, in core.InputFrame) {
	if in.Has(core.ActionPause) {
		_ = s.RequestPauseToggle()
	}
	if s.Paused() {
		if in.Has(core.ActionRestart) {
			g.restart(s.RestartLevel)
		}
		return
	}
	for _, dir := range Directions {
		if in.Has(actionOf(dir)) {
			_ = s.RequestMove(PlayerID, dir)
		}
	}
	if in.Has(core.ActionBomb) {
		_ = s.RequestBombPlacement(PlayerID)
	}
}

// restart runs a level transition; a configuration failure stops the run.
func (g *Game) restart(transition func() error) {
	err := transition()
	switch {
	case err == nil:
	case errors.Is(err, ErrConfiguration):
		g.logger.Error("level transition failed", "game", g.id, "err", err)
		g.session, g.err = nil, err
	default:
		g.logger.Debug("level transition rejected", "game", g.id, "err", err)
	}
}

func actionOf(d Direction) core.Action {
	switch d {
	case DirUp:
		return core.ActionUp
	case DirDown:
		return core.ActionDown
	case DirLeft:
		return core.ActionLeft
	case DirRight:
		return core.ActionRight
	default:
		return core.ActionNone
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.session
	if s == nil {
		return core.GameState{GameOver: g.err != nil, Reason: "Configuration error"}
	}
	return core.GameState{
		Score:    s.Score(),
		Level:    s.Level(),
		Lives:    s.Lives(),
		GameOver: s.Over(),
		Paused:   s.Paused(),
		Reason:   s.Reason().String(),
	}
}

// Register the difficulty modes with the registry
func init() {
	for _, preset := range []config.DifficultyPreset{
		config.DifficultyNormal,
		config.DifficultyEasy,
		config.DifficultyHard,
		config.DifficultyFixed,
	} {
		p := preset
		registry.Register(ModeID(p), func(cfg config.BombermanConfig) registry.Game {
			return New(cfg, p)
		})
	}
}
