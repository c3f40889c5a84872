package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bomber/internal/audio"
	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

// Flags shared by the commands that open a game session
var (
	flagDifficulty string
	flagMute       bool
	flagVolume     float64
	flagWatch      bool
)

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off (toggle in game with M)")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

// env holds everything a local session needs.
type env struct {
	cfg     config.BombermanConfig
	cfgPath string
	logger  *log.Logger
	logFile *os.File
	store   *storage.Store
	audio   *audio.Player
	watch   bool
	runtime core.RuntimeConfig
}

// newLogger writes to --log-file, or to ~/.bomber/bomber.log with --debug,
// or nowhere: the game owns the terminal.
func newLogger() (*log.Logger, *os.File, error) {
	path := flagLogFile
	if path == "" && flagDebug {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".bomber", "bomber.log")
		}
	}

	var w io.Writer = io.Discard
	var f *os.File
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bomber",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f, nil
}

// openEnv loads the config and opens the optional collaborators. Storage,
// audio and the watcher degrade to nothing when unavailable.
func openEnv() (*env, error) {
	logger, logFile, err := newLogger()
	if err != nil {
		return nil, err
	}

	cfg, cfgPath, err := config.Load(flagConfig)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}
	logger.Debug("config loaded", "path", cfgPath)

	e := &env{
		cfg:     cfg,
		cfgPath: cfgPath,
		logger:  logger,
		logFile: logFile,
		runtime: terminalRuntime(),
	}

	e.store, err = storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		e.store = nil
	}

	e.audio = audio.NewPlayer(flagVolume, logger)
	e.audio.SetMuted(flagMute)
	//nolint:errcheck // Init logs the failure and leaves the player silent
	e.audio.Init()

	if flagWatch {
		if cfgPath == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch needs a config file; run 'bomber config init' to create one")
		}
		e.watch = cfgPath != ""
	}

	return e, nil
}

// terminalRuntime sizes the screen from the terminal.
func terminalRuntime() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// play runs one game program. The config watcher lives as long as the
// program so its channels are closed for the listeners it leaves behind.
func (e *env) play(game registry.Game) (backToMenu bool, err error) {
	opts := tui.GameOptions{
		Store:      e.store,
		Audio:      e.audio,
		Logger:     e.logger,
		Player:     localPlayer(),
		HoldWindow: e.cfg.Player.HoldWindow(),
	}
	if e.watch {
		w, werr := config.NewWatcher(e.cfgPath, config.DefaultDebounce)
		if werr != nil {
			e.logger.Warn("config watching disabled", "err", werr)
		} else {
			defer w.Close()
			opts.Reloads = w.Updates
			opts.ReloadErrors = w.Errors
			e.logger.Info("watching config", "path", w.Path())
		}
	}

	runtime := e.runtime
	runtime.Seed = e.nextSeed()
	e.logger.Info("game started", "game", game.ID(), "seed", runtime.Seed)
	return tui.Run(game, runtime, opts)
}

// nextSeed returns --seed for the first game and a fresh seed afterwards.
func (e *env) nextSeed() int64 {
	seed := e.runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.runtime.Seed = time.Now().UnixNano()
	return seed
}

func (e *env) Close() {
	if e.audio != nil {
		e.audio.Close()
	}
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func localPlayer() string {
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "player"
}
