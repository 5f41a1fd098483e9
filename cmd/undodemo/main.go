// Package main is a terminal demo of the undo engine: a one-line editor
// whose edits can be undone, redone and jumped between.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/undostack/internal/config"
	"github.com/dshills/undostack/internal/config/watcher"
	"github.com/dshills/undostack/internal/logging"
	"github.com/dshills/undostack/internal/script"
	"github.com/dshills/undostack/internal/undo"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Options holds command line settings.
type Options struct {
	ConfigPath string
	ScriptPath string
	LogPath    string
	LogLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	cfg, err = config.ApplyEnv(cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	logger, closeLog, err := openLogger(opts.LogPath, cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	manager, err := undo.New(undo.WithLimit(cfg.Undo.Limit), undo.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer manager.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	app := NewApp(screen, manager, logger)

	if opts.ScriptPath != "" {
		engine, err := script.New(manager, script.WithLogger(logger))
		if err != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer engine.Close()

		if err := engine.DoFile(opts.ScriptPath); err != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "Error: script %s: %v\n", opts.ScriptPath, err)
			return 1
		}
	}

	if opts.ConfigPath != "" {
		w, err := watcher.New(opts.ConfigPath, func(cfg config.Config, err error) {
			app.Post(func() { app.ApplyConfig(cfg, err) })
		}, watcher.WithLogger(logger))
		if err != nil {
			logger.Warn("config hot reload disabled", "path", opts.ConfigPath, "error", err)
		} else {
			defer w.Close()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		app.Post(func() { app.quit = true })
	}()

	logger.Info("undodemo started", "version", version, "limit", manager.Limit())

	if err := app.Run(); err != nil && !errors.Is(err, ErrQuit) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openLogger logs to path, or nowhere when path is empty. The terminal is
// owned by the UI so the logger never writes to stderr.
func openLogger(path string, cfg config.LogConfig) (*slog.Logger, func(), error) {
	if path == "" {
		return logging.Discard(), func() {}, nil
	}

	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return logging.New(f, level, cfg.NoColor), func() { _ = f.Close() }, nil
}

func parseFlags() Options {
	var opts Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script to run at startup")
	flag.StringVar(&opts.LogPath, "log", "", "Write logs to this file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "undodemo - undo/redo engine demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: undodemo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  UNDOSTACK_LIMIT, UNDOSTACK_LOG_LEVEL, UNDOSTACK_LOG_NO_COLOR\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("undodemo %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
