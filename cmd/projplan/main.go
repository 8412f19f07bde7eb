// Command projplan is the planner host: it reads commands line by line from
// stdin or a script file, runs them against one editing session and prints
// each result as a JSON line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/lumenrig/projplan/internal/config"
	"github.com/lumenrig/projplan/internal/dispatcher"
	"github.com/lumenrig/projplan/internal/handlers"
	"github.com/lumenrig/projplan/internal/influx"
	"github.com/lumenrig/projplan/internal/logging"
	"github.com/lumenrig/projplan/internal/session"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "projplan"
)

var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	SessionStartTime time.Time = time.Now()
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	configDir := fs.StringP("config", "c", ".", "directory holding "+config.FileName)
	script := fs.StringP("script", "s", "", "read commands from this file instead of stdin")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("storage", "memory", "storage backend (memory, sqlite, postgres)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// defaults are registered even when the file is missing
	configErr := config.Load(*configDir)
	// explicit flags win over the file
	_ = viper.BindPFlag("logLevel", fs.Lookup("log-level"))
	_ = viper.BindPFlag("storage.type", fs.Lookup("storage"))

	closeLogs, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLogs()
	if configErr != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", configErr)
	} else {
		Logger.Info("Loaded config", "file", filepath.Join(*configDir, config.FileName))
	}
	Logger.Info("Starting up...", "version", CurrentVersion, "build", BuildDate)

	cfg, err := session.ConfigFrom(config.GetDefaults(), config.GetOverlapConfig(), config.GetString("units"))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	sess := session.New(cfg, nil)

	zlog := newZerolog(config.GetString("logLevel"))

	backend, err := initStorage(config.GetStorageConfig(), zlog)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			Logger.Error("Failed to close storage backend", "error", err)
		}
	}()

	reporter := influx.NewReporter(config.GetInfluxConfig(), zlog)
	defer reporter.Close()
	checkReporter(reporter)

	eventDispatcher, err := dispatcher.New(logging.NewDispatcherLogger(Logger))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	handlerService := handlers.NewService(handlers.Dependencies{
		Session:    sess,
		Backend:    backend,
		Reporter:   reporter,
		LogManager: SlogManager,
	})
	handlerService.RegisterHandlers(eventDispatcher)
	Logger.Info("Handlers registered with dispatcher", "commands", len(eventDispatcher.Commands()))

	in := stdin
	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed, err := serve(ctx, in, stdout, eventDispatcher)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	Logger.Info("Shutting down", "failedCommands", failed)
	return nil
}

// checkReporter warns when the InfluxDB server does not answer. Runs are
// still queued; the writer retries on its own.
func checkReporter(r *influx.Reporter) {
	if !r.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ok, err := r.Ping(ctx)
	if err != nil || !ok {
		Logger.Warn("InfluxDB server not reachable", "error", err)
	}
}

// setupLogging opens the session log file and wires the optional GELF sink.
func setupLogging() (func(), error) {
	logFile, err := logging.OpenLogFile(config.GetString("logsDir"), AppName, SessionStartTime)
	if err != nil {
		return nil, err
	}

	closers := []io.Closer{logFile}
	var extra []io.Writer
	var gelfErr error
	if config.GetBool("graylog.enabled") {
		w, err := logging.NewGelfWriter(config.GetString("graylog.address"))
		if err != nil {
			gelfErr = err
		} else {
			extra = append(extra, w)
			closers = append(closers, w)
		}
	}

	SlogManager = logging.NewSlogManager()
	SlogManager.SetContextProvider(func() []slog.Attr {
		return []slog.Attr{slog.String("app", AppName), slog.String("version", CurrentVersion)}
	})
	SlogManager.Setup(logFile, config.GetString("logLevel"), extra...)
	Logger = SlogManager.Logger()
	if gelfErr != nil {
		Logger.Warn("Graylog disabled", "error", gelfErr)
	}

	return func() {
		for _, c := range closers {
			c.Close()
		}
	}, nil
}

// newZerolog builds the logger used by the database and telemetry layers.
// It writes to stderr, since stdout carries command results.
func newZerolog(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Str("app", AppName).Logger()
}
