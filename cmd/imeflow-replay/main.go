// Package main is the entry point for the imeflow trace replay tool.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/imeflow/internal/config"
	"github.com/dshills/imeflow/internal/logger"
	"github.com/dshills/imeflow/internal/trace"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}
	applyFlags(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	level, _ := logger.ParseLevel(cfg.Logging.Level)
	log := logger.New(level, os.Stderr)

	if err := replayOnce(opts.tracePath, cfg, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if !cfg.Replay.Watch {
		return 0
	}

	watcher, err := trace.NewWatcher(opts.tracePath,
		time.Duration(cfg.Replay.DebounceMS)*time.Millisecond, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer watcher.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	log.Info("watching trace file", "path", opts.tracePath)
	for {
		select {
		case <-watcher.Changes():
			if err := replayOnce(opts.tracePath, cfg, log); err != nil {
				// Keep watching; the next save may fix it.
				log.Error("replay failed", "error", err)
			}
		case <-signals:
			return 0
		}
	}
}

// replayOnce reads, decodes and replays the trace, printing the
// summary to stdout.
func replayOnce(path string, cfg config.Config, log *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read trace: %w", err)
	}
	tr, err := trace.Decode(data)
	if err != nil {
		return err
	}

	res, err := trace.Replay(tr, cfg.PlatformValue(), log)
	if err != nil {
		return err
	}
	summary, err := res.Summary()
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

type options struct {
	configPath string
	tracePath  string
	platform   string
	logLevel   string
	watch      bool
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.tracePath, "trace", "", "Path to trace file")
	flag.StringVar(&opts.tracePath, "t", "", "Path to trace file (shorthand)")
	flag.StringVar(&opts.platform, "platform", "", "Platform policy (default, android)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.watch, "watch", false, "Re-run when the trace file changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "imeflow-replay - replay recorded input traces\n\n")
		fmt.Fprintf(os.Stderr, "Usage: imeflow-replay -trace FILE [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  imeflow-replay -t session.json                Replay a trace\n")
		fmt.Fprintf(os.Stderr, "  imeflow-replay -t session.json -watch         Replay on every save\n")
		fmt.Fprintf(os.Stderr, "  imeflow-replay -t session.json -platform default\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("imeflow-replay %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	if opts.tracePath == "" {
		// The first positional argument also names the trace.
		if args := flag.Args(); len(args) > 0 {
			opts.tracePath = args[0]
		}
	}
	if opts.tracePath == "" {
		fmt.Fprintf(os.Stderr, "Error: no trace file given\n\n")
		flag.Usage()
		os.Exit(1)
	}

	return opts
}

// applyFlags lets command-line flags override the loaded configuration.
func applyFlags(cfg *config.Config, opts options) {
	if opts.platform != "" {
		cfg.Platform = opts.platform
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.watch {
		cfg.Replay.Watch = true
	}
}
