package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/shazow/weefee/internal/log"
	"github.com/shazow/weefee/internal/tui"
)

var (
	// Version is the version of the application. It is set at build time.
	Version string = "dev"
)

// clientOptions tune the platform network client.
type clientOptions struct {
	ActivationTimeout time.Duration
	PollInterval      time.Duration
	SecretsGrace      time.Duration
}

type config struct {
	theme        string
	logFile      string
	logLevel     slog.Level
	scanInterval time.Duration
	client       clientOptions
	version      bool
}

func newRootCommand(cfg *config, exec func(context.Context, []string) error) *ffcli.Command {
	fs := flag.NewFlagSet("weefee", flag.ContinueOnError)
	fs.StringVar(&cfg.theme, "theme", "", "path to theme toml file (env: WEEFEE_THEME)")
	fs.StringVar(&cfg.logFile, "log-file", "", "write logs to this file, truncated on start (env: WEEFEE_LOG_FILE)")
	fs.TextVar(&cfg.logLevel, "log-level", slog.LevelInfo, "minimum log level: debug, info, warn, error")
	fs.DurationVar(&cfg.scanInterval, "scan-interval", tui.DefaultScanInterval, "how often to rescan for networks")
	fs.DurationVar(&cfg.client.ActivationTimeout, "activation-timeout", 30*time.Second, "give up on a connection attempt after this long")
	fs.DurationVar(&cfg.client.PollInterval, "poll-interval", 200*time.Millisecond, "how often to check on a connection attempt")
	fs.DurationVar(&cfg.client.SecretsGrace, "secrets-grace", 2*time.Second, "treat a new connection that stays unreadable this long as a wrong password, 0 to disable")
	fs.BoolVar(&cfg.version, "version", false, "display version")

	return &ffcli.Command{
		Name:       "weefee",
		ShortUsage: "weefee [flags]",
		ShortHelp:  "Manage Wi-Fi connections through NetworkManager",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix("WEEFEE")},
		Exec:       exec,
	}
}

// main is the entry point of the application
func main() {
	var cfg config
	root := newRootCommand(&cfg, func(ctx context.Context, args []string) error {
		if cfg.version {
			fmt.Println(Version)
			return nil
		}
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments: %v", args)
		}
		return run(ctx, cfg)
	})

	if err := root.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("weefee needs an interactive terminal")
	}

	if err := tui.LoadThemeFile(cfg.theme); err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}

	closeLog, err := log.Init(cfg.logFile, cfg.logLevel)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closeLog()

	logger := slog.Default()
	logger.Info("starting", "version", Version, "scan_interval", cfg.scanInterval)

	err = tui.Run(ctx, newClientFactory(logger, cfg.client), tui.Options{
		ScanInterval: cfg.scanInterval,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("exited with error", "error", err)
	}
	return err
}
