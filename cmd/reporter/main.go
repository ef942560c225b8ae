package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	service "github.com/timmybird/fogis-reporter/internal/app"
	"github.com/timmybird/fogis-reporter/internal/adapters/store"
	"github.com/timmybird/fogis-reporter/internal/cli"
	"github.com/timmybird/fogis-reporter/internal/config"
	"github.com/timmybird/fogis-reporter/pkg/logger"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("reporter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		matchID = fs.Int("match", 0, "Match id to report for")
		logFile = fs.String("log", "", "Also write logs to this file")
		jsonLog = fs.Bool("json", false, "Log as JSON")
		help    = fs.Bool("help", false, "Show help")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *help || fs.NArg() == 0 {
		cli.ShowHelp(stdout)
		if *help {
			return exitOK
		}
		return exitUsage
	}
	command := fs.Args()

	// Initialize logging
	closeLog, err := cli.SetupLogging(*logFile, *jsonLog)
	if err != nil {
		writeErr(stderr, "failed to setup logging", err)
		return exitFailure
	}
	defer func() { _ = closeLog() }()
	log := logger.Get()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		writeErr(stderr, "failed to load config", err)
		return exitFailure
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := cfg.ValidateCredentials(); err != nil {
		writeErr(stderr, "missing credentials", err)
		return exitFailure
	}
	if cli.NeedsMatch(command[0]) && *matchID <= 0 {
		writeErr(stderr, "invalid arguments", errors.New("-match is required for "+strconv.Quote(command[0])))
		return exitUsage
	}

	client, err := store.New(cfg.BaseURL,
		store.WithCredentials(cfg.Username, cfg.Password),
		store.WithTimeout(cfg.RequestTimeout()),
		store.WithReadRetries(cfg.FetchRetries, cfg.RetryDelay()),
		store.WithLogger(log.Named("store")),
	)
	if err != nil {
		writeErr(stderr, "failed to create store client", err)
		return exitFailure
	}
	if err := client.Login(ctx); err != nil {
		writeErr(stderr, "login failed", err)
		return exitFailure
	}

	svc := service.New(client, service.WithLogger(log.Named("service")))
	if cli.NeedsMatch(command[0]) {
		if _, err := svc.OpenMatch(ctx, *matchID); err != nil {
			writeErr(stderr, "failed to load match "+strconv.Itoa(*matchID), err)
			return exitFailure
		}
	}

	if err := cli.Run(ctx, svc, *matchID, command, stdout); err != nil {
		log.Error(ctx, "command failed", logger.String("command", command[0]), logger.Error(err))
		writeErr(stderr, command[0]+" failed", err)
		if errors.Is(err, cli.ErrUsage) || errors.Is(err, cli.ErrUnknownCommand) || errors.Is(err, cli.ErrUnknownType) {
			return exitUsage
		}
		return exitFailure
	}
	return exitOK
}

// writeErr is used where the logger may not be configured yet.
func writeErr(w io.Writer, msg string, err error) {
	_, _ = io.WriteString(w, msg+": "+err.Error()+"\n")
}
