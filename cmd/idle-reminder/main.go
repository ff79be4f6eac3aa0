package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/Veraticus/idle-reminder/pkg/config"
	"github.com/Veraticus/idle-reminder/pkg/tray"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run returns the process exit code so deferred cleanup happens before exit.
// Cancelling ctx is a clean shutdown.
func run(ctx context.Context, args []string) int {
	opts, err := config.LoadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	flags, help := newFlagSet(&opts)
	if err := flags.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if *help {
		printUsage(os.Stdout, flags)
		return 0
	}

	logger := newLogger(os.Stderr, opts.Debug)

	deps, err := NewDependencies(opts, logger)
	if err != nil {
		logger.Error("failed to start", "err", err)
		return 1
	}
	defer deps.Close()

	if err := NewApplication(deps).Run(ctx); err != nil {
		if errors.Is(err, tray.ErrUnavailable) {
			logger.Error("no system tray available, use --headless to run without one", "err", err)
		} else {
			logger.Error("stopped with error", "err", err)
		}
		return 1
	}
	return 0
}

func newFlagSet(opts *config.Options) (*flag.FlagSet, *bool) {
	flags := flag.NewFlagSet("idle-reminder", flag.ContinueOnError)
	flags.StringVarP(&opts.Path, "config", "c", opts.Path, "Path to config file (.json, .yaml or .yml)")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "Log notifications instead of showing them")
	flags.BoolVar(&opts.Headless, "headless", opts.Headless, "Run without a tray icon")
	flags.BoolVar(&opts.Debug, "debug", opts.Debug, "Enable debug logging")
	help := flags.BoolP("help", "h", false, "Show help message")
	return flags, help
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printUsage(w io.Writer, flags *flag.FlagSet) {
	_, _ = fmt.Fprintln(w, "idle-reminder - notifies you when you step away and reminds you to take breaks")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage: idle-reminder [OPTIONS]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Options:")
	_, _ = fmt.Fprint(w, flags.FlagUsages())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Environment Variables:")
	_, _ = fmt.Fprintln(w, "  IDLE_REMINDER_CONFIG      Path to config file")
	_, _ = fmt.Fprintln(w, "  IDLE_REMINDER_QUIET       Log notifications instead of showing them (true/false)")
	_, _ = fmt.Fprintln(w, "  IDLE_REMINDER_HEADLESS    Run without a tray icon (true/false)")
	_, _ = fmt.Fprintln(w, "  IDLE_REMINDER_DEBUG       Enable debug logging (true/false)")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Configuration file: %s\n", config.DefaultPath())
}
