package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LISSConsulting/flapper/internal/config"
	"github.com/LISSConsulting/flapper/internal/link"
	"github.com/LISSConsulting/flapper/internal/logging"
	"github.com/LISSConsulting/flapper/internal/notify"
	"github.com/LISSConsulting/flapper/internal/toggle"
	"github.com/LISSConsulting/flapper/internal/tui"
)

// notifyFlushTimeout bounds how long exit waits for pending notifications.
const notifyFlushTimeout = 5 * time.Second

// runFlags holds the loop-specific command-line overrides.
type runFlags struct {
	max      int
	onDouble string
	tui      bool
}

func runFlagsFrom(cmd *cobra.Command) runFlags {
	max, _ := cmd.Flags().GetInt("max")
	onDouble, _ := cmd.Flags().GetString("on-double-interrupt")
	useTUI, _ := cmd.Flags().GetBool("tui")
	return runFlags{max: max, onDouble: onDouble, tui: useTUI}
}

// loadConfig loads flap.toml and applies --interface/--driver overrides.
// A positional argument, when present, names the interface.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if iface, _ := cmd.Flags().GetString("interface"); iface != "" {
		cfg.Link.Interface = iface
	}
	if len(args) > 0 {
		cfg.Link.Interface = args[0]
	}
	if driver, _ := cmd.Flags().GetString("driver"); driver != "" {
		cfg.Link.Driver = driver
	}
	return cfg, nil
}

// applyRunFlags folds loop overrides into cfg and validates the result.
func applyRunFlags(cfg *config.Config, flags runFlags) error {
	if flags.max > 0 {
		cfg.Loop.MaxCycles = flags.max
	}
	if flags.onDouble != "" {
		cfg.Loop.OnDoubleInterrupt = flags.onDouble
	}
	return cfg.Validate()
}

// newSetter builds the link setter configured in cfg.
func newSetter(cfg *config.Config, logger logrus.FieldLogger) (link.Setter, error) {
	opts := []link.Option{link.WithLogger(logger.WithField("component", "link"))}
	if cfg.Link.Command != "" {
		opts = append(opts, link.WithExecutable(cfg.Link.Command))
	}
	return link.New(cfg.Link.Driver, cfg.Link.Interface, opts...)
}

// newLoop converts a validated config into a toggle loop.
func newLoop(cfg *config.Config, setter link.Setter, interrupts <-chan os.Signal) *toggle.Loop {
	action, _ := toggle.ParseDoubleInterruptAction(cfg.Loop.OnDoubleInterrupt)
	return &toggle.Loop{
		Link:       setter,
		Interface:  cfg.Link.Interface,
		Interrupts: interrupts,
		MinSleep:   toggle.SleepFromSeconds(cfg.Sleep.MinSeconds),
		MaxSleep:   toggle.SleepFromSeconds(cfg.Sleep.MaxSeconds),
		Grace:      time.Duration(cfg.Sleep.GraceSeconds * float64(time.Second)),
		MaxCycles:  cfg.Loop.MaxCycles,
		OnDouble:   action,
	}
}

// executeRun loads config, wires signals, and runs the loop in plain or
// TUI mode.
func executeRun(cmd *cobra.Command, flags runFlags) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cfg, flags); err != nil {
		return err
	}

	// Diagnostics would corrupt the alternate screen.
	var console io.Writer = cmd.ErrOrStderr()
	if flags.tui {
		console = io.Discard
	}
	logger, closer, err := logging.New(cfg.Log, console)
	if err != nil {
		return err
	}
	defer closer.Close()

	setter, err := newSetter(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	interrupts := make(chan os.Signal, 2)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	lp := newLoop(cfg, setter, interrupts)
	var notifier *notify.Notifier
	if cfg.Notifications.URL != "" {
		notifier = notify.New(cfg.Notifications.URL, "flap "+cfg.Link.Interface,
			cfg.Notifications.OnToggle, cfg.Notifications.OnExit)
		lp.Hook = notifier.Hook
	}

	logger.WithFields(logrus.Fields{
		"interface": cfg.Link.Interface,
		"driver":    cfg.Link.Driver,
		"config":    configSource(cfg),
	}).Info("starting flap loop")

	if flags.tui {
		run := teaRunner(tea.WithAltScreen(), tea.WithoutSignalHandler())
		err = runWithTUI(ctx, lp, interrupts, cfg.TUI.AccentColor, run)
	} else {
		lp.Log = cmd.OutOrStdout()
		err = lp.Run(ctx)
	}

	if notifier != nil && !notifier.Flush(notifyFlushTimeout) {
		logger.Warn("gave up waiting for pending notifications")
	}

	switch {
	case errors.Is(err, toggle.ErrInterrupted):
		signal.Stop(interrupts)
		closer.Close()
		reraiseInterrupt()
		return err
	case errors.Is(err, context.Canceled):
		return nil
	}
	return err
}

// tuiRunner runs a bubbletea model until it quits.
type tuiRunner func(tea.Model) (tea.Model, error)

func teaRunner(opts ...tea.ProgramOption) tuiRunner {
	return func(m tea.Model) (tea.Model, error) {
		return tea.NewProgram(m, opts...).Run()
	}
}

// runWithTUI runs the loop in the background while the TUI consumes its
// events. TUI Ctrl+C becomes a loop interrupt; q cancels the loop.
func runWithTUI(ctx context.Context, lp *toggle.Loop, interrupts chan os.Signal, accentColor string, run tuiRunner) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan toggle.LogEntry, 128)
	lp.Events = events

	interrupt := func() {
		select {
		case interrupts <- os.Interrupt:
		default:
		}
	}

	model := tui.New(events, accentColor, interrupt, cancel)

	errCh := make(chan error, 1)
	go func() {
		defer close(events)
		errCh <- lp.Run(ctx)
	}()

	if _, tuiErr := run(model); tuiErr != nil {
		// Keep draining so the loop can observe the cancel and return.
		cancel()
		go func() {
			for range events {
			}
		}()
		<-errCh
		return fmt.Errorf("tui: %w", tuiErr)
	}
	return <-errCh
}

// executeSet sets the interface once, the way `flap up` / `flap down` do.
func executeSet(cmd *cobra.Command, dir link.Direction, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, closer, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	setter, err := newSetter(cfg, logger)
	if err != nil {
		return err
	}
	if err := setter.Set(cmd.Context(), dir); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.Link.Interface, dir)
	return nil
}

func configSource(cfg *config.Config) string {
	if cfg.Path == "" {
		return "defaults"
	}
	return cfg.Path
}
