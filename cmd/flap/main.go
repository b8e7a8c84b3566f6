// Package main is the entry point for the flap CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/flapper/internal/config"
	"github.com/LISSConsulting/flapper/internal/link"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flap",
		Short: "flap — toggle a network interface up and down at random intervals",
		Long: `flap sets an interface down, sleeps a random 1-60 seconds, sets it up,
and repeats. Ctrl+C skips the current wait; Ctrl+C twice in quick
succession sets the interface up and exits.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, runFlagsFrom(cmd))
		},
	}
	root.PersistentFlags().String("config", "", "path to flap.toml (default: search up from the working directory)")
	root.PersistentFlags().StringP("interface", "i", "", "interface to toggle (overrides config)")
	root.PersistentFlags().String("driver", "", "toggle driver: ifconfig, ip or netlink (overrides config)")
	addRunFlags(root)

	run := &cobra.Command{
		Use:   "run",
		Short: "Toggle the interface until interrupted (same as bare flap)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, runFlagsFrom(cmd))
		},
	}
	addRunFlags(run)

	root.AddCommand(
		run,
		setCmd(link.Up),
		setCmd(link.Down),
		setDirCmd(),
		stateCmd(),
		initCmd(),
	)
	return root
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max", 0, "stop after this many cycles (0 = use config)")
	cmd.Flags().String("on-double-interrupt", "", "force-up or terminate (overrides config)")
	cmd.Flags().Bool("tui", false, "show the terminal UI")
}

func setCmd(dir link.Direction) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s [interface]", dir),
		Short: fmt.Sprintf("Set the interface %s once and exit", dir),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeSet(cmd, dir, args)
		},
	}
}

func setDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <up|down> [interface]",
		Short: "Set the interface to the given direction once and exit",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := link.ParseDirection(args[0])
			if err != nil {
				return err
			}
			return executeSet(cmd, dir, args[1:])
		},
	}
}

func stateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state [interface]",
		Short: "Show whether the interface is currently up",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			state, err := link.State(cfg.Link.Interface)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", cfg.Link.Interface, state)
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create flap.toml in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			iface, _ := cmd.Flags().GetString("interface")
			if iface == "" {
				iface = config.DetectInterface()
			}
			path, err := config.InitFile(dir, iface)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (interface %s)\n", path, iface)
			return nil
		},
	}
}
