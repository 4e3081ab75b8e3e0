package lazylink

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/icarus-itcs/lazylink/internal/dispatch"
	"github.com/icarus-itcs/lazylink/internal/preflight"
	"github.com/icarus-itcs/lazylink/internal/settings"
	"github.com/icarus-itcs/lazylink/internal/ui"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// globalFlags are set on the root command and shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
	noColor    bool
}

// app carries what subcommands need once the root has run its pre-run hook.
type app struct {
	flags    globalFlags
	settings *settings.Settings

	// swapped out in tests
	providers     func(s *settings.Settings) (android, ios dispatch.Provider)
	devices       func(s *settings.Settings) (android, ios deviceLister)
	readClipboard func() (string, error)
	checker       *preflight.Checker
}

func newApp() *app {
	return &app{
		settings:      settings.Default(),
		providers:     toolProviders,
		devices:       toolListers,
		readClipboard: clipboard.ReadAll,
		checker:       preflight.NewChecker(),
	}
}

func newRootCmd() *cobra.Command {
	a := newApp()

	rootCmd := &cobra.Command{
		Use:   "lazylink",
		Short: "Open deeplinks on the iOS Simulator and Android Emulator",
		Long: `lazylink delivers a deeplink to a booted iOS Simulator, a running Android
Emulator, or both at once, and reports what happened on each.

Pick the default target and devices in .lazylink.yaml, or pass --platform.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(a.flags.verbose, a.flags.noColor)
			ui.ConfigureColor(a.flags.noColor, os.Stdout)

			s, err := settings.Load(a.flags.configPath)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			a.settings = s
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lazylink %s\n", appVersion)
			fmt.Fprintf(out, "  commit: %s\n", appCommit)
			fmt.Fprintf(out, "  built:  %s\n", appDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newOpenCmd(a))
	rootCmd.AddCommand(newDevicesCmd(a))
	rootCmd.AddCommand(newDoctorCmd(a))

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&a.flags.configPath, "config", "c", "", "config file (default: "+settings.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&a.flags.noColor, "no-color", false, "disable colorized output")

	return rootCmd
}

// Execute runs the CLI until it finishes or receives SIGINT/SIGTERM.
func Execute(version, commit, date string) error {
	appVersion = version
	appCommit = commit
	appDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}
