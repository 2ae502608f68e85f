package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-scheduler/internal/config"
	"github.com/oshokin/alarm-scheduler/internal/service/scheduler"
	"github.com/oshokin/alarm-scheduler/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the log level from the settings file.
	logLevel string

	// rootCmd represents the base command for running the scheduler.
	rootCmd = &cobra.Command{
		Use:   "alarm-scheduler",
		Short: "Run the interactive alarm scheduler.",
		Long: `Starts the alarm scheduler and reads request lines from standard input.

Each request line is "<seconds> <message>": the alarm is inserted into the
pending registry sorted by expiry time, routed to one of two display
workers by expiry parity, and counted down to expiry on the console.
End of input terminates the scheduler.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &scheduler.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
			}

			return scheduler.Run(ctx, options)
		},
	}

	// initCmd writes a settings file populated with the built-in defaults.
	initCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Write a settings file with default values.",
		Long: `Creates a YAML settings file populated with the built-in defaults so it
can be edited by hand and passed back via --config. The file is written to
the given path, or to ` + config.DefaultConfigFilename + ` in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := config.DefaultConfigFilename
			if len(args) > 0 {
				path = args[0]
			}

			return config.Save(path, config.Default())
		},
	}
)

// Execute runs the alarm-scheduler CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level override (debug, info, warn, error, fatal)")

	rootCmd.AddCommand(initCmd)
}
