// Package commands implements the CLI commands for shtick.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/cmd"
	"github.com/thoreinstein/shtick/cmd/shtick/commands/flags"
	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/logging"
	"github.com/thoreinstein/shtick/internal/manager"
	"github.com/thoreinstein/shtick/internal/paths"
)

// dirFlag holds the value of the --dir flag.
var dirFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "",
		"configuration directory (default: $SHTICK_CONFIG_DIR or ~/.config/shtick)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("shtick version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "shtick",
	Short: "Manage shell aliases, env vars, and functions across shells",
	Long: `shtick manages shell customizations (aliases, environment variables,
functions) in one TOML file and regenerates shell-specific files that
your shell sources on startup.

Items live in a mandatory always-on "persistent" group plus named
groups you can toggle per machine or per context. Activating a group
makes its items load in new sessions; the persistent group always
loads.

Hook it into your shell once:
  eval "$(shtick source)"       # bash, zsh, and friends
  eval (shtick source)          # fish`,
	Example: `  # Add an alias that is always available
  shtick alias gs='git status'

  # Keep work-only settings in their own group
  shtick add env work EDITOR=vim
  shtick activate work

  # See what is configured
  shtick list

  See Also: shtick status, shtick generate, shtick group`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if dirFlag != "" {
			flags.SetConfigDir(paths.Dir(dirFlag))
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("SHTICK_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// newManager loads the configuration and settings for one command.
func newManager() (*manager.Manager, error) {
	m, err := manager.NewWithLogger(flags.GetConfigDir(), slog.Default())
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return m, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
