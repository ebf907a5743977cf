// Package group provides CLI commands for group lifecycle management.
package group

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/cmd/shtick/commands/flags"
	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/manager"
)

// Color constants for terminal output.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// Cmd is the root group command.
var Cmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups",
	Long: `Manage named groups of shell customizations.

Groups collect aliases, environment variables, and functions that
belong together (a client, a machine, a project) and toggle as a unit
with activate and deactivate. The persistent group is built in and
cannot be created, renamed, or removed.`,
	Example: `  # Create a group for work machines
  shtick group create work --description "work laptop setup"

  # Rename it, keeping its items and active state
  shtick group rename work dayjob

  # Remove it and everything in it
  shtick group remove dayjob

  See Also:
    shtick group create - Create an empty group
    shtick group rename - Rename a group
    shtick group remove - Remove a group and its items`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func newManager() (*manager.Manager, error) {
	m, err := manager.NewWithLogger(flags.GetConfigDir(), slog.Default())
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return m, nil
}
