// Package settings provides CLI commands for shtick preferences.
package settings

import "github.com/spf13/cobra"

// Color constants for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
)

// Cmd is the root settings command.
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change shtick preferences",
	Long: `Show and change preferences stored in settings.toml.

Every key has a default, so the file is optional. SHTICK_ environment
variables override the file for a single run (for example
SHTICK_BEHAVIOR_CHECK_CONFLICTS=false).`,
	Example: `  # Current values of every key
  shtick settings show

  # Write a commented settings file to edit by hand
  shtick settings init

  # Change one key
  shtick settings set behavior.backup_on_save true

  See Also:
    shtick settings show - Show current values
    shtick settings init - Write the default settings file
    shtick settings set  - Change a key`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
