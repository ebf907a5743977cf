// Package backup provides CLI commands for configuration backups.
package backup

import "github.com/spf13/cobra"

// Color constants for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage configuration backups",
	Long: `Manage snapshots of the shtick configuration files.

With behavior.backup_on_save enabled, shtick snapshots config.toml,
settings.toml, and the active-groups file before the first save of
each run. This command group lists, restores, creates, and prunes
those snapshots.

Backups live under the config directory in backups/, one directory
per snapshot with a checksummed manifest.`,
	Example: `  # List all backups
  shtick backup list

  # Restore a specific backup
  shtick backup restore 20260815T093045

  # Create a named backup before experimenting
  shtick backup create -n pre-cleanup

  # Remove old backups, keeping the 3 most recent
  shtick backup prune --keep 3

  See Also:
    shtick backup list    - List available backups
    shtick backup restore - Restore from a backup
    shtick backup create  - Manually create a backup
    shtick backup prune   - Remove old backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
