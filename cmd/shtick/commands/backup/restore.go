package backup

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/cmd/shtick/commands/flags"
	"github.com/thoreinstein/shtick/internal/backup"
	"github.com/thoreinstein/shtick/internal/errors"
)

func init() {
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore ID",
	Short: "Restore configuration files from a backup",
	Long: `Copy a backup's files back to their original locations. Every
file's checksum is verified first, so a damaged backup restores
nothing.

Generated shell artifacts are not part of backups; regenerate them
after restoring.`,
	Example: `  shtick backup restore 20260815T093045
  shtick generate

  See Also:
    shtick backup list - Find the backup ID
    shtick generate    - Rebuild artifacts from the restored config`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runRestoreWithWriter(args[0], os.Stdout)
	},
}

func runRestoreWithWriter(id string, w io.Writer) error {
	mgr := backup.NewManager(flags.GetConfigDir())

	manifest, err := mgr.Get(id)
	if err != nil {
		return err
	}
	if err := mgr.Restore(id); err != nil {
		if errors.Is(err, backup.ErrBackupCorrupted) {
			return errors.NewSystemError(err,
				"The backup is damaged; pick another with: shtick backup list")
		}
		return err
	}

	fmt.Fprintf(w, "%s✓ Restored backup %s (%d file(s))%s\n",
		colorGreen, manifest.ID, len(manifest.Files), colorReset)
	fmt.Fprintln(w, "Run 'shtick generate' to rebuild shell artifacts")
	return nil
}
