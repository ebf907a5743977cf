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

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", backup.DefaultRetentionCount,
		"number of backups to retain")
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Remove backups beyond the retention count, keeping the most
recent ones.`,
	Example: `  # Keep the default (5) most recent backups
  shtick backup prune

  # Keep only the 3 most recent
  shtick backup prune --keep 3

  # Remove every backup
  shtick backup prune --keep 0

  See Also:
    shtick backup list - List available backups`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runPruneWithWriter(os.Stdout)
	},
}

func runPruneWithWriter(w io.Writer) error {
	if pruneKeep < 0 {
		return errors.New("--keep must be non-negative")
	}

	mgr := backup.NewManager(flags.GetConfigDir())

	manifests, err := mgr.List()
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			fmt.Fprintln(w, "No backups to prune")
			return nil
		}
		return errors.Wrap(err, "listing backups")
	}

	toRemove := len(manifests) - pruneKeep
	if toRemove <= 0 {
		fmt.Fprintln(w, "No backups to prune")
		return nil
	}

	if err := mgr.Prune(pruneKeep); err != nil {
		return errors.Wrap(err, "pruning backups")
	}

	fmt.Fprintf(w, "%s✓ Removed %d old backup(s), kept %d%s\n",
		colorGreen, toRemove, pruneKeep, colorReset)
	return nil
}
