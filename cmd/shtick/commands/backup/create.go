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

var createName string

func init() {
	createCmd.Flags().StringVarP(&createName, "name", "n", "",
		"backup name (default: a timestamp)")
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a manual backup",
	Long: `Snapshot the configuration files into a new backup.

Backups happen automatically before saves when behavior.backup_on_save
is enabled; create makes one on demand, optionally under a memorable
name.`,
	Example: `  shtick backup create
  shtick backup create -n pre-cleanup

  See Also:
    shtick backup list    - List available backups
    shtick backup restore - Restore from a backup`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runCreateWithWriter(os.Stdout)
	},
}

func runCreateWithWriter(w io.Writer) error {
	mgr := backup.NewManager(flags.GetConfigDir())

	manifest, err := mgr.Create(createName)
	if err != nil {
		if errors.Is(err, backup.ErrNothingToBackUp) {
			fmt.Fprintln(w, "Nothing to back up yet. Add an item first: shtick alias gs='git status'")
			return nil
		}
		return err
	}

	fmt.Fprintf(w, "%s✓ Created backup %s (%d file(s))%s\n",
		colorGreen, manifest.ID, len(manifest.Files), colorReset)
	return nil
}
