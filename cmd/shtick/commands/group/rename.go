package group

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	Cmd.AddCommand(renameCmd)
}

var renameCmd = &cobra.Command{
	Use:   "rename OLD NEW",
	Short: "Rename a group",
	Long: `Rename a group. Its items move with it, an active group stays
active under the new name, and artifacts regenerate under the new
name.`,
	Example: `  shtick group rename work dayjob`,
	Args:    cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runRenameWithWriter(args[0], args[1], os.Stdout)
	},
}

func runRenameWithWriter(oldName, newName string, w io.Writer) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	if err := m.RenameGroup(oldName, newName); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s✓ Renamed group %q to %q%s\n", colorGreen, oldName, newName, colorReset)
	return nil
}
