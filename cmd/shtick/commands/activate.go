package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(deactivateCmd)
}

var activateCmd = &cobra.Command{
	Use:   "activate GROUP",
	Short: "Activate a group so its items load in new shell sessions",
	Long: `Activate a group. The loaders are regenerated so every supported
shell picks the group up on its next startup (or after re-sourcing).

The persistent group is always on and cannot be activated by name.`,
	Example: `  shtick activate work
  eval "$(shtick source)"

  See Also: shtick deactivate, shtick status`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runActivate(args[0], os.Stdout)
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate GROUP",
	Short: "Deactivate a group",
	Long: `Deactivate a group. Its items stop loading in new shell sessions;
already-running shells keep their current state until re-sourced.

Deactivating a group that is not active is not an error.`,
	Example: `  shtick deactivate work

  See Also: shtick activate, shtick status`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runDeactivate(args[0], os.Stdout)
	},
}

func runActivate(name string, w io.Writer) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	changed, err := m.Activate(name)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(w, "Group %q is already active\n", name)
		return nil
	}
	fmt.Fprintf(w, "%s✓ Activated group %q%s\n", colorGreen, name, colorReset)
	offerSource(w, m)
	return nil
}

func runDeactivate(name string, w io.Writer) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	changed, err := m.Deactivate(name)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(w, "Group %q is not active\n", name)
		return nil
	}
	fmt.Fprintf(w, "%s✓ Deactivated group %q%s\n", colorGreen, name, colorReset)
	offerSource(w, m)
	return nil
}
