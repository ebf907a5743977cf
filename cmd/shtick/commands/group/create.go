package group

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var createDescription string

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "",
		"human-readable description stored with the group")
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty group",
	Long: `Create an empty group. Adding an item to a new group name also
creates it, so create is for setting up a group (and its description)
before filling it in.

Names start with a letter or underscore and contain only letters,
digits, and underscores.`,
	Example: `  shtick group create work
  shtick group create clientx -d "Client X contract"

  See Also:
    shtick add      - Add items to a group
    shtick activate - Activate a group`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runCreateWithWriter(args[0], os.Stdout)
	},
}

func runCreateWithWriter(name string, w io.Writer) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	if err := m.CreateGroup(name, createDescription); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s✓ Created group %q%s\n", colorGreen, name, colorReset)
	fmt.Fprintf(w, "Add items with 'shtick add alias %s KEY=VALUE', then 'shtick activate %s'\n", name, name)
	return nil
}
