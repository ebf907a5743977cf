package group

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/internal/errors"
)

var removeForce bool

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "skip the confirmation prompt")
	Cmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a group and all its items",
	Long: `Remove a group along with every alias, environment variable, and
function it holds. An active group is deactivated first and its
generated artifacts are deleted.

A confirmation prompt is shown unless --force is specified.`,
	Example: `  shtick group remove work
  shtick group remove work --force

  See Also:
    shtick group rename - Rename instead of removing
    shtick deactivate   - Turn a group off without deleting it`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runRemoveWithIO(args[0], os.Stdout, os.Stdin)
	},
}

// runRemoveWithIO allows injecting streams for testing.
func runRemoveWithIO(name string, w io.Writer, r io.Reader) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	if !removeForce {
		count, err := m.RemoveGroupPreview(name)
		if err != nil {
			return err
		}
		if !confirmRemoval(w, r, name, count) {
			return errors.NewCancelledError()
		}
	}

	count, err := m.RemoveGroup(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s✓ Removed group %q (%d item(s))%s\n", colorGreen, name, count, colorReset)
	return nil
}

// confirmRemoval prompts before deleting the group. Returns true only
// if the user enters "y" or "yes" (case-insensitive).
func confirmRemoval(w io.Writer, r io.Reader, name string, count int) bool {
	fmt.Fprintf(w, "%sRemove group %q and its %d item(s)?%s [y/N]: ", colorYellow, name, count, colorReset)

	reader := bufio.NewReader(r)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
