package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/errors"
)

var addYes bool

func init() {
	for _, c := range []*cobra.Command{addCmd, addPersistentCmd, aliasCmd, envCmd, functionCmd} {
		c.Flags().BoolVarP(&addYes, "yes", "y", false,
			"add despite conflict warnings without prompting")
		rootCmd.AddCommand(c)
	}
}

var addCmd = &cobra.Command{
	Use:   "add TYPE GROUP KEY=VALUE",
	Short: "Add an item to a group",
	Long: `Add an alias, environment variable, or function to a group.

The group is created on first use. If the key already exists in the
group, or the same key exists in another group, shtick warns and asks
before saving (the add still works; duplicated keys across groups are
allowed, last-sourced wins at runtime).

TYPE is one of: alias, env, function.`,
	Example: `  # Work-only git alias
  shtick add alias work gs='git status -sb'

  # Project-specific environment
  shtick add env myproject DATABASE_URL='postgres://localhost/dev'

  # A function (the body is emitted verbatim)
  shtick add function work greet='echo "hello $1"'

  See Also: shtick activate, shtick remove, shtick list`,
	Args: cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		return runAdd(args[0], args[1], args[2], os.Stdout, os.Stdin)
	},
}

var addPersistentCmd = &cobra.Command{
	Use:   "add-persistent TYPE KEY=VALUE",
	Short: "Add an item to the always-on persistent group",
	Long: `Add an alias, environment variable, or function to the persistent
group, which loads in every shell session without activation.

TYPE is one of: alias, env, function.`,
	Example: `  shtick add-persistent alias ll='ls -la'
  shtick add-persistent env EDITOR=vim`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runAdd(args[0], config.PersistentGroup, args[1], os.Stdout, os.Stdin)
	},
}

var aliasCmd = &cobra.Command{
	Use:     "alias KEY=VALUE",
	Short:   "Add a persistent alias (shorthand for add-persistent alias)",
	Example: `  shtick alias gs='git status'`,
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runAdd("alias", config.PersistentGroup, args[0], os.Stdout, os.Stdin)
	},
}

var envCmd = &cobra.Command{
	Use:     "env KEY=VALUE",
	Short:   "Add a persistent environment variable",
	Example: `  shtick env EDITOR=vim`,
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runAdd("env", config.PersistentGroup, args[0], os.Stdout, os.Stdin)
	},
}

var functionCmd = &cobra.Command{
	Use:     "function KEY=VALUE",
	Short:   "Add a persistent function",
	Example: `  shtick function mkcd='mkdir -p "$1" && cd "$1"'`,
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runAdd("function", config.PersistentGroup, args[0], os.Stdout, os.Stdin)
	},
}

func runAdd(typeName, group, assignment string, w io.Writer, r io.Reader) error {
	t, err := config.ParseItemType(typeName)
	if err != nil {
		return err
	}
	m, err := newManager()
	if err != nil {
		return err
	}

	prompted := false
	if !addYes && promptsEnabled(m) {
		warnings, err := m.AddWarnings(t, group, assignment)
		if err != nil {
			return err
		}
		if len(warnings) > 0 {
			printWarnings(w, warnings)
			if !confirm(r, w, "Continue anyway?") {
				return errors.NewCancelledError()
			}
			prompted = true
		}
	}

	res, err := m.AddItem(t, group, assignment)
	if err != nil {
		return err
	}

	// Warnings are informational when nobody was asked.
	if !prompted {
		printWarnings(w, res.Warnings)
	}

	if res.CreatedGroup {
		fmt.Fprintf(w, "Created group %q\n", res.Group)
	}
	verb := "Added"
	if res.Replaced {
		verb = "Updated"
	}
	fmt.Fprintf(w, "%s✓ %s %s %q in group %q%s\n",
		colorGreen, verb, t.Label(), res.Item.Key, res.Group, colorReset)

	offerSource(w, m)
	return nil
}
