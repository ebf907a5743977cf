package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/manager"
	"github.com/thoreinstein/shtick/internal/prompt"
)

func init() {
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(removePersistentCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove TYPE GROUP SEARCH",
	Short: "Remove an item from a group",
	Long: `Remove an alias, environment variable, or function from a group.

SEARCH matches keys case-insensitively as a substring. An exact key
match wins outright; otherwise multiple matches open a fuzzy picker,
a numbered prompt when behavior.interactive_mode is off, or fail with
the candidates listed when stdin is not a terminal.

TYPE is one of: alias, env, function.`,
	Example: `  shtick remove alias work gs
  shtick remove env myproject DATABASE_URL

  See Also: shtick add, shtick list`,
	Args: cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		return runRemove(args[0], args[1], args[2], os.Stdout, os.Stdin)
	},
}

var removePersistentCmd = &cobra.Command{
	Use:   "remove-persistent TYPE SEARCH",
	Short: "Remove an item from the persistent group",
	Example: `  shtick remove-persistent alias ll
  shtick remove-persistent env EDITOR`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runRemove(args[0], config.PersistentGroup, args[1], os.Stdout, os.Stdin)
	},
}

func runRemove(typeName, group, search string, w io.Writer, r io.Reader) error {
	t, err := config.ParseItemType(typeName)
	if err != nil {
		return err
	}
	m, err := newManager()
	if err != nil {
		return err
	}
	if !m.Config().HasGroup(group) {
		return errors.Wrapf(config.ErrNoSuchGroup, "%q", group)
	}

	matches := m.FindItems(t, group, search)
	match, err := pickMatch(m, t, group, search, matches, w, r)
	if err != nil {
		return err
	}

	res, err := m.RemoveItem(t, group, match.Item.Key)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s✓ Removed %s %q from group %q%s\n",
		colorGreen, t.Label(), res.Item.Key, res.Group, colorReset)

	offerSource(w, m)
	return nil
}

// pickMatch narrows search results to a single item. Exact key matches
// short-circuit so `remove alias work gs` never opens a picker just
// because gst also exists. Ambiguity is resolved by the fuzzy finder,
// by a numbered prompt when behavior.interactive_mode is off, or not
// at all when stdin is not a terminal.
func pickMatch(m *manager.Manager, t config.ItemType, group, search string, matches []config.Match, w io.Writer, r io.Reader) (config.Match, error) {
	switch len(matches) {
	case 0:
		return config.Match{}, errors.Wrapf(manager.ErrItemNotFound,
			"no %s matching %q in group %q", t.Label(), search, group)
	case 1:
		return matches[0], nil
	}

	for _, match := range matches {
		if match.Item.Key == search {
			return match, nil
		}
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		keys := make([]string, len(matches))
		for i, match := range matches {
			keys[i] = match.Item.Key
		}
		return config.Match{}, errors.NewUserError(
			errors.Newf("%q is ambiguous (%d matches): %s", search, len(matches), strings.Join(keys, ", ")),
			"Use the exact key to remove one of them")
	}

	if !m.Settings().Behavior.InteractiveMode {
		return promptSelect(r, w, search, matches)
	}

	idx, err := fuzzyfinder.Find(
		matches,
		func(i int) string {
			return fmt.Sprintf("%s = %s", matches[i].Item.Key, truncate(matches[i].Item.Value, 50))
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			item := matches[i].Item
			return fmt.Sprintf("Group: %s\nType: %s\nKey: %s\n\nValue:\n%s",
				matches[i].Group,
				item.Type.Label(),
				item.Key,
				item.Value,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return config.Match{}, errors.NewCancelledError()
		}
		return config.Match{}, errors.Wrap(err, "interactive selection failed")
	}
	return matches[idx], nil
}

// promptSelect is the numbered fallback picker.
func promptSelect(r io.Reader, w io.Writer, search string, matches []config.Match) (config.Match, error) {
	options := make([]string, len(matches))
	for i, match := range matches {
		options[i] = fmt.Sprintf("%s = %s", match.Item.Key, truncate(match.Item.Value, 50))
	}

	sel := prompt.NewSelectorWithIO(r, w)
	idx, err := sel.Select(fmt.Sprintf("Multiple matches for %q:", search), options)
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return config.Match{}, errors.NewCancelledError()
		}
		return config.Match{}, err
	}
	return matches[idx], nil
}
