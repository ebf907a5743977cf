package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listJSON bool
	listLong bool
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "show full values without truncation")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [GROUP]",
	Short: "List configured items",
	Long: `List every alias, environment variable, and function, or only those
of one group. The persistent group sorts first; within a group items
order by type, then key.`,
	Example: `  shtick list
  shtick list work
  shtick list --json

  See Also: shtick status, shtick add`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		group := ""
		if len(args) > 0 {
			group = args[0]
		}
		return runListWithWriter(os.Stdout, group)
	},
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(w io.Writer, group string) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	items, err := m.ListItems(group)
	if err != nil {
		return err
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "No items configured.")
		fmt.Fprintln(w, "Try: shtick alias gs='git status'")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sGROUP\tTYPE\tKEY\tVALUE\tACTIVE%s\n", colorBold, colorReset)
	for _, item := range items {
		value := item.Value
		if !listLong {
			value = truncate(value, 60)
		}
		marker := ""
		if item.Active {
			marker = colorGreen + "✓" + colorReset
		}
		fmt.Fprintf(tw, "%s%s%s\t%s\t%s%s%s\t%s\t%s\n",
			colorCyan, item.Group, colorReset,
			item.Type,
			colorGreen, item.Key, colorReset,
			value,
			marker)
	}
	return tw.Flush()
}
