package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/cmd"
	"github.com/thoreinstein/shtick/internal/paths"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration overview",
	Long: `Show an overview of the installation: where the configuration
lives, whether the current shell has a generated loader, and which
groups exist and are active.`,
	Example: `  shtick status
  shtick status --json

  See Also: shtick list, shtick generate`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runStatusWithWriter(os.Stdout)
	},
}

// runStatusWithWriter allows injecting a writer for testing.
func runStatusWithWriter(w io.Writer) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	st := m.Status()

	if statusJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	fmt.Fprintf(w, "shtick version %s\n\n", cmd.Version)
	fmt.Fprintf(w, "Config: %s\n", paths.Abbreviate(st.ConfigPath))

	switch {
	case st.CurrentShell == "":
		fmt.Fprintf(w, "Shell:  %s(not detected)%s\n", colorGray, colorReset)
	case st.LoaderExists:
		fmt.Fprintf(w, "Shell:  %s %s(loader generated)%s\n", st.CurrentShell, colorGreen, colorReset)
	default:
		fmt.Fprintf(w, "Shell:  %s %s(no loader; run 'shtick generate')%s\n", st.CurrentShell, colorYellow, colorReset)
	}

	fmt.Fprintf(w, "\nPersistent group: %d item(s)\n", st.PersistentItems)

	if len(st.AvailableGroups) == 0 {
		fmt.Fprintf(w, "\n%sNo other groups. Create one with 'shtick group create NAME'.%s\n", colorGray, colorReset)
		return nil
	}

	active := make(map[string]bool, len(st.ActiveGroups))
	for _, name := range st.ActiveGroups {
		active[name] = true
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sGROUP\tITEMS\tACTIVE%s\n", colorBold, colorReset)
	for _, name := range st.AvailableGroups {
		count := 0
		if g, ok := m.Config().Group(name); ok {
			count = g.ItemCount()
		}
		marker := ""
		if active[name] {
			marker = colorGreen + "✓" + colorReset
		}
		fmt.Fprintf(tw, "%s%s%s\t%d\t%s\n", colorCyan, name, colorReset, count, marker)
	}
	return tw.Flush()
}
