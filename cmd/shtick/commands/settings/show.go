package settings

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/cmd/shtick/commands/flags"
	"github.com/thoreinstein/shtick/internal/settings"
)

func init() {
	Cmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current value of every settings key",
	Long: `Show the effective value of every settings key: file values merged
over defaults, with SHTICK_ environment overrides applied.`,
	Example: `  shtick settings show`,
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runShowWithWriter(os.Stdout)
	},
}

func runShowWithWriter(w io.Writer) error {
	path := flags.GetConfigDir().SettingsFile()
	s, err := settings.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Settings file: %s\n\n", path)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sKEY\tVALUE%s\n", colorBold, colorReset)
	for _, key := range settings.Keys() {
		value, err := s.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\n", key, value)
	}
	return tw.Flush()
}
