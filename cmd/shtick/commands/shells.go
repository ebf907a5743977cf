package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/shell"
)

var shellsLong bool

func init() {
	shellsCmd.Flags().BoolVarP(&shellsLong, "long", "l", false, "one shell per line with capability notes")
	rootCmd.AddCommand(shellsCmd)
}

var shellsCmd = &cobra.Command{
	Use:   "shells",
	Short: "List the supported shells",
	Long: `List every shell shtick can generate artifacts for. The long form
marks the current shell and notes dialect limits (shells without
function syntax, shells whose loaders cannot react to activation
changes without regenerating).`,
	Example: `  shtick shells
  shtick shells -l`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runShellsWithWriter(os.Stdout)
	},
}

func runShellsWithWriter(w io.Writer) error {
	if !shellsLong {
		fmt.Fprintln(w, strings.Join(shell.SupportedNames(), " "))
		return nil
	}

	current, _ := shell.Detect()
	for _, s := range shell.Supported() {
		d := s.Dialect()

		var notes []string
		if !d.Supports(config.TypeFunction) {
			notes = append(notes, "no functions")
		}
		if !d.CanGuard() {
			notes = append(notes, "static loader")
		}

		line := string(s)
		if s == current {
			line = fmt.Sprintf("%s%s%s %s(current)%s", colorGreen, s, colorReset, colorCyan, colorReset)
		}
		if len(notes) > 0 {
			line += fmt.Sprintf(" %s[%s]%s", colorGray, strings.Join(notes, ", "), colorReset)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
