package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var sourceShell string

func init() {
	sourceCmd.Flags().StringVar(&sourceShell, "shell", "",
		"target shell (default: detect from $SHELL)")
	rootCmd.AddCommand(sourceCmd)
}

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Print the command that loads shtick into the current shell",
	Long: `Print the source command for the detected (or given) shell's loader.
The output is a single line meant for eval, for interactive use and
for shell rc files alike.`,
	Example: `  eval "$(shtick source)"

  # fish
  eval (shtick source)

  # in ~/.zshrc
  command -v shtick >/dev/null && eval "$(shtick source)"`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runSource(os.Stdout)
	},
}

func runSource(w io.Writer) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	line, err := m.SourceCommand(sourceShell)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, line)
	return nil
}
