package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/shtick/internal/errors"
)

var (
	genDocDir    string
	genDocFormat string
)

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "docs", "output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "output format (markdown or man)")
	rootCmd.AddCommand(genDocCmd)
}

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate CLI reference documentation",
	Hidden: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runGenDoc(genDocDir, genDocFormat)
	},
}

func runGenDoc(dir, format string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	switch format {
	case "markdown":
		if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
			return errors.Wrap(err, "generating markdown")
		}
	case "man":
		header := &doc.GenManHeader{Title: "SHTICK", Section: "1"}
		if err := doc.GenManTree(rootCmd, header, dir); err != nil {
			return errors.Wrap(err, "generating man pages")
		}
	default:
		return errors.Newf("unknown format %q (valid: markdown, man)", format)
	}

	fmt.Printf("Documentation generated in %s\n", dir)
	return nil
}
