package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/generator"
)

var generateTerse bool

func init() {
	generateCmd.Flags().BoolVar(&generateTerse, "terse", false,
		"print a one-line summary instead of per-file output")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [CONFIG]",
	Short: "Regenerate shell artifacts from the configuration",
	Long: `Regenerate the per-shell group files and loaders. Mutating commands
already do this; generate exists for previewing an alternate CONFIG
file, recovering deleted artifacts, and hook scripts.

With CONFIG, artifacts are rendered from that file instead of the
managed configuration. The managed configuration is not modified.`,
	Example: `  shtick generate
  shtick generate --terse
  shtick generate ~/dotfiles/shtick-preview.toml

  See Also: shtick source, shtick status`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		configPath := ""
		if len(args) > 0 {
			configPath = args[0]
		}
		return runGenerate(configPath, os.Stdout)
	},
}

func runGenerate(configPath string, w io.Writer) error {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return errors.NewUserError(
				errors.Wrapf(err, "config file %q", configPath),
				"Check the path, or omit it to use the managed configuration")
		}
	}

	m, err := newManager()
	if err != nil {
		return err
	}
	res, err := m.Generate(configPath)
	if err != nil {
		return err
	}

	printGenerateResult(w, res)
	return nil
}

func printGenerateResult(w io.Writer, res *generator.Result) {
	if generateTerse {
		fmt.Fprintf(w, "%s✓ Generated %d file(s), %d unchanged%s\n",
			colorGreen, len(res.Written), len(res.Unchanged), colorReset)
		return
	}

	for _, path := range res.Written {
		fmt.Fprintf(w, "%s✓ Wrote %s%s\n", colorGreen, path, colorReset)
	}
	if len(res.Unchanged) > 0 {
		fmt.Fprintf(w, "%s%d file(s) unchanged%s\n", colorGray, len(res.Unchanged), colorReset)
	}
	if len(res.Written) == 0 && len(res.Unchanged) == 0 {
		fmt.Fprintln(w, "Nothing to generate")
	}
	for _, name := range res.Skipped {
		fmt.Fprintf(w, "%sWarning: unsupported shell %q skipped%s\n", colorYellow, name, colorReset)
	}
	for _, om := range res.Omissions {
		fmt.Fprintf(w, "%sWarning: %s cannot express %s %s (group %q)%s\n",
			colorYellow, om.Shell, om.Type.Section(), strings.Join(om.Keys, ", "), om.Group, colorReset)
	}
}
