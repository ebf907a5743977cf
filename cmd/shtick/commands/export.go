package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/errors"
)

var (
	exportFormat     string
	exportActiveOnly bool
	exportOutput     string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "toml",
		fmt.Sprintf("output format (%s)", strings.Join(config.ExportFormats(), ", ")))
	exportCmd.Flags().BoolVar(&exportActiveOnly, "active-only", false,
		"export only the persistent group and active groups")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write to FILE instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the configuration",
	Long: `Export groups and their items for sharing or backup. TOML exports
are valid configuration files and load back with 'shtick generate FILE'
or by copying over the managed configuration.`,
	Example: `  shtick export > shtick.toml
  shtick export --format json --active-only
  shtick export -o ~/dotfiles/shtick.toml

  See Also: shtick generate, shtick backup`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runExportWithWriter(os.Stdout)
	},
}

func runExportWithWriter(w io.Writer) error {
	m, err := newManager()
	if err != nil {
		return err
	}
	data, err := m.Export(exportFormat, exportActiveOnly)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = w.Write(data)
		return err
	}

	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return errors.NewSystemError(
			errors.Wrapf(err, "writing %s", exportOutput),
			"Check the directory exists and is writable")
	}
	fmt.Fprintf(w, "%s✓ Exported to %s%s\n", colorGreen, exportOutput, colorReset)
	return nil
}
