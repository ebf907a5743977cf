package settings

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/cmd/shtick/commands/flags"
	"github.com/thoreinstein/shtick/internal/settings"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing settings file")
	Cmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Long: `Write settings.toml with every key at its default value and a
comment explaining it. Refuses to overwrite an existing file unless
--force is specified.`,
	Example: `  shtick settings init
  shtick settings init --force`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runInitWithWriter(os.Stdout)
	},
}

func runInitWithWriter(w io.Writer) error {
	path := flags.GetConfigDir().SettingsFile()
	if err := settings.Init(path, initForce); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s✓ Wrote %s%s\n", colorGreen, path, colorReset)
	return nil
}
