package settings

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/cmd/shtick/commands/flags"
	"github.com/thoreinstein/shtick/internal/settings"
)

func init() {
	Cmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one settings key",
	Long: `Change one settings key and write the file. Values are typed:
booleans take true/false, generation.shells takes a comma-separated
list, performance.cache_size takes a positive integer.

Run 'shtick settings show' for the key list.`,
	Example: `  shtick settings set behavior.backup_on_save true
  shtick settings set generation.shells bash,zsh,fish
  shtick settings set performance.cache_size 256`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runSetWithWriter(args[0], args[1], os.Stdout)
	},
}

func runSetWithWriter(key, value string, w io.Writer) error {
	path := flags.GetConfigDir().SettingsFile()
	s, err := settings.Load(path)
	if err != nil {
		return err
	}
	if err := s.Set(key, value); err != nil {
		return err
	}
	if err := settings.Save(s, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s✓ Set %s = %s%s\n", colorGreen, key, value, colorReset)
	return nil
}
