package commands

import "github.com/thoreinstein/shtick/cmd/shtick/commands/settings"

func init() {
	rootCmd.AddCommand(settings.Cmd)
}
