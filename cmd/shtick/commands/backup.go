package commands

import "github.com/thoreinstein/shtick/cmd/shtick/commands/backup"

func init() {
	rootCmd.AddCommand(backup.Cmd)
}
