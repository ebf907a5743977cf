package commands

import "github.com/thoreinstein/shtick/cmd/shtick/commands/group"

func init() {
	rootCmd.AddCommand(group.Cmd)
}
