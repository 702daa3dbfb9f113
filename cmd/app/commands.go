package main

import (
	"github.com/urfave/cli/v3"
)

// getCommands lists every subcommand, grouped by category in the help output.
func getCommands(version string) []*cli.Command {
	groups := []struct {
		category string
		commands []*cli.Command
	}{
		{category: "system", commands: getSystemCommands(version)},
		{category: "sellers", commands: getSellerCommands()},
		{category: "auth", commands: getAuthCommands()},
	}

	var cmds []*cli.Command
	for _, group := range groups {
		for _, cmd := range group.commands {
			cmd.Category = group.category
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}
