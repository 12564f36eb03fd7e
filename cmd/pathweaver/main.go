package main

import "github.com/Aryan-jain07/path-weaver/cmd/pathweaver/commands"

func main() {
	commands.Execute()
}
