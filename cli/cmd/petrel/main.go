package main

import "github.com/petrel-ai/petrel/cli/commands"

func main() {
	commands.Execute()
}
