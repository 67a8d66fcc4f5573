package main

import (
	"os"

	"handoff/cmd/handoff/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
