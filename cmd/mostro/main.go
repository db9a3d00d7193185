package main

import (
	"os"

	"mostro/cmd/mostro/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
