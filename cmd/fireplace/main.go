package main

import (
	"os"

	"fireplace/cmd/fireplace/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
