package main

import (
	"os"

	"tiebasign/cmd/tieba-sign/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
