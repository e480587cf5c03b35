package main

import (
	"os"

	"otrctx/cmd/otrctx/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
