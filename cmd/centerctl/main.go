package main

import (
	"os"

	"github.com/center-locator/cmd/centerctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
