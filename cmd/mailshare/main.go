package main

import (
	"os"

	"github.com/nhle/mailshare/cmd/mailshare/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
