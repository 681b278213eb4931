package main

import (
	"os"

	"github.com/starascendin/lifeos-finance/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
