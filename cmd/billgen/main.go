package main

import (
	"os"

	"github.com/mynx-softwares/billgen/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
