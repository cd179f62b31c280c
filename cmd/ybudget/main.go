package main

import (
	"os"

	"github.com/yfndev/ybudget/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
