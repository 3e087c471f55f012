package main

import (
	"os"

	"github.com/quantlab/valuescreen/cmd/valuescreen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
