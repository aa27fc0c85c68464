package main

import (
	"os"

	"github.com/msalah0e/cmdstats/cmd"
	"github.com/msalah0e/cmdstats/internal/ui"
)

func main() {
	if err := cmd.Execute(); err != nil {
		ui.Bad.Fprintf(os.Stderr, "cmdstats: %v\n", err)
		os.Exit(1)
	}
}
