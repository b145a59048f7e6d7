// Package main is the entry point for the linka CLI.
package main

import (
	"os"

	"github.com/linka-app/linka/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
