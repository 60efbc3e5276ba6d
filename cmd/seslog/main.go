// Package main is the entry point for the seslog CLI.
package main

import (
	"os"

	"github.com/harun/seslog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
