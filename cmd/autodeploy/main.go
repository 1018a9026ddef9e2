// Package main is the entry point for the autodeploy console.
package main

import (
	"os"

	"github.com/watchfire-io/autodeploy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
