// Package main provides the leapddl command, a semantic analyser for MySQL
// DDL scripts.
package main

import (
	"os"

	"github.com/leapstack-labs/leapddl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
