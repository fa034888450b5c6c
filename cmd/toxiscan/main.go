// CLI entry point.
package main

import (
	"os"

	"github.com/sakhi-health/toxiscan/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
