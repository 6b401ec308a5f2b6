// Command sbomcheck checks SPDX SBOM documents for completeness.
package main

import (
	"os"

	"github.com/leapstack-labs/sbomcheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
