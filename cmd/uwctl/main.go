package main

import (
	"fmt"
	"os"

	"github.com/MikeSquared-Agency/Underwriter/internal/cli"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
