package main

import (
	"os"

	"github.com/roboco-io/md-img-uri/internal/cli"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		// cobra already printed "Error: ..." to stderr
		os.Exit(1)
	}
}
