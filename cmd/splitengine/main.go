// Command splitengine splits documents into ordered pieces with a manifest.
package main

import (
	"os"

	"github.com/custodia-labs/split-engine/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetInitializer(bootstrap)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
