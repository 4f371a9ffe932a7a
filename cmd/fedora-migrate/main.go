// Command fedora-migrate migrates Fedora 3 objects into a Fedora 4 repository.
package main

import (
	"os"

	"github.com/custodia-labs/fedora-migrate/internal/adapters/driving/cli"
	"github.com/custodia-labs/fedora-migrate/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version, buildServices); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
