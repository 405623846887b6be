// Command toolbox validates identifiers and prints the shared API schemas.
package main

import (
	"fmt"
	"os"

	"github.com/plangrid/toolbox/internal/cli"
	"github.com/plangrid/toolbox/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := cfg.Logger()
	if err := cli.NewRootCommand(cfg, logger).Execute(); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
