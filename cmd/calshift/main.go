// Command calshift re-indexes the cells of a calendar grid image and writes
// them to a layered PDF or a PNG preview.
package main

import (
	"fmt"
	"log"
	"os"

	"calgrid/internal/cli"
	"calgrid/internal/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := run(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return cli.NewApp(cfg).Execute()
}
