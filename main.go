// Package main provides the entry point for the calgrid grid adjuster.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"calgrid/internal/app"
	"calgrid/internal/config"
	"calgrid/internal/image"
	"calgrid/internal/version"
	"calgrid/ui/mainwindow"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

const appID = "io.github.calgrid"

type options struct {
	output     string
	rows       int
	cols       int
	configPath string
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "calgrid <image_path>",
		Short: "Interactive calendar cell extractor",
		Long: `calgrid shows a calendar image with an adjustable grid. Drag the grid
lines onto the printed cell borders, right-click (or Ctrl+click) the first
day of the month, then Save & Extract to write one numbered PNG per day.`,
		Args:          cobra.ExactArgs(1),
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "Output directory (default: ./<image_name>/)")
	f.IntVar(&opts.rows, "rows", 0, "Number of rows in grid (default from config)")
	f.IntVar(&opts.cols, "cols", 0, "Number of columns in grid (default from config)")
	f.StringVar(&opts.configPath, "config", config.DefaultConfigPath(), "Config file")
	return cmd
}

func run(cmd *cobra.Command, imagePath string, opts options) error {
	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("rows") {
		cfg.Grid.Rows = opts.rows
	}
	if cmd.Flags().Changed("cols") {
		cfg.Grid.Cols = opts.cols
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	layer, err := image.Load(imagePath)
	if errors.Is(err, image.ErrMissingInput) {
		return fmt.Errorf("file not found: %s", imagePath)
	}
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	log.Printf("Loaded %s (%dx%d)", imagePath, layer.Width(), layer.Height())

	session, err := app.NewSession(layer, cfg, opts.output)
	if err != nil {
		return err
	}
	session.Logger = log.Default()
	log.Printf("Display scale %.3f, output directory %s", session.Scale, session.OutputDir)

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.AdjusterTheme{})

	win := mainwindow.New(fyneApp, session, opts.configPath)
	win.ShowAndRun()
	return nil
}
