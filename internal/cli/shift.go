// Package cli implements the calshift command: cut a calendar grid into
// cells, rotate them by a number of positions and write a PDF or preview.
package cli

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"calgrid/internal/config"
	"calgrid/internal/document"
	"calgrid/internal/extract"
	"calgrid/internal/grid"
	calimage "calgrid/internal/image"
	"calgrid/internal/layout"
	"calgrid/internal/version"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// MissingInputError is returned when the input image does not exist.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return "Input file not found: " + e.Path
}

func (e *MissingInputError) Unwrap() error { return calimage.ErrMissingInput }

type shiftOptions struct {
	shift           int
	output          string
	rows            int
	cols            int
	marginSides     int
	marginBottom    int
	pageSize        string
	useStandardPage bool
	preview         bool
	noLayers        bool
	configPath      string
}

// App holds the calshift command.
type App struct {
	config *config.Config
	root   *cobra.Command
	out    io.Writer
	errOut io.Writer
	opts   shiftOptions
}

// NewApp creates the calshift command with flag defaults taken from cfg.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, out: os.Stdout, errOut: os.Stderr}

	a.root = &cobra.Command{
		Use:   "calshift <input> -s <shift>",
		Short: "Shift calendar grid cells and write a layered PDF",
		Long: `calshift cuts a calendar grid image into cells, moves every cell forward
or backward by a number of positions (wrapping around the grid) and writes
the result as a PDF with one layer per cell, or as a flat PNG preview.`,
		Example: `  # Shift cells forward by 3 positions
  calshift input.png -s 3 -o output.pdf

  # Shift backward by 2, with custom grid size
  calshift input.png -s -2 --rows 5 --cols 7 -o shifted.pdf

  # Custom margins
  calshift input.png -s 5 --margin-sides 30 --margin-bottom 60 -o out.pdf`,
		Args:          cobra.ExactArgs(1),
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0])
		},
	}

	f := a.root.Flags()
	f.IntVarP(&a.opts.shift, "shift", "s", 0, "Number of cells to shift (positive=forward, negative=backward)")
	f.StringVarP(&a.opts.output, "output", "o", "shifted_calendar.pdf", "Output PDF file")
	f.IntVar(&a.opts.rows, "rows", cfg.Grid.Rows, "Number of rows in grid")
	f.IntVar(&a.opts.cols, "cols", cfg.Grid.Cols, "Number of columns in grid")
	f.IntVar(&a.opts.marginSides, "margin-sides", cfg.Margins.Sides, "Side margins in pixels to preserve")
	f.IntVar(&a.opts.marginBottom, "margin-bottom", cfg.Margins.Bottom, "Bottom margin in pixels to preserve")
	f.StringVar(&a.opts.pageSize, "page-size", cfg.Page.Size, "PDF page size (letter, a4)")
	f.BoolVar(&a.opts.useStandardPage, "use-standard-page", cfg.Page.UseStandard, "Use standard page size instead of original image dimensions")
	f.BoolVar(&a.opts.preview, "preview", false, "Save preview PNG instead of PDF")
	f.BoolVar(&a.opts.noLayers, "no-layers", !cfg.Page.Layers, "Draw all cells on the page without per-cell layers")
	f.StringVar(&a.opts.configPath, "config", "", "Config file (default "+config.DefaultConfigPath()+")")
	_ = a.root.MarkFlagRequired("shift")

	return a
}

// SetOutput redirects progress and diagnostic output.
func (a *App) SetOutput(out, errOut io.Writer) {
	a.out = out
	a.errOut = errOut
	a.root.SetOut(out)
	a.root.SetErr(errOut)
}

// SetArgs sets the command line arguments, for testing.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// settings returns the configuration for this run: the --config file (or
// the config the app was created with) with explicitly set flags on top.
func (a *App) settings(cmd *cobra.Command) (*config.Config, error) {
	base := a.config
	if a.opts.configPath != "" {
		loaded, err := config.LoadFrom(a.opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		base = loaded
	}
	cfg := *base

	f := cmd.Flags()
	if f.Changed("rows") {
		cfg.Grid.Rows = a.opts.rows
	}
	if f.Changed("cols") {
		cfg.Grid.Cols = a.opts.cols
	}
	if f.Changed("margin-sides") {
		cfg.Margins.Sides = a.opts.marginSides
	}
	if f.Changed("margin-bottom") {
		cfg.Margins.Bottom = a.opts.marginBottom
	}
	if f.Changed("page-size") {
		cfg.Page.Size = a.opts.pageSize
	}
	if f.Changed("use-standard-page") {
		cfg.Page.UseStandard = a.opts.useStandardPage
	}
	if f.Changed("no-layers") {
		cfg.Page.Layers = !a.opts.noLayers
	}
	return &cfg, nil
}

func (a *App) run(cmd *cobra.Command, input string) error {
	cfg, err := a.settings(cmd)
	if err != nil {
		return err
	}
	pageSize, err := cfg.PageSize()
	if err != nil {
		return err
	}
	spec := cfg.GridSpec()
	p := newPrinter(a.out)

	p.printf(nil, "Loading image: %s\n", input)
	layer, err := calimage.Load(input)
	if err != nil {
		if errors.Is(err, calimage.ErrMissingInput) {
			return &MissingInputError{Path: input}
		}
		return err
	}
	p.printf(nil, "Original dimensions: %dx%dpx\n", layer.Width(), layer.Height())

	p.printf(nil, "Extracting %dx%d grid...\n", spec.Rows, spec.Cols)
	logger := log.New(a.errOut, "", 0)
	batch, err := extract.Uniform(layer, spec, extract.Options{
		Logger:   logger,
		Progress: a.progress(spec.Cells()),
	})
	if err != nil {
		return err
	}
	stats := batch.Stats
	p.printf(nil, "Extracted %d of %d cells (each %.1fx%.1fpx)\n",
		batch.Present(), len(batch.Cells), stats.MeanWidth, stats.MeanHeight)
	if !stats.Uniform() {
		p.printf(colorMuted, "Cell sizes range from %.0fx%.0fpx to %.0fx%.0fpx\n",
			stats.MinWidth, stats.MinHeight, stats.MaxWidth, stats.MaxHeight)
	}
	if missing := len(batch.Cells) - batch.Present(); missing > 0 {
		p.printf(colorWarn, "%d cells are empty and will be left blank\n", missing)
	}

	p.printf(nil, "Shifting cells by %d positions...\n", a.opts.shift)
	shifted, err := grid.Shift(batch.Cells, a.opts.shift)
	if err != nil {
		return err
	}

	if a.opts.preview {
		path := document.PreviewPath(a.opts.output)
		if err := document.WritePreview(path, shifted, spec); err != nil {
			return err
		}
		p.printf(nil, "Preview image created: %s\n", path)
	} else {
		opts := document.PDFOptions{Layers: cfg.Page.Layers, Logger: logger}
		drawn, err := a.writePDF(shifted, layer, spec, pageSize, cfg.Page.UseStandard, opts)
		if err != nil {
			return err
		}
		if failed := batch.Present() - drawn; failed > 0 {
			p.printf(colorWarn, "%d cells could not be embedded and were left blank\n", failed)
		}
		p.printf(nil, "PDF created: %s\n", a.opts.output)
	}

	p.printf(colorDone, "Done!\n")
	return nil
}

func (a *App) writePDF(cells []image.Image, layer *calimage.Layer, spec grid.Spec, size layout.PageSize, standard bool, opts document.PDFOptions) (int, error) {
	var page *layout.Page
	var err error
	if standard {
		page, err = layout.NewStandardPage(size, spec)
	} else {
		page, err = layout.NewPage(float64(layer.Width()), float64(layer.Height()), spec)
	}
	if err != nil {
		return 0, err
	}
	return document.WritePDF(a.opts.output, cells, page, opts)
}

// progress returns a hook that drives a progress bar on an interactive
// terminal, or nil otherwise.
func (a *App) progress(total int) func(done, total int) {
	if !isTerminal(a.errOut) || total == 0 {
		return nil
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(a.errOut),
		progressbar.OptionSetDescription(colorMuted.Sprint("Cropping cells")),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return func(done, total int) {
		_ = bar.Add(1)
		if done == total {
			_ = bar.Finish()
		}
	}
}
