// Package mainwindow provides the grid adjuster window.
package mainwindow

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"calgrid/internal/app"
	"calgrid/internal/config"
	"calgrid/internal/extract"
	"calgrid/internal/version"
	"calgrid/ui/canvas"
	"calgrid/ui/dialogs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	windowTitle  = "Calendar Grid Adjuster"
	instructions = "Left Click+Drag: Adjust Grid Lines | Right Click (or Ctrl+Click): Set First Day of Month"
	maxPadding   = 50
)

// MainWindow is the grid adjuster window.
type MainWindow struct {
	fyne.Window
	app        fyne.App
	session    *app.Session
	configPath string

	canvas    *canvas.GridCanvas
	rowsEntry *widget.Entry
	padLabel  *widget.Label
	statusBar *widget.Label
}

// New creates the adjuster window for session. configPath is the file the
// settings dialog edits.
func New(fyneApp fyne.App, session *app.Session, configPath string) *MainWindow {
	win := fyneApp.NewWindow(windowTitle + " - " + filepath.Base(session.Layer.Path))

	mw := &MainWindow{
		Window:     win,
		app:        fyneApp,
		session:    session,
		configPath: configPath,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewGridCanvas(mw.session)
	mw.statusBar = widget.NewLabel(mw.gridStatus())

	instructionBar := widget.NewLabel(instructions)
	instructionBar.Alignment = fyne.TextAlignCenter

	bottom := container.NewVBox(instructionBar, container.NewPadded(mw.statusBar))
	content := container.NewBorder(mw.createToolbar(), bottom, nil, nil, mw.canvas)

	mw.SetContent(content)
}

// createToolbar creates the row, padding and save controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.rowsEntry = widget.NewEntry()
	mw.rowsEntry.SetText(strconv.Itoa(mw.session.Model.Rows()))
	mw.rowsEntry.Validator = func(s string) error {
		_, err := parseRows(s)
		return err
	}
	mw.rowsEntry.OnSubmitted = func(string) { mw.onResetGrid() }

	resetBtn := widget.NewButton("Reset Grid", mw.onResetGrid)

	mw.padLabel = widget.NewLabel(paddingText(mw.session.Padding))
	padSlider := widget.NewSlider(0, maxPadding)
	padSlider.Step = 1
	padSlider.SetValue(float64(mw.session.Padding))
	padSlider.OnChanged = func(v float64) {
		mw.session.SetPadding(int(v))
	}

	saveBtn := widget.NewButton("Save & Extract", mw.onSave)
	saveBtn.Importance = widget.SuccessImportance

	left := container.NewHBox(
		widget.NewLabel("Rows:"),
		mw.rowsEntry,
		resetBtn,
		mw.padLabel,
	)
	return container.NewBorder(nil, nil, left, saveBtn, padSlider)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save & Extract", mw.onSave),
	)
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Reset Grid", mw.onResetGrid),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", mw.onSettings),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(app.EventStartChanged, func(data interface{}) {
		if idx, ok := data.(int); ok {
			row, col := idx/mw.session.Model.Cols(), idx%mw.session.Model.Cols()
			mw.updateStatus(fmt.Sprintf("Day 1 set to row %d, column %d", row+1, col+1))
		}
	})

	mw.session.On(app.EventGridChanged, func(data interface{}) {
		if data == nil {
			mw.updateStatus(mw.gridStatus())
		}
	})

	mw.session.On(app.EventPaddingChanged, func(data interface{}) {
		if p, ok := data.(int); ok {
			mw.padLabel.SetText(paddingText(p))
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) gridStatus() string {
	return fmt.Sprintf("%dx%d grid on %dx%d image, shown at %.0f%%",
		mw.session.Model.Rows(), mw.session.Model.Cols(),
		mw.session.Layer.Width(), mw.session.Layer.Height(),
		mw.session.Scale*100)
}

func (mw *MainWindow) onResetGrid() {
	rows, err := parseRows(mw.rowsEntry.Text)
	if err != nil {
		mw.updateStatus(err.Error())
		return
	}
	if err := mw.session.ResetGrid(rows); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSave() {
	res, err := mw.session.Export()
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	d := dialog.NewInformation("Success", exportMessage(res, mw.session.OutputDir), mw.Window)
	d.SetOnClosed(mw.Close)
	d.Show()
}

// onSettings edits the saved file rather than the running configuration,
// which may carry command line and environment overrides.
func (mw *MainWindow) onSettings() {
	cfg, err := config.ReadFile(mw.configPath)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	dialogs.NewSettingsDialog(cfg, mw.configPath, mw.Window, func(saved *config.Config) {
		mw.session.Model.SetSelectThreshold(saved.Adjust.SelectThreshold)
		mw.updateStatus("Settings saved to " + mw.configPath)
	}).Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About calgrid",
		fmt.Sprintf("calgrid v%s\n\n"+
			"Fit a grid to a calendar page and export one image per day.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

func parseRows(s string) (int, error) {
	rows, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || rows <= 0 {
		return 0, fmt.Errorf("rows must be a positive number, got %q", s)
	}
	return rows, nil
}

func paddingText(p int) string {
	return fmt.Sprintf("Padding (px): %d", p)
}

func exportMessage(res extract.Result, dir string) string {
	msg := fmt.Sprintf("%s to\n%s", res.Summary(), dir)
	if n := len(res.Failed); n > 0 {
		msg += fmt.Sprintf("\n\n%d cells could not be written", n)
	}
	return msg
}
