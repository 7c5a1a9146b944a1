// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"
	"strings"

	"calgrid/internal/config"
	"calgrid/internal/layout"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// SettingsDialog provides a property sheet for editing the saved defaults.
type SettingsDialog struct {
	cfg    *config.Config
	path   string
	window fyne.Window

	fields *settingsFields

	onSave func(*config.Config)
}

// settingsFields holds the text of every editable setting.
type settingsFields struct {
	rows, cols               *widget.Entry
	marginTop, marginSides   *widget.Entry
	marginBottom             *widget.Entry
	pageSize                 *widget.Select
	useStandard, layers      *widget.Check
	padding, threshold       *widget.Entry
	maxDisplayW, maxDisplayH *widget.Entry
}

// NewSettingsDialog creates a dialog that edits cfg and writes it to path.
func NewSettingsDialog(cfg *config.Config, path string, window fyne.Window, onSave func(*config.Config)) *SettingsDialog {
	return &SettingsDialog{
		cfg:    cfg,
		path:   path,
		window: window,
		onSave: onSave,
	}
}

// Show displays the dialog.
func (d *SettingsDialog) Show() {
	content := d.createContent()

	dlg := dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		content,
		func(save bool) {
			if save {
				d.save()
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(420, 560))
	dlg.Show()
}

func intEntry(v int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(v))
	return e
}

func (d *SettingsDialog) createContent() fyne.CanvasObject {
	f := &settingsFields{
		rows:         intEntry(d.cfg.Grid.Rows),
		cols:         intEntry(d.cfg.Grid.Cols),
		marginTop:    intEntry(d.cfg.Margins.Top),
		marginSides:  intEntry(d.cfg.Margins.Sides),
		marginBottom: intEntry(d.cfg.Margins.Bottom),
		pageSize:     widget.NewSelect(layout.PageSizeNames(), nil),
		useStandard:  widget.NewCheck("Use standard page size", nil),
		layers:       widget.NewCheck("One PDF layer per cell", nil),
		padding:      intEntry(d.cfg.Adjust.Padding),
		threshold:    widget.NewEntry(),
		maxDisplayW:  intEntry(d.cfg.Adjust.MaxDisplayWidth),
		maxDisplayH:  intEntry(d.cfg.Adjust.MaxDisplayHeight),
	}
	f.pageSize.SetSelected(strings.ToLower(d.cfg.Page.Size))
	f.useStandard.SetChecked(d.cfg.Page.UseStandard)
	f.layers.SetChecked(d.cfg.Page.Layers)
	f.threshold.SetText(strconv.FormatFloat(d.cfg.Adjust.SelectThreshold, 'f', -1, 64))
	d.fields = f

	gridForm := widget.NewForm(
		widget.NewFormItem("Rows", f.rows),
		widget.NewFormItem("Columns", f.cols),
	)
	marginsForm := widget.NewForm(
		widget.NewFormItem("Top (px)", f.marginTop),
		widget.NewFormItem("Sides (px)", f.marginSides),
		widget.NewFormItem("Bottom (px)", f.marginBottom),
	)
	pageForm := widget.NewForm(
		widget.NewFormItem("Page size", f.pageSize),
		widget.NewFormItem("", f.useStandard),
		widget.NewFormItem("", f.layers),
	)
	adjustForm := widget.NewForm(
		widget.NewFormItem("Padding (px)", f.padding),
		widget.NewFormItem("Grab distance (px)", f.threshold),
		widget.NewFormItem("Max display width", f.maxDisplayW),
		widget.NewFormItem("Max display height", f.maxDisplayH),
	)

	return container.NewVBox(
		widget.NewCard("Grid", "", gridForm),
		widget.NewCard("Margins", "", marginsForm),
		widget.NewCard("PDF Page", "", pageForm),
		widget.NewCard("Grid Adjuster", "", adjustForm),
	)
}

func (d *SettingsDialog) save() {
	updated, err := d.fields.apply(d.cfg)
	if err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	if err := updated.SaveTo(d.path); err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	*d.cfg = *updated
	if d.onSave != nil {
		d.onSave(d.cfg)
	}
}

// apply returns a copy of cfg with the field values applied, or an error
// naming the first field that does not parse or validate.
func (f *settingsFields) apply(cfg *config.Config) (*config.Config, error) {
	out := *cfg

	ints := []struct {
		name  string
		entry *widget.Entry
		dst   *int
	}{
		{"rows", f.rows, &out.Grid.Rows},
		{"columns", f.cols, &out.Grid.Cols},
		{"top margin", f.marginTop, &out.Margins.Top},
		{"side margin", f.marginSides, &out.Margins.Sides},
		{"bottom margin", f.marginBottom, &out.Margins.Bottom},
		{"padding", f.padding, &out.Adjust.Padding},
		{"max display width", f.maxDisplayW, &out.Adjust.MaxDisplayWidth},
		{"max display height", f.maxDisplayH, &out.Adjust.MaxDisplayHeight},
	}
	for _, it := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(it.entry.Text))
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a whole number", it.name, it.entry.Text)
		}
		*it.dst = v
	}

	threshold, err := strconv.ParseFloat(strings.TrimSpace(f.threshold.Text), 64)
	if err != nil {
		return nil, fmt.Errorf("grab distance: %q is not a number", f.threshold.Text)
	}
	out.Adjust.SelectThreshold = threshold

	out.Page.Size = f.pageSize.Selected
	out.Page.UseStandard = f.useStandard.Checked
	out.Page.Layers = f.layers.Checked

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
