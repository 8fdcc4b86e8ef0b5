package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// settingsDialog edits the two directories. It stays open until a save is
// accepted or the user cancels.
type settingsDialog struct {
	app    *App
	input  *widget.Entry
	output *widget.Entry
	dlg    *dialog.CustomDialog
	closed bool
}

func newSettingsDialog(g *App) *settingsDialog {
	d := &settingsDialog{app: g}
	settings := g.session.Settings()

	d.input = widget.NewEntry()
	d.input.SetText(settings.InputDir())
	d.output = widget.NewEntry()
	d.output.SetText(settings.OutputDir())

	form := widget.NewForm(
		widget.NewFormItem("Input Images Directory:", d.withBrowse(d.input)),
		widget.NewFormItem("Output Text Files Directory:", d.withBrowse(d.output)),
	)

	saveButton := widget.NewButton("Save", d.save)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", d.cancel)
	content := container.NewBorder(nil, container.NewGridWithColumns(2, saveButton, cancelButton), nil, nil, form)

	d.dlg = dialog.NewCustomWithoutButtons("Settings", content, g.window)
	d.dlg.Resize(fyne.NewSize(520, 220))
	return d
}

func (d *settingsDialog) withBrowse(entry *widget.Entry) fyne.CanvasObject {
	browse := widget.NewButton("Browse...", func() {
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, d.app.window)
				return
			}
			if uri == nil {
				return
			}
			entry.SetText(uri.Path())
		}, d.app.window)
		if loc := listable(entry.Text); loc != nil {
			fd.SetLocation(loc)
		}
		fd.Resize(d.app.window.Canvas().Size())
		fd.Show()
	})
	return container.NewBorder(nil, nil, nil, browse, entry)
}

func (d *settingsDialog) show() {
	d.dlg.Show()
}

// save hands the entries to the session. On rejection the dialog stays open so
// the user can correct the paths.
func (d *settingsDialog) save() {
	if !d.app.session.SaveSettings(d.input.Text, d.output.Text) {
		return
	}
	d.close()
}

func (d *settingsDialog) cancel() {
	d.close()
}

func (d *settingsDialog) close() {
	d.closed = true
	d.dlg.Hide()
}
