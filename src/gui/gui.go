package gui

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"text-recognition/src/clipboard"
	"text-recognition/src/notification"
	"text-recognition/src/session"
)

const (
	windowTitle     = "Text Recognition"
	noFileText      = "No file selected"
	placeholderText = "Text from image will appear here"
	statusTimeout   = 3 * time.Second
)

// App is the desktop main window.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	session *session.Session
	status  *statusBar

	fileLabel    *widget.Label
	allFiles     *widget.Check
	resultText   *widget.Label
	runButton    *widget.Button
	saveButton   *widget.Button
	copyButton   *widget.Button
	settingsOpen *settingsDialog
}

// New builds the main window around sess. The window's dialog notifier is
// installed on sess.
func New(a fyne.App, sess *session.Session) *App {
	w := a.NewWindow(windowTitle)
	w.SetIcon(appIcon)
	w.Resize(fyne.NewSize(800, 600))

	g := &App{fyneApp: a, window: w, session: sess}
	g.status = newStatusBar(statusTimeout)
	sess.SetNotifier(notification.Multi{notification.Log{}, newDialogNotifier(w, g.status)})
	w.SetContent(g.build())
	g.refresh()
	return g
}

func (g *App) Window() fyne.Window { return g.window }

func (g *App) ShowAndRun() {
	g.window.ShowAndRun()
}

func (g *App) build() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(windowTitle, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	title.SizeName = theme.SizeNameHeadingText
	settingsButton := widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), g.openSettings)
	header := container.NewBorder(nil, nil, nil, settingsButton, title)

	g.fileLabel = widget.NewLabel(noFileText)
	g.fileLabel.Wrapping = fyne.TextWrapWord
	// Applies to both the open and save dialogs.
	g.allFiles = widget.NewCheck("All files", nil)
	browseButton := widget.NewButtonWithIcon("Browse Images", theme.FolderOpenIcon(), g.browseImage)
	fileCard := widget.NewCard("Image Selection", "",
		container.NewBorder(nil, nil, nil, container.NewHBox(g.allFiles, browseButton), g.fileLabel))

	g.resultText = widget.NewLabel(placeholderText)
	g.resultText.Wrapping = fyne.TextWrapWord
	g.resultText.Importance = widget.LowImportance

	g.runButton = widget.NewButtonWithIcon("Run Recognition", theme.MediaPlayIcon(), g.runRecognition)
	g.saveButton = widget.NewButtonWithIcon("Save Text", theme.DocumentSaveIcon(), g.saveText)
	g.copyButton = widget.NewButtonWithIcon("Copy Text", theme.ContentCopyIcon(), g.copyText)
	buttons := container.NewGridWithColumns(3, g.runButton, g.saveButton, g.copyButton)
	resultsCard := widget.NewCard("Recognition Results", "",
		container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(g.resultText)))

	top := container.NewVBox(header, fileCard)
	return container.NewBorder(top, g.status.label, nil, nil, resultsCard)
}

// refresh applies the session's gating to the buttons.
func (g *App) refresh() {
	setEnabled(g.runButton, g.session.CanRun())
	setEnabled(g.saveButton, g.session.CanSave())
	setEnabled(g.copyButton, g.session.CanSave() && clipboard.Available())
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (g *App) browseImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		g.imageChosen(path)
	}, g.window)
	if filter := g.fileFilter(session.ImageExtensions); filter != nil {
		fd.SetFilter(filter)
	}
	if loc := listable(g.session.Settings().InputDir()); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Resize(g.window.Canvas().Size())
	fd.Show()
}

func (g *App) imageChosen(path string) {
	if err := g.session.SelectImage(path); err != nil {
		log.Printf("Image selection failed: %v", err)
		dialog.ShowError(err, g.window)
		return
	}
	g.fileLabel.SetText(g.session.ImagePath())
	g.refresh()
}

func (g *App) runRecognition() {
	text, err := g.session.Run(context.Background())
	if err != nil {
		g.resultText.Importance = widget.LowImportance
		g.resultText.SetText(placeholderText)
		g.refresh()
		return
	}
	g.resultText.Importance = widget.MediumImportance
	g.resultText.SetText(text)
	g.refresh()
}

func (g *App) saveText() {
	if !g.session.CanSave() {
		_ = g.session.SaveText("")
		return
	}

	defaultPath := g.session.DefaultSavePath()
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()
		g.saveChosen(path)
	}, g.window)
	if filter := g.fileFilter(session.TextExtensions); filter != nil {
		fd.SetFilter(filter)
	}
	fd.SetFileName(filepath.Base(defaultPath))
	if loc := saveLocation(filepath.Dir(defaultPath)); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Resize(g.window.Canvas().Size())
	fd.Show()
}

func (g *App) saveChosen(path string) {
	_ = g.session.SaveText(path)
}

func (g *App) copyText() {
	if err := g.session.Deliver(session.ClipboardTarget{}); err != nil {
		dialog.ShowError(err, g.window)
		return
	}
	g.status.Show("Copied to clipboard")
}

func (g *App) openSettings() {
	g.settingsOpen = newSettingsDialog(g)
	g.settingsOpen.show()
}

// fileFilter restricts a dialog to extensions, or returns nil when the
// "All files" check is set.
func (g *App) fileFilter(extensions []string) storage.FileFilter {
	if g.allFiles.Checked {
		return nil
	}
	return storage.NewExtensionFileFilter(extensions)
}

// saveLocation creates dir and returns it as a dialog location. If dir cannot
// be created the nearest listable ancestor is used.
func saveLocation(dir string) fyne.ListableURI {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Could not create save directory %s: %v", dir, err)
	}
	for {
		if loc := listable(dir); loc != nil {
			return loc
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

// listable returns dir as a dialog location, or nil when it cannot be listed.
func listable(dir string) fyne.ListableURI {
	if dir == "" {
		return nil
	}
	loc, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return loc
}
