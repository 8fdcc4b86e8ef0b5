package gui

import (
	"errors"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"text-recognition/src/notification"
)

const readyText = "Ready"

// dialogNotifier maps notification levels onto the window: status messages go
// to the status bar, everything else to a modal dialog.
type dialogNotifier struct {
	window fyne.Window
	status *statusBar
}

func newDialogNotifier(w fyne.Window, status *statusBar) *dialogNotifier {
	return &dialogNotifier{window: w, status: status}
}

func (n *dialogNotifier) Notify(level notification.Level, title, message string) {
	switch level {
	case notification.LevelStatus:
		n.status.Show(message)
	case notification.LevelError:
		dialog.ShowError(errors.New(message), n.window)
	default:
		dialog.ShowInformation(title, message, n.window)
	}
}

// statusBar shows a transient message that falls back to "Ready" after
// timeout. A newer message cancels the pending reset of an older one.
type statusBar struct {
	label   *widget.Label
	timeout time.Duration

	mu  sync.Mutex
	gen uint64
}

func newStatusBar(timeout time.Duration) *statusBar {
	return &statusBar{label: widget.NewLabel(readyText), timeout: timeout}
}

func (s *statusBar) Show(message string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	s.label.SetText(message)
	if s.timeout <= 0 {
		return
	}
	time.AfterFunc(s.timeout, func() {
		fyne.Do(func() { s.reset(gen) })
	})
}

func (s *statusBar) reset(gen uint64) {
	s.mu.Lock()
	current := s.gen
	s.mu.Unlock()
	if gen == current {
		s.label.SetText(readyText)
	}
}

func (s *statusBar) Text() string { return s.label.Text }
