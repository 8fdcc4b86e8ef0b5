package clipboard

import (
	"errors"
	"sync"

	"golang.design/x/clipboard"
)

var (
	writeMu sync.Mutex
	initErr error
	ready   bool
)

// ErrUnavailable is returned by Write when the system clipboard could not be
// initialized (headless session, missing X11/Wayland libraries).
var ErrUnavailable = errors.New("clipboard unavailable")

// Init prepares the system clipboard. It is safe to call more than once.
func Init() error {
	writeMu.Lock()
	defer writeMu.Unlock()
	if ready {
		return nil
	}
	if initErr = clipboard.Init(); initErr == nil {
		ready = true
	}
	return initErr
}

// Available reports whether Init succeeded.
func Available() bool {
	writeMu.Lock()
	defer writeMu.Unlock()
	return ready
}

// Write performs a mutex-guarded clipboard write to prevent corruption under parallel writes.
func Write(text string) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	if !ready {
		if initErr != nil {
			return errors.Join(ErrUnavailable, initErr)
		}
		return ErrUnavailable
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
