package notification

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Level classifies a user-facing message.
type Level int

const (
	// LevelStatus is a transient, non-modal message (status bar, verbose log).
	LevelStatus Level = iota
	// LevelInfo is an informational notice, e.g. a directory was created.
	LevelInfo
	// LevelWarning blocks the requested action: validation failures and
	// non-fatal write problems.
	LevelWarning
	// LevelError reports a failed I/O action the user asked for.
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelStatus:
		return "status"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Notifier surfaces messages to the user. Desktop and terminal front-ends map
// levels to dialogs and status lines; headless callers write them out.
type Notifier interface {
	Notify(level Level, title, message string)
}

// Func adapts a plain function to Notifier.
type Func func(level Level, title, message string)

func (f Func) Notify(level Level, title, message string) { f(level, title, message) }

// Log writes every message to the standard logger.
type Log struct{}

func (Log) Notify(level Level, title, message string) {
	log.Printf("[%s] %s: %s", level, title, message)
}

// Writer prints messages to W, one per line. Status messages are printed only
// when Verbose is set.
type Writer struct {
	W       io.Writer
	Verbose bool

	mu sync.Mutex
}

func NewWriter(w io.Writer, verbose bool) *Writer {
	return &Writer{W: w, Verbose: verbose}
}

func (n *Writer) Notify(level Level, title, message string) {
	log.Printf("[%s] %s: %s", level, title, message)
	if level == LevelStatus && !n.Verbose {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if level == LevelStatus {
		fmt.Fprintf(n.W, "%s\n", message)
		return
	}
	fmt.Fprintf(n.W, "%s: %s: %s\n", level, title, message)
}

// Multi fans a message out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(level Level, title, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(level, title, message)
		}
	}
}
