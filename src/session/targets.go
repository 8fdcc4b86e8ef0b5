package session

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"text-recognition/src/clipboard"
	"text-recognition/src/ocr"
)

// ResultTarget receives the outcome of a delivery.
type ResultTarget interface {
	OnSuccess(text string) error
	OnFailure(err error) error
}

type ClipboardTarget struct{}

func (ClipboardTarget) OnSuccess(text string) error {
	if err := clipboard.Write(text); err != nil {
		return fmt.Errorf("clipboard error: %w", err)
	}
	return nil
}

func (ClipboardTarget) OnFailure(err error) error {
	return nil
}

type StdoutTarget struct {
	Writer io.Writer
}

func (t StdoutTarget) OnSuccess(text string) error {
	w := t.Writer
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprint(w, text)
	return err
}

func (t StdoutTarget) OnFailure(err error) error {
	return nil
}

// Result is the JSON document written by JSONTarget.
type Result struct {
	Text       string   `json:"text"`
	Source     string   `json:"source"`
	Paragraphs []string `json:"paragraphs"`
	SavedTo    string   `json:"saved_to,omitempty"`
	Timestamp  string   `json:"timestamp"`
	CharCount  int      `json:"character_count"`
}

type JSONTarget struct {
	Writer  io.Writer
	Source  string
	SavedTo string
	// Now defaults to time.Now.
	Now func() time.Time
}

func (t JSONTarget) OnSuccess(text string) error {
	w := t.Writer
	if w == nil {
		w = os.Stdout
	}
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}

	result := Result{
		Text:       text,
		Source:     t.Source,
		Paragraphs: ocr.Split(text),
		SavedTo:    t.SavedTo,
		Timestamp:  now().UTC().Format(time.RFC3339),
		CharCount:  len(text),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func (t JSONTarget) OnFailure(err error) error {
	return nil
}
