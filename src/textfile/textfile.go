// Package textfile derives default output paths and writes recognized text.
package textfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	Extension = ".txt"
	// FallbackBaseName names the output when no image was ever selected.
	FallbackBaseName = "recognized_text"
)

// ErrEmptyText is returned by Write when there is nothing to save.
var ErrEmptyText = errors.New("no text to save")

// BaseName returns the file name of path without its extension. A name that is
// only an extension, such as ".hidden", is returned whole.
func BaseName(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

// DefaultPath is <outputDir>/<stem of imagePath>.txt, or
// <outputDir>/recognized_text.txt when imagePath is empty.
func DefaultPath(outputDir, imagePath string) string {
	name := BaseName(imagePath)
	if name == "" {
		name = FallbackBaseName
	}
	return filepath.Join(outputDir, name+Extension)
}

// Write replaces the file at path with text, creating missing parent
// directories. Empty text is rejected before the filesystem is touched.
func Write(path, text string) error {
	if text == "" {
		return ErrEmptyText
	}
	if path == "" {
		return errors.New("no output path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
