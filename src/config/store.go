package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// ErrInvalidInputDir is returned by Store.Save when the input directory does
// not exist or is not a directory.
var ErrInvalidInputDir = errors.New("input directory does not exist")

// OutputDirError reports a missing output directory that could not be created.
type OutputDirError struct {
	Path string
	Err  error
}

func (e *OutputDirError) Error() string {
	return fmt.Sprintf("could not create output directory %s: %v", e.Path, e.Err)
}

func (e *OutputDirError) Unwrap() error { return e.Err }

// SaveResult describes a save that passed validation.
type SaveResult struct {
	// CreatedOutputDir is set when the output directory was missing and has
	// been created.
	CreatedOutputDir bool
	// WriteErr is non-nil when the settings file could not be written. The
	// in-memory settings are updated regardless.
	WriteErr error
}

// Store persists Settings as a key=value file at Path.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load returns the defaults overlaid with whatever the settings file holds.
// The returned settings are always usable. The error is diagnostic only: it is
// non-nil when the file exists but cannot be read, or when lines were skipped.
// A missing file is not an error.
func (st *Store) Load() (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(st.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}

	if skipped := parseInto(s, string(data)); len(skipped) > 0 {
		return s, &MalformedLinesError{Path: st.Path, Lines: skipped}
	}
	return s, nil
}

// Save validates the two directories, applies them to s and rewrites the whole
// settings file.
//
// A missing or non-directory inputDir fails with ErrInvalidInputDir. A missing
// outputDir is created; if that fails the error is an *OutputDirError. In both
// cases s and the file are left untouched.
func (st *Store) Save(s *Settings, inputDir, outputDir string) (SaveResult, error) {
	var res SaveResult

	if !isDir(inputDir) {
		return res, fmt.Errorf("%w: %q", ErrInvalidInputDir, inputDir)
	}

	if !isDir(outputDir) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return res, &OutputDirError{Path: outputDir, Err: err}
		}
		res.CreatedOutputDir = true
		log.Printf("Created output directory %s", outputDir)
	}

	s.Set(InputDirKey, inputDir)
	s.Set(OutputDirKey, outputDir)

	if err := st.write(s); err != nil {
		log.Printf("Warning: could not write settings to %s: %v", st.Path, err)
		res.WriteErr = err
	}
	return res, nil
}

func (st *Store) write(s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(st.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(st.Path, []byte(format(s)), 0644)
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
