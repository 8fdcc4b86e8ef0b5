package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"text-recognition/src/config"
	"text-recognition/src/logutil"
	"text-recognition/src/notification"
	"text-recognition/src/ocr"
	"text-recognition/src/textfile"
)

// ImageExtensions are offered by the image picker; every front-end also has
// an all-files fallback.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff"}

// TextExtensions are offered by the save picker.
var TextExtensions = []string{textfile.Extension}

type Options struct {
	Store      *config.Store
	Settings   *config.Settings
	Recognizer ocr.Recognizer
	Notifier   notification.Notifier
}

// Session is the main window controller. It owns the transient state of one
// run of the application (selected image, recognized text) and holds the
// settings by reference. It is not safe for concurrent use; callers drive it
// from their UI event thread.
type Session struct {
	store      *config.Store
	settings   *config.Settings
	recognizer ocr.Recognizer
	notifier   notification.Notifier

	imagePath string
	baseName  string
	text      string
	ran       bool
}

func New(opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, errors.New("Store is required")
	}
	if opts.Settings == nil {
		return nil, errors.New("Settings is required")
	}

	rec := opts.Recognizer
	if rec == nil {
		rec = ocr.NewPlaceholder(nil)
	}
	n := opts.Notifier
	if n == nil {
		n = notification.Log{}
	}

	return &Session{
		store:      opts.Store,
		settings:   opts.Settings,
		recognizer: rec,
		notifier:   n,
	}, nil
}

// SetNotifier replaces the notifier, for front-ends that can only build one
// after their window exists.
func (s *Session) SetNotifier(n notification.Notifier) {
	if n == nil {
		n = notification.Log{}
	}
	s.notifier = n
}

func (s *Session) Settings() *config.Settings { return s.settings }
func (s *Session) ImagePath() string          { return s.imagePath }
func (s *Session) BaseName() string           { return s.baseName }
func (s *Session) Text() string               { return s.text }

// CanRun reports whether an image has been selected.
func (s *Session) CanRun() bool { return s.imagePath != "" }

// CanSave reports whether recognition has produced text to save.
func (s *Session) CanSave() bool { return s.ran && s.text != "" }

// SaveSettings validates and persists new directories. It returns true when
// the settings were accepted and the settings dialog may close. Validation and
// creation failures leave the settings untouched and return false.
func (s *Session) SaveSettings(inputDir, outputDir string) bool {
	res, err := s.store.Save(s.settings, inputDir, outputDir)
	if err != nil {
		var dirErr *config.OutputDirError
		switch {
		case errors.Is(err, config.ErrInvalidInputDir):
			s.notifier.Notify(notification.LevelWarning, "Invalid Directory", "Input directory does not exist!")
		case errors.As(err, &dirErr):
			s.notifier.Notify(notification.LevelError, "Error", fmt.Sprintf("Could not create output directory: %v", dirErr.Err))
		default:
			s.notifier.Notify(notification.LevelError, "Error", err.Error())
		}
		return false
	}

	if res.CreatedOutputDir {
		s.notifier.Notify(notification.LevelInfo, "Directory Created", fmt.Sprintf("Created output directory: %s", outputDir))
	}
	if res.WriteErr != nil {
		s.notifier.Notify(notification.LevelWarning, "Settings Warning", fmt.Sprintf("Could not save settings: %v", res.WriteErr))
	}
	s.notifier.Notify(notification.LevelStatus, "", "Settings updated")
	return true
}

// SelectImage records the chosen image. Only the path is kept; the file is not
// opened or validated.
func (s *Session) SelectImage(path string) error {
	if path == "" {
		return ocr.ErrNoImage
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve image path: %w", err)
	}
	s.imagePath = abs
	s.baseName = textfile.BaseName(abs)
	log.Printf("Selected image %s", abs)
	s.notifier.Notify(notification.LevelStatus, "", fmt.Sprintf("Selected: %s", filepath.Base(abs)))
	return nil
}

// Run performs recognition on the selected image and replaces the text
// buffer with the result. A failed run leaves the buffer empty.
func (s *Session) Run(ctx context.Context) (string, error) {
	if !s.CanRun() {
		s.notifier.Notify(notification.LevelWarning, "Error", "Please select an image first.")
		return "", ocr.ErrNoImage
	}

	s.text = ""
	s.ran = false
	s.notifier.Notify(notification.LevelStatus, "", "Processing image...")
	text, err := s.recognizer.Recognize(ctx, s.imagePath)
	if err != nil {
		log.Printf("Recognition failed for %s: %v", s.imagePath, err)
		s.notifier.Notify(notification.LevelError, "Error", fmt.Sprintf("Recognition failed: %v", err))
		return "", err
	}

	s.text = text
	s.ran = true
	log.Printf("Recognized text (%d chars): %q", len(text), logutil.Sanitize(text))
	s.notifier.Notify(notification.LevelStatus, "", "Recognition complete")
	return text, nil
}

// DefaultSavePath is the pre-filled save-as suggestion.
func (s *Session) DefaultSavePath() string {
	return textfile.DefaultPath(s.settings.OutputDir(), s.imagePath)
}

// SaveText writes the text buffer to path, creating parent directories.
func (s *Session) SaveText(path string) error {
	if s.text == "" {
		s.notifier.Notify(notification.LevelWarning, "Error", "No text to save.")
		return textfile.ErrEmptyText
	}
	if err := textfile.Write(path, s.text); err != nil {
		log.Printf("Save failed: %v", err)
		s.notifier.Notify(notification.LevelError, "Error", fmt.Sprintf("Could not save file: %v", err))
		return err
	}
	log.Printf("Saved %d chars to %s", len(s.text), path)
	s.notifier.Notify(notification.LevelStatus, "", fmt.Sprintf("Saved to %s", path))
	return nil
}

// Deliver hands the current text to target.
func (s *Session) Deliver(target ResultTarget) error {
	if s.text == "" {
		err := textfile.ErrEmptyText
		_ = target.OnFailure(err)
		return err
	}
	if err := target.OnSuccess(s.text); err != nil {
		_ = target.OnFailure(err)
		return err
	}
	return nil
}
