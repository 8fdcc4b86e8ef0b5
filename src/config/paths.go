package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSettingsPath returns <UserConfigDir>/text_recognition/settings.conf,
// which is ~/.config/text_recognition/settings.conf on Linux.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("resolve config directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppDirName, SettingsFileName), nil
}

// DefaultInputDir is the user's Pictures folder.
func DefaultInputDir() string {
	if dir, ok := knownFolder(folderPictures); ok {
		return dir
	}
	return filepath.Join(homeDir(), "Pictures")
}

// DefaultOutputDir is Documents/TextRecognition under the user's Documents folder.
func DefaultOutputDir() string {
	docs, ok := knownFolder(folderDocuments)
	if !ok {
		docs = filepath.Join(homeDir(), "Documents")
	}
	return filepath.Join(docs, "TextRecognition")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
