package runtimeinit

import (
	"errors"
	"fmt"
	"log"

	"text-recognition/src/config"
)

type Options struct {
	LoadOptions config.LoadOptions
	// SetupLogging receives the file-logging switch and the log directory.
	SetupLogging func(enable bool, dir string)
}

// Runtime is what every front-end needs before it can build a session.
// The caller owns Settings and passes it on by reference.
type Runtime struct {
	Config   *config.Config
	Store    *config.Store
	Settings *config.Settings
}

func Bootstrap(opts Options) (*Runtime, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.SetupLogging != nil {
		opts.SetupLogging(cfg.EnableFileLogging, cfg.LogDir)
	}

	store := config.NewStore(cfg.SettingsPath)
	settings, err := store.Load()
	if err != nil {
		// Defaults (or partially parsed values) are in effect; the user is
		// not interrupted.
		var malformed *config.MalformedLinesError
		if errors.As(err, &malformed) {
			log.Printf("Settings: %v", malformed)
		} else {
			log.Printf("Settings: falling back to defaults: %v", err)
		}
	}

	log.Printf("Settings file: %s", cfg.SettingsPath)
	log.Printf("Input directory: %s", settings.InputDir())
	log.Printf("Output directory: %s", settings.OutputDir())

	return &Runtime{Config: cfg, Store: store, Settings: settings}, nil
}
