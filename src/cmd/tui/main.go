package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"text-recognition/src/clipboard"
	"text-recognition/src/config"
	"text-recognition/src/logutil"
	"text-recognition/src/ocr"
	"text-recognition/src/runtimeinit"
	"text-recognition/src/session"
	"text-recognition/src/tui"
)

type tuiOptions struct {
	settingsPath string
	fileLogging  bool
}

func main() {
	opts := &tuiOptions{}
	if err := newRootCmd(opts).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *tuiOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "text-recognition-tui",
		Short:         "Terminal front-end for text recognition",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(*opts)
		},
	}

	cmd.Flags().StringVar(&opts.settingsPath, "settings", "", "Path to settings.conf (overrides "+config.SettingsPathEnvVar+")")
	cmd.Flags().BoolVar(&opts.fileLogging, "log", false, "Write a debug log next to the settings file")

	return cmd
}

func runTUI(opts tuiOptions) error {
	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: config.LoadOptions{
			SettingsPathOverride: opts.settingsPath,
			FileLoggingOverride:  opts.fileLogging,
		},
		// Disabled file logging discards output; the alternate screen owns the terminal.
		SetupLogging: logutil.Setup,
	})
	if err != nil {
		return err
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable, copy disabled: %v", err)
	}

	sess, err := session.New(session.Options{
		Store:      rt.Store,
		Settings:   rt.Settings,
		Recognizer: ocr.NewPlaceholder(nil),
	})
	if err != nil {
		return err
	}

	if err := tui.Run(sess); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
