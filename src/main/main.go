package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"text-recognition/src/clipboard"
	"text-recognition/src/config"
	"text-recognition/src/gui"
	"text-recognition/src/logutil"
	"text-recognition/src/notification"
	"text-recognition/src/ocr"
	"text-recognition/src/runtimeinit"
	"text-recognition/src/session"
)

const appID = "io.github.text-recognition"

type mainOptions struct {
	settingsPath string
	fileLogging  bool
}

func main() {
	if err := runWithArgs(normalizeLegacyArgs(os.Args)); err != nil {
		notification.ShowBlockingError("Text Recognition", err.Error())
		os.Exit(1)
	}
}

func runWithArgs(args []string) error {
	if len(args) == 0 {
		args = []string{"text-recognition"}
	}

	opts := &mainOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *mainOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "text-recognition",
		Short:         "Pick an image, run recognition, save the text",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(*opts)
		},
	}

	cmd.Flags().StringVar(&opts.settingsPath, "settings", "", "Path to settings.conf (overrides "+config.SettingsPathEnvVar+")")
	cmd.Flags().BoolVar(&opts.fileLogging, "log", false, "Write a debug log next to the settings file")

	return cmd
}

func runDesktop(opts mainOptions) error {
	enableDPIAwareness()

	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: config.LoadOptions{
			SettingsPathOverride: opts.settingsPath,
			FileLoggingOverride:  opts.fileLogging,
		},
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
		return fmt.Errorf("failed to create session: %w", err)
	}

	log.Printf("Text Recognition initialized")
	gui.New(app.NewWithID(appID), sess).ShowAndRun()
	return nil
}

// normalizeLegacyArgs maps single-dash long flags (-settings, -log) to the
// double-dash form cobra expects.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		for _, name := range []string{"settings", "log"} {
			switch {
			case arg == "-"+name:
				normalized[i] = "--" + name
			case strings.HasPrefix(arg, "-"+name+"="):
				normalized[i] = "-" + arg
			}
		}
	}

	return normalized
}
