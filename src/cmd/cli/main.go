package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"text-recognition/src/clipboard"
	"text-recognition/src/config"
	"text-recognition/src/logutil"
	"text-recognition/src/notification"
	"text-recognition/src/ocr"
	"text-recognition/src/runtimeinit"
	"text-recognition/src/session"
)

type cliOptions struct {
	settingsPath string
	verbose      bool

	imagePath  string
	save       bool
	outPath    string
	jsonOutput bool
	copyText   bool

	inputDir  string
	outputDir string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return runWithArgs(normalizeLegacyArgs(os.Args))
}

func runWithArgs(args []string) error {
	if len(args) == 0 {
		args = []string{"text-recognition-cli"}
	}

	opts := &cliOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "text-recognition-cli",
		Short:         "Recognize text in images and manage settings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "Path to settings.conf (overrides "+config.SettingsPathEnvVar+")")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")

	cmd.AddCommand(newRecognizeCmd(opts), newSettingsCmd(opts))
	return cmd
}

func newRecognizeCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recognize",
		Short: "Run recognition on an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecognize(cmd, *opts)
		},
	}

	cmd.Flags().StringVar(&opts.imagePath, "image", "", "Path to the image file")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Save the text to the default path in the output directory")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "Save the text to this path (implies --save)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.copyText, "copy", false, "Also copy the text to the clipboard")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newSettingsCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the input and output directories",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsShow(cmd, *opts)
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Validate and persist new directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(cmd, *opts)
		},
	}
	set.Flags().StringVar(&opts.inputDir, "input-dir", "", "Directory image selection starts in (must exist)")
	set.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory saved text goes to (created if missing)")

	cmd.AddCommand(show, set)
	return cmd
}

// bootstrap configures logging and builds a session whose messages go to the
// command's stderr.
func bootstrap(cmd *cobra.Command, opts cliOptions) (*runtimeinit.Runtime, *session.Session, error) {
	stderr := cmd.ErrOrStderr()

	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: config.LoadOptions{SettingsPathOverride: opts.settingsPath},
		SetupLogging: func(enable bool, dir string) {
			// Configure logging BEFORE any other operations.
			switch {
			case enable:
				logutil.Setup(true, dir)
			case opts.verbose:
				log.SetOutput(stderr)
			default:
				log.SetOutput(io.Discard)
			}
		},
	})
	if err != nil {
		return nil, nil, err
	}

	sess, err := session.New(session.Options{
		Store:      rt.Store,
		Settings:   rt.Settings,
		Recognizer: ocr.NewPlaceholder(nil),
		Notifier:   notification.NewWriter(stderr, opts.verbose),
	})
	if err != nil {
		return nil, nil, err
	}
	return rt, sess, nil
}

func runRecognize(cmd *cobra.Command, opts cliOptions) error {
	info, err := os.Stat(opts.imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", opts.imagePath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("image %s is a directory", opts.imagePath)
	}

	_, sess, err := bootstrap(cmd, opts)
	if err != nil {
		return err
	}

	if err := sess.SelectImage(opts.imagePath); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := sess.Run(ctx); err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	var savedTo string
	if opts.save || opts.outPath != "" {
		savedTo = opts.outPath
		if savedTo == "" {
			savedTo = sess.DefaultSavePath()
		}
		if err := sess.SaveText(savedTo); err != nil {
			return err
		}
	}

	if opts.copyText {
		if err := clipboard.Init(); err != nil {
			return err
		}
		if err := sess.Deliver(session.ClipboardTarget{}); err != nil {
			return err
		}
	}

	var target session.ResultTarget = session.StdoutTarget{Writer: cmd.OutOrStdout()}
	if opts.jsonOutput {
		target = session.JSONTarget{Writer: cmd.OutOrStdout(), Source: opts.imagePath, SavedTo: savedTo}
	}
	return sess.Deliver(target)
}

func runSettingsShow(cmd *cobra.Command, opts cliOptions) error {
	rt, _, err := bootstrap(cmd, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "settings_file=%s\n", rt.Config.SettingsPath)
	for _, key := range rt.Settings.Keys() {
		value, _ := rt.Settings.Get(key)
		fmt.Fprintf(out, "%s=%s\n", key, value)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, opts cliOptions) error {
	_, sess, err := bootstrap(cmd, opts)
	if err != nil {
		return err
	}

	// Unset flags keep the current value.
	inputDir := opts.inputDir
	if inputDir == "" {
		inputDir = sess.Settings().InputDir()
	}
	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = sess.Settings().OutputDir()
	}

	if !sess.SaveSettings(inputDir, outputDir) {
		return fmt.Errorf("settings were not changed")
	}
	return nil
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	long := []string{"image", "out", "save", "json", "copy", "verbose", "settings", "input-dir", "output-dir"}
	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		for _, name := range long {
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
