package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"text-recognition/src/config"
	"text-recognition/src/notification"
	"text-recognition/src/ocr"
	"text-recognition/src/textfile"
)

type event struct {
	level   notification.Level
	title   string
	message string
}

type recorder struct{ events []event }

func (r *recorder) Notify(level notification.Level, title, message string) {
	r.events = append(r.events, event{level, title, message})
}

func (r *recorder) has(level notification.Level, substr string) bool {
	for _, e := range r.events {
		if e.level == level && strings.Contains(e.message, substr) {
			return true
		}
	}
	return false
}

func (r *recorder) count(level notification.Level) int {
	n := 0
	for _, e := range r.events {
		if e.level == level {
			n++
		}
	}
	return n
}

type fixedRecognizer struct {
	text  string
	err   error
	calls int
}

func (f *fixedRecognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fixture struct {
	root  string
	store *config.Store
	rec   *recorder
	s     *Session
}

func newFixture(t *testing.T, recognizer ocr.Recognizer) *fixture {
	t.Helper()
	root := t.TempDir()
	store := config.NewStore(filepath.Join(root, ".config", config.AppDirName, config.SettingsFileName))
	settings := config.DefaultSettings()
	settings.Set(config.InputDirKey, filepath.Join(root, "Pictures"))
	settings.Set(config.OutputDirKey, filepath.Join(root, "Documents", "TextRecognition"))

	rec := &recorder{}
	s, err := New(Options{Store: store, Settings: settings, Recognizer: recognizer, Notifier: rec})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &fixture{root: root, store: store, rec: rec, s: s}
}

func TestNewRequiresStoreAndSettings(t *testing.T) {
	if _, err := New(Options{Settings: config.DefaultSettings()}); err == nil {
		t.Error("expected error without Store")
	}
	if _, err := New(Options{Store: config.NewStore("x")}); err == nil {
		t.Error("expected error without Settings")
	}
}

func TestGating(t *testing.T) {
	f := newFixture(t, &fixedRecognizer{text: "hello"})
	if f.s.CanRun() || f.s.CanSave() {
		t.Fatal("run/save enabled before any selection")
	}

	if err := f.s.SelectImage(filepath.Join(f.root, "Pictures", "cat.jpg")); err != nil {
		t.Fatalf("SelectImage: %v", err)
	}
	if !f.s.CanRun() {
		t.Error("run disabled after selection")
	}
	if f.s.CanSave() {
		t.Error("save enabled before recognition")
	}

	if _, err := f.s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !f.s.CanSave() {
		t.Error("save disabled after recognition")
	}
}

func TestRunWithoutImageWarns(t *testing.T) {
	fr := &fixedRecognizer{text: "hello"}
	f := newFixture(t, fr)
	if _, err := f.s.Run(context.Background()); !errors.Is(err, ocr.ErrNoImage) {
		t.Fatalf("Run error = %v, want ErrNoImage", err)
	}
	if fr.calls != 0 {
		t.Error("recognizer called without an image")
	}
	if !f.rec.has(notification.LevelWarning, "Please select an image first.") {
		t.Errorf("missing warning, events = %+v", f.rec.events)
	}
}

func TestRunFailureReportsError(t *testing.T) {
	f := newFixture(t, &fixedRecognizer{err: errors.New("boom")})
	_ = f.s.SelectImage("cat.png")
	if _, err := f.s.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if f.s.CanSave() {
		t.Error("save enabled after failed recognition")
	}
	if !f.rec.has(notification.LevelError, "boom") {
		t.Errorf("missing error notice, events = %+v", f.rec.events)
	}
}

func TestRunReplacesText(t *testing.T) {
	fr := &fixedRecognizer{text: "first"}
	f := newFixture(t, fr)
	_ = f.s.SelectImage("cat.png")
	_, _ = f.s.Run(context.Background())
	fr.text = "second"
	_, _ = f.s.Run(context.Background())
	if f.s.Text() != "second" {
		t.Errorf("Text = %q, want %q", f.s.Text(), "second")
	}
}

func TestFailedRunClearsPreviousText(t *testing.T) {
	fr := &fixedRecognizer{text: "first"}
	f := newFixture(t, fr)
	_ = f.s.SelectImage("cat.png")
	if _, err := f.s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	fr.text, fr.err = "", errors.New("boom")
	if _, err := f.s.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if f.s.Text() != "" {
		t.Errorf("Text = %q after a failed run, want empty", f.s.Text())
	}
	if f.s.CanSave() {
		t.Error("save enabled with output from an earlier run")
	}
}

func TestSelectImageStoresAbsolutePathAndBaseName(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.s.SelectImage("relative/dir/scan.TIFF"); err != nil {
		t.Fatalf("SelectImage: %v", err)
	}
	if !filepath.IsAbs(f.s.ImagePath()) {
		t.Errorf("ImagePath %q is not absolute", f.s.ImagePath())
	}
	if f.s.BaseName() != "scan" {
		t.Errorf("BaseName = %q, want scan", f.s.BaseName())
	}
	if !f.rec.has(notification.LevelStatus, "Selected: scan.TIFF") {
		t.Errorf("missing status, events = %+v", f.rec.events)
	}
	if err := f.s.SelectImage(""); !errors.Is(err, ocr.ErrNoImage) {
		t.Errorf("SelectImage(\"\") = %v, want ErrNoImage", err)
	}
}

func TestDefaultSavePath(t *testing.T) {
	f := newFixture(t, nil)
	out := f.s.Settings().OutputDir()
	if got := f.s.DefaultSavePath(); got != filepath.Join(out, "recognized_text.txt") {
		t.Errorf("DefaultSavePath without image = %q", got)
	}
	_ = f.s.SelectImage(filepath.Join(f.root, "Pictures", "cat.jpg"))
	if got := f.s.DefaultSavePath(); got != filepath.Join(out, "cat.txt") {
		t.Errorf("DefaultSavePath = %q", got)
	}
}

func TestSelectRunSaveWithDefaultPath(t *testing.T) {
	f := newFixture(t, ocr.NewPlaceholder(nil))
	if err := f.s.SelectImage(filepath.Join(f.root, "Pictures", "cat.jpg")); err != nil {
		t.Fatal(err)
	}
	text, err := f.s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	path := f.s.DefaultSavePath()
	if want := filepath.Join(f.root, "Documents", "TextRecognition", "cat.txt"); path != want {
		t.Fatalf("DefaultSavePath = %q, want %q", path, want)
	}
	if err := f.s.SaveText(path); err != nil {
		t.Fatalf("SaveText: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != text {
		t.Errorf("saved content differs from buffer")
	}
	if n := len(ocr.Split(string(got))); n < 1 || n > len(ocr.Paragraphs) {
		t.Errorf("saved %d paragraphs", n)
	}
	if !f.rec.has(notification.LevelStatus, "Saved to "+path) {
		t.Errorf("missing status, events = %+v", f.rec.events)
	}
}

func TestSaveTextWithEmptyBufferIsRejected(t *testing.T) {
	f := newFixture(t, nil)
	path := filepath.Join(f.root, "out", "x.txt")
	if err := f.s.SaveText(path); !errors.Is(err, textfile.ErrEmptyText) {
		t.Fatalf("SaveText error = %v, want ErrEmptyText", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); !os.IsNotExist(err) {
		t.Error("filesystem touched for empty buffer")
	}
	if !f.rec.has(notification.LevelWarning, "No text to save.") {
		t.Errorf("missing warning, events = %+v", f.rec.events)
	}
}

func TestSaveTextFailureReportsError(t *testing.T) {
	f := newFixture(t, &fixedRecognizer{text: "hello"})
	_ = f.s.SelectImage("cat.png")
	_, _ = f.s.Run(context.Background())

	blocker := filepath.Join(f.root, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := f.s.SaveText(filepath.Join(blocker, "cat.txt")); err == nil {
		t.Fatal("expected error")
	}
	if !f.rec.has(notification.LevelError, "Could not save file") {
		t.Errorf("missing error, events = %+v", f.rec.events)
	}
}

func TestSaveSettings(t *testing.T) {
	f := newFixture(t, nil)
	in := filepath.Join(f.root, "Pictures")
	if err := os.MkdirAll(in, 0755); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(f.root, "new-output")

	if !f.s.SaveSettings(in, out) {
		t.Fatalf("SaveSettings rejected valid input, events = %+v", f.rec.events)
	}
	if !f.rec.has(notification.LevelInfo, "Created output directory: "+out) {
		t.Errorf("missing creation notice, events = %+v", f.rec.events)
	}
	if f.s.Settings().OutputDir() != out {
		t.Errorf("OutputDir = %q", f.s.Settings().OutputDir())
	}

	reloaded, err := f.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.InputDir() != in || reloaded.OutputDir() != out {
		t.Errorf("persisted (%q, %q)", reloaded.InputDir(), reloaded.OutputDir())
	}

	f.rec.events = nil
	if !f.s.SaveSettings(in, out) {
		t.Fatal("re-save rejected")
	}
	if f.rec.count(notification.LevelInfo) != 0 {
		t.Errorf("creation notice on re-save, events = %+v", f.rec.events)
	}
}

func TestSaveSettingsInvalidInput(t *testing.T) {
	f := newFixture(t, nil)
	if f.s.SaveSettings(filepath.Join(f.root, "missing"), f.root) {
		t.Fatal("SaveSettings accepted a missing input directory")
	}
	if !f.rec.has(notification.LevelWarning, "Input directory does not exist!") {
		t.Errorf("missing warning, events = %+v", f.rec.events)
	}
	if _, err := os.Stat(f.store.Path); !os.IsNotExist(err) {
		t.Error("settings file written")
	}
}

func TestSaveSettingsOutputCreationFailure(t *testing.T) {
	f := newFixture(t, nil)
	blocker := filepath.Join(f.root, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if f.s.SaveSettings(f.root, filepath.Join(blocker, "out")) {
		t.Fatal("SaveSettings accepted an uncreatable output directory")
	}
	if !f.rec.has(notification.LevelError, "Could not create output directory") {
		t.Errorf("missing error, events = %+v", f.rec.events)
	}
}

func TestSaveSettingsWriteFailureStillAccepts(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	s, err := New(Options{
		Store:    config.NewStore(filepath.Join(blocker, config.SettingsFileName)),
		Settings: config.DefaultSettings(),
		Notifier: rec,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !s.SaveSettings(root, root) {
		t.Fatal("write failure should not reject the save")
	}
	if !rec.has(notification.LevelWarning, "Could not save settings") {
		t.Errorf("missing warning, events = %+v", rec.events)
	}
	if s.Settings().InputDir() != root {
		t.Errorf("in-memory InputDir = %q", s.Settings().InputDir())
	}
}

func TestDeliver(t *testing.T) {
	f := newFixture(t, &fixedRecognizer{text: "alpha\n\nbeta"})

	var buf bytes.Buffer
	if err := f.s.Deliver(StdoutTarget{Writer: &buf}); !errors.Is(err, textfile.ErrEmptyText) {
		t.Errorf("Deliver before run = %v, want ErrEmptyText", err)
	}

	_ = f.s.SelectImage("cat.png")
	_, _ = f.s.Run(context.Background())
	if err := f.s.Deliver(StdoutTarget{Writer: &buf}); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if buf.String() != "alpha\n\nbeta" {
		t.Errorf("stdout = %q", buf.String())
	}

	buf.Reset()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	target := JSONTarget{Writer: &buf, Source: f.s.ImagePath(), Now: func() time.Time { return fixed }}
	if err := f.s.Deliver(target); err != nil {
		t.Fatalf("Deliver JSON: %v", err)
	}
	var res Result
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Paragraphs) != 2 || res.CharCount != len("alpha\n\nbeta") || res.Timestamp != "2026-01-02T03:04:05Z" {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Source != f.s.ImagePath() {
		t.Errorf("Source = %q", res.Source)
	}
}
