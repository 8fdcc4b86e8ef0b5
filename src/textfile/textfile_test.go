package textfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/home/u/Pictures/cat.jpg", "cat"},
		{"scan.final.png", "scan.final"},
		{"/tmp/noext", "noext"},
		{"/tmp/.hidden", ".hidden"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BaseName(tt.in); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultPath(t *testing.T) {
	out := filepath.Join("home", "u", "Documents", "TextRecognition")
	if got, want := DefaultPath(out, "/home/u/Pictures/cat.jpg"), filepath.Join(out, "cat.txt"); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
	if got, want := DefaultPath(out, ""), filepath.Join(out, "recognized_text.txt"); got != want {
		t.Errorf("DefaultPath without image = %q, want %q", got, want)
	}
}

func TestWriteRejectsEmptyText(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never")
	err := Write(filepath.Join(dir, "a.txt"), "")
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("err = %v, want ErrEmptyText", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("Write touched the filesystem for empty text")
	}
}

func TestWriteCreatesParentsAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "cat.txt")
	first := "first version that is longer"
	if err := Write(path, first); err != nil {
		t.Fatalf("Write: %v", err)
	}
	second := "Lorem ipsum.\n\nUt in nulla enim — ünïcode."
	if err := Write(path, second); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != second {
		t.Errorf("file = %q, want %q", got, second)
	}
}

func TestWriteReportsFailure(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Write(filepath.Join(blocker, "out.txt"), "text"); err == nil {
		t.Error("expected an error when the parent is a file")
	}
}
