package ocr

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func paragraphIndex(p string) int {
	for i, known := range Paragraphs {
		if p == known {
			return i
		}
	}
	return -1
}

func TestRecognizeReturnsDistinctKnownParagraphs(t *testing.T) {
	rec := NewPlaceholder(rand.NewPCG(1, 2))
	seenCounts := map[int]bool{}

	for run := 0; run < 500; run++ {
		text, err := rec.Recognize(context.Background(), "/home/u/Pictures/cat.jpg")
		if err != nil {
			t.Fatalf("Recognize: %v", err)
		}
		if strings.Contains(text, "\n\n\n") || strings.HasPrefix(text, "\n") || strings.HasSuffix(text, "\n") {
			t.Fatalf("unexpected separators in %q", text)
		}

		parts := Split(text)
		if len(parts) < 1 || len(parts) > len(Paragraphs) {
			t.Fatalf("got %d paragraphs, want 1..%d", len(parts), len(Paragraphs))
		}
		used := map[int]bool{}
		for _, p := range parts {
			idx := paragraphIndex(p)
			if idx < 0 {
				t.Fatalf("unknown paragraph %q", p)
			}
			if used[idx] {
				t.Fatalf("paragraph %d repeated in %q", idx, text)
			}
			used[idx] = true
		}
		seenCounts[len(parts)] = true
	}

	for k := 1; k <= len(Paragraphs); k++ {
		if !seenCounts[k] {
			t.Errorf("never produced %d paragraph(s) in 500 runs", k)
		}
	}
}

func TestRecognizeIsDeterministicForSeed(t *testing.T) {
	a := NewPlaceholder(rand.NewPCG(7, 7))
	b := NewPlaceholder(rand.NewPCG(7, 7))
	for i := 0; i < 20; i++ {
		ta, _ := a.Recognize(context.Background(), "x.png")
		tb, _ := b.Recognize(context.Background(), "x.png")
		if ta != tb {
			t.Fatalf("run %d differs for identical seeds", i)
		}
	}
}

func TestRecognizeDefaultSource(t *testing.T) {
	text, err := NewPlaceholder(nil).Recognize(context.Background(), "x.png")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if n := len(Split(text)); n < 1 || n > 4 {
		t.Errorf("got %d paragraphs", n)
	}
}

func TestRecognizeRequiresImage(t *testing.T) {
	_, err := NewPlaceholder(nil).Recognize(context.Background(), "")
	if !errors.Is(err, ErrNoImage) {
		t.Errorf("err = %v, want ErrNoImage", err)
	}
}

func TestRecognizeDoesNotReadImage(t *testing.T) {
	// The path does not exist; the placeholder must not care.
	if _, err := NewPlaceholder(nil).Recognize(context.Background(), "/does/not/exist.tiff"); err != nil {
		t.Errorf("Recognize: %v", err)
	}
}

func TestRecognizeHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewPlaceholder(nil).Recognize(ctx, "x.png"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
