package ocr

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
)

// ErrNoImage is returned when recognition is requested before an image is selected.
var ErrNoImage = errors.New("no image selected")

// ParagraphSeparator joins the paragraphs of a result: exactly one blank line.
const ParagraphSeparator = "\n\n"

// Paragraphs is the fixed pool the placeholder engine draws from.
var Paragraphs = [...]string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nullam in dui mauris. Vivamus hendrerit arcu sed erat molestie vehicula. Sed auctor neque eu tellus rhoncus ut eleifend nibh porttitor.",
	"Ut in nulla enim. Phasellus molestie magna non est bibendum non venenatis nisl tempor. Suspendisse dictum feugiat nisl ut dapibus. Mauris iaculis porttitor posuere.",
	"Sed ut perspiciatis unde omnis iste natus error sit voluptatem accusantium doloremque laudantium, totam rem aperiam, eaque ipsa quae ab illo inventore veritatis et quasi architecto beatae vitae dicta sunt explicabo.",
	"Nemo enim ipsam voluptatem quia voluptas sit aspernatur aut odit aut fugit, sed quia consequuntur magni dolores eos qui ratione voluptatem sequi nesciunt.",
}

// Recognizer turns the image at imagePath into text.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Placeholder is a stand-in Recognizer. It never opens the image: every call
// returns 1 to 4 distinct paragraphs from Paragraphs in random order.
type Placeholder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlaceholder returns a Placeholder drawing from src. A nil src uses the
// runtime's randomly seeded generator.
func NewPlaceholder(src rand.Source) *Placeholder {
	p := &Placeholder{}
	if src != nil {
		p.rng = rand.New(src)
	}
	return p
}

func (p *Placeholder) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if imagePath == "" {
		return "", ErrNoImage
	}

	picked := p.sample()
	log.Printf("Placeholder recognition for %s: %d paragraph(s)", imagePath, len(picked))
	return strings.Join(picked, ParagraphSeparator), nil
}

// sample draws k in [1, len(Paragraphs)] and returns k paragraphs without
// replacement.
func (p *Placeholder) sample() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	intN, perm := rand.IntN, rand.Perm
	if p.rng != nil {
		intN, perm = p.rng.IntN, p.rng.Perm
	}

	k := 1 + intN(len(Paragraphs))
	order := perm(len(Paragraphs))[:k]
	out := make([]string, 0, k)
	for _, i := range order {
		out = append(out, Paragraphs[i])
	}
	return out
}

// Split breaks a result back into its paragraphs.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, ParagraphSeparator)
}
