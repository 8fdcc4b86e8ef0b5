package config

import (
	"fmt"
	"strings"
)

const (
	InputDirKey  = "input_dir"
	OutputDirKey = "output_dir"
)

// Settings is the flat key/value configuration edited through the settings
// dialog. Known keys come first; keys read from disk that this version does not
// understand are kept in first-seen order so they survive a save.
type Settings struct {
	values map[string]string
	order  []string
}

// DefaultSettings returns settings pointing at the platform Pictures folder and
// Documents/TextRecognition.
func DefaultSettings() *Settings {
	s := &Settings{values: make(map[string]string)}
	s.Set(InputDirKey, DefaultInputDir())
	s.Set(OutputDirKey, DefaultOutputDir())
	return s
}

func (s *Settings) InputDir() string  { return s.values[InputDirKey] }
func (s *Settings) OutputDir() string { return s.values[OutputDirKey] }

func (s *Settings) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key. A new key is appended to the write order.
func (s *Settings) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

// Keys returns the keys in write order.
func (s *Settings) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// MalformedLinesError lists the 1-based line numbers skipped while parsing.
type MalformedLinesError struct {
	Path  string
	Lines []int
}

func (e *MalformedLinesError) Error() string {
	return fmt.Sprintf("settings file %s: skipped %d malformed line(s) %v", e.Path, len(e.Lines), e.Lines)
}

// parseInto applies every key=value line of data to s. Each line is trimmed and
// split on its first '='; lines without '=' are skipped and returned by number.
// An empty key is kept like any other so it survives a save. Later lines
// overwrite earlier ones.
func parseInto(s *Settings, data string) []int {
	var skipped []int
	for i, raw := range strings.Split(data, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			skipped = append(skipped, i+1)
			continue
		}
		s.Set(key, value)
	}
	return skipped
}

// format renders every key as key=value followed by a newline. Values are
// written verbatim; there is no quoting or escaping.
func format(s *Settings) string {
	var b strings.Builder
	for _, k := range s.order {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.values[k])
		b.WriteByte('\n')
	}
	return b.String()
}
