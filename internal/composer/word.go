// Package composer assembles poems from annotated candidate words under a fixed
// meter and rhyme scheme. It is a randomized constraint solver: lines are filled
// back-to-front from a shared candidate pool, rhyme groups are pinned by the
// first line that completes, and repeated failure escalates to a larger pool.
package composer

import (
	"fmt"
	"strings"
)

// Stress markers for a single syllable.
const (
	Unstressed = 0
	Stressed   = 1
)

// Word is an annotated candidate word. Word data is never mutated once it
// enters a Pool.
type Word struct {
	Text      string   `json:"text"`
	Syllables []string `json:"syllables"`
	Stress    []int    `json:"stress"`
	RhymeKey  string   `json:"rhymeKey"`
}

// Validate checks the structural invariants of an annotated word.
func (w Word) Validate() error {
	if strings.TrimSpace(w.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidWord)
	}
	if len(w.Stress) == 0 {
		return fmt.Errorf("%w: %q has no syllables", ErrInvalidWord, w.Text)
	}
	if len(w.Syllables) != len(w.Stress) {
		return fmt.Errorf("%w: %q has %d syllables but %d stress marks",
			ErrInvalidWord, w.Text, len(w.Syllables), len(w.Stress))
	}
	for _, s := range w.Stress {
		if s != Stressed && s != Unstressed {
			return fmt.Errorf("%w: %q has stress value %d", ErrInvalidWord, w.Text, s)
		}
	}
	if w.RhymeKey == "" {
		return fmt.Errorf("%w: %q has no rhyme key", ErrInvalidWord, w.Text)
	}
	return nil
}

// SyllableCount returns the number of syllables in the word.
func (w Word) SyllableCount() int {
	return len(w.Stress)
}

// ParsePattern parses a stress pattern written as a string of 0s and 1s,
// e.g. "10010010010".
func ParsePattern(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty stress pattern", ErrInvalidConfig)
	}
	out := make([]int, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			out = append(out, Unstressed)
		case '1':
			out = append(out, Stressed)
		default:
			return nil, fmt.Errorf("%w: stress pattern %q has invalid character %q at %d", ErrInvalidConfig, s, r, i)
		}
	}
	return out, nil
}

// FormatPattern renders a stress pattern as a string of 0s and 1s.
func FormatPattern(p []int) string {
	var sb strings.Builder
	for _, b := range p {
		if b == Stressed {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
