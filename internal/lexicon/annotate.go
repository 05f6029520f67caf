package lexicon

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tagespoet/tagespoet/internal/composer"
)

// SyllableSeparator separates syllables in a dictionary form, e.g. "Re·gie\u0331·rung".
const SyllableSeparator = "·"

// StressMarkers are the combining characters the dictionary puts under the
// vowel of a stressed syllable (macron below and dot below).
var StressMarkers = []string{"\u0331", "\u0323"}

// Annotate turns a dictionary form into a candidate word. The stress bit of
// a syllable is set when it carries a stress marker; the rhyme key is the
// lower-cased last syllable without markers. Forms without any stressed
// syllable cannot be placed in a meter and are rejected.
func Annotate(form string) (composer.Word, error) {
	form = strings.TrimSpace(form)
	if form == "" {
		return composer.Word{}, fmt.Errorf("%w: empty form", composer.ErrInvalidWord)
	}

	raw := strings.Split(form, SyllableSeparator)
	for i, s := range raw {
		raw[i] = strings.TrimSpace(s)
		if raw[i] == "" {
			return composer.Word{}, fmt.Errorf("%w: %q has an empty syllable", composer.ErrInvalidWord, form)
		}
	}
	raw = mergeIonSuffix(raw)

	w := composer.Word{
		Syllables: make([]string, len(raw)),
		Stress:    make([]int, len(raw)),
	}
	stressed := false
	for i, s := range raw {
		if hasStressMarker(s) {
			w.Stress[i] = composer.Stressed
			stressed = true
		}
		w.Syllables[i] = stripStressMarkers(s)
	}
	if !stressed {
		return composer.Word{}, fmt.Errorf("%w: %q has no stressed syllable", composer.ErrInvalidWord, form)
	}

	w.Text = strings.Join(w.Syllables, "")
	w.RhymeKey = strings.ToLower(w.Syllables[len(w.Syllables)-1])
	return w, w.Validate()
}

// mergeIonSuffix joins a trailing "on" onto a preceding consonant+"i"
// syllable: the dictionary splits Lek·ti·on where the word is sung Lek·tion.
func mergeIonSuffix(syls []string) []string {
	n := len(syls)
	if n <= 2 || stripStressMarkers(syls[n-1]) != "on" {
		return syls
	}
	prev := []rune(stripStressMarkers(syls[n-2]))
	if len(prev) < 2 || prev[len(prev)-1] != 'i' || !isConsonant(prev[len(prev)-2]) {
		return syls
	}
	merged := append([]string(nil), syls[:n-2]...)
	return append(merged, syls[n-2]+syls[n-1])
}

func isConsonant(r rune) bool {
	r = unicode.ToLower(r)
	if !unicode.IsLetter(r) {
		return false
	}
	return !strings.ContainsRune("aeiouyäöü", r)
}

func hasStressMarker(s string) bool {
	for _, m := range StressMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func stripStressMarkers(s string) string {
	for _, m := range StressMarkers {
		s = strings.ReplaceAll(s, m, "")
	}
	return s
}
