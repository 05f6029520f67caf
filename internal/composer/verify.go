package composer

import (
	"fmt"
	"slices"
)

// Verify checks a finished poem against the meter and rhyme scheme: every
// line's stress sequence equals its template, every rhyme group ends on one
// rhyme key, and no word text appears twice.
func Verify(meter [][]int, scheme []int, lines [][]Word) error {
	if len(lines) != len(meter) {
		return fmt.Errorf("%w: %d lines for %d meter lines", ErrMalformedPoem, len(lines), len(meter))
	}

	seen := make(map[string]int)
	keys := make(map[int]string)
	for i, line := range lines {
		if len(line) == 0 {
			return fmt.Errorf("%w: line %d is empty", ErrMalformedPoem, i)
		}
		var stress []int
		for _, w := range line {
			if prev, dup := seen[w.Text]; dup {
				return fmt.Errorf("%w: %q used in lines %d and %d", ErrMalformedPoem, w.Text, prev, i)
			}
			seen[w.Text] = i
			stress = append(stress, w.Stress...)
		}
		if !slices.Equal(stress, meter[i]) {
			return fmt.Errorf("%w: line %d scans %s, want %s",
				ErrMalformedPoem, i, FormatPattern(stress), FormatPattern(meter[i]))
		}

		last := line[len(line)-1].RhymeKey
		group := scheme[i]
		if key, ok := keys[group]; ok && key != last {
			return fmt.Errorf("%w: line %d rhymes on %q, group %d on %q", ErrMalformedPoem, i, last, group, key)
		}
		keys[group] = last
	}
	return nil
}
