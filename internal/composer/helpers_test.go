package composer

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// w builds an annotated word with placeholder syllables.
func w(text, rhyme string, stress ...int) Word {
	syls := make([]string, len(stress))
	for i := range stress {
		syls[i] = fmt.Sprintf("%s%d", text, i)
	}
	return Word{Text: text, Syllables: syls, Stress: stress, RhymeKey: rhyme}
}

type fakeClock struct {
	now  time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{now: time.Date(2016, 3, 1, 4, 0, 0, 0, time.UTC), step: step}
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// twoLineConfig is a two-line couplet of "x X" feet ending stressed.
func twoLineConfig() Config {
	return Config{
		Meter:       [][]int{{1, 0, 1}, {1, 0, 1}},
		RhymeScheme: []int{1, 1},
		Limits: Limits{
			InitialKeywords: 20,
			KeywordStep:     5,
			MaxKeywords:     30,
			LineRetryFactor: 3,
			LineResetLimit:  100,
			TimeBudget:      time.Hour,
		},
		Seed:          42,
		PublishOffset: 6 * time.Hour,
	}
}

// coupletWords can always fill twoLineConfig: two stressed openers that
// cannot pin a rhyme and two rhyming unstressed-first endings.
func coupletWords() []Word {
	return []Word{
		w("rot", "ot", 1),
		w("tag", "ag", 1),
		w("gewinnt", "innt", 0, 1),
		w("zerrinnt", "innt", 0, 1),
	}
}
