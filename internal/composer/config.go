package composer

import (
	"fmt"
	"time"
)

// Limits bound the three retry levels of a run: line attempts, poem resets
// and pool escalation.
type Limits struct {
	InitialKeywords int
	KeywordStep     int
	MaxKeywords     int

	// LineRetryFactor × pool size consecutive rejected draws exhaust a line attempt.
	LineRetryFactor int
	// LineResetLimit line exhaustions within one poem attempt trigger a poem reset.
	LineResetLimit int
	// TimeBudget is the wall-clock budget per pool size, checked on every poem reset.
	TimeBudget time.Duration
	// MaxPoemResets escalates after this many poem resets on one pool. Zero disables it.
	MaxPoemResets int
}

// Config is the immutable configuration of a poem-generation run.
type Config struct {
	Meter         [][]int
	RhymeScheme   []int
	Limits        Limits
	Seed          uint64
	PublishOffset time.Duration
}

// Validate checks the meter, rhyme scheme and limits.
func (c Config) Validate() error {
	if len(c.Meter) == 0 {
		return fmt.Errorf("%w: meter has no lines", ErrInvalidConfig)
	}
	for i, line := range c.Meter {
		if len(line) == 0 {
			return fmt.Errorf("%w: meter line %d is empty", ErrInvalidConfig, i)
		}
		for _, b := range line {
			if b != Stressed && b != Unstressed {
				return fmt.Errorf("%w: meter line %d has stress value %d", ErrInvalidConfig, i, b)
			}
		}
	}
	if len(c.RhymeScheme) != len(c.Meter) {
		return fmt.Errorf("%w: rhyme scheme has %d entries for %d meter lines",
			ErrInvalidConfig, len(c.RhymeScheme), len(c.Meter))
	}
	for i, g := range c.RhymeScheme {
		if g < 1 {
			return fmt.Errorf("%w: rhyme group of line %d must be positive, got %d", ErrInvalidConfig, i, g)
		}
	}

	l := c.Limits
	switch {
	case l.InitialKeywords < 1:
		return fmt.Errorf("%w: initial keyword count must be positive", ErrInvalidConfig)
	case l.KeywordStep < 1:
		return fmt.Errorf("%w: keyword step must be positive", ErrInvalidConfig)
	case l.MaxKeywords < l.InitialKeywords:
		return fmt.Errorf("%w: keyword ceiling %d is below initial count %d", ErrInvalidConfig, l.MaxKeywords, l.InitialKeywords)
	case l.LineRetryFactor < 1:
		return fmt.Errorf("%w: line retry factor must be positive", ErrInvalidConfig)
	case l.LineResetLimit < 1:
		return fmt.Errorf("%w: line reset limit must be positive", ErrInvalidConfig)
	case l.TimeBudget < 0:
		return fmt.Errorf("%w: negative time budget", ErrInvalidConfig)
	case l.MaxPoemResets < 0:
		return fmt.Errorf("%w: negative poem reset limit", ErrInvalidConfig)
	}
	return nil
}
