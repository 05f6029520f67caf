package composer

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrLineExhausted is returned by the line fitter when a line attempt
	// runs out of draws. The controller always recovers from it.
	ErrLineExhausted = errors.New("line attempt exhausted")

	// ErrPoemResetRequired marks a poem attempt that is abandoned and
	// restarted from the first line with the same pool.
	ErrPoemResetRequired = errors.New("poem reset required")

	// ErrTimeBudgetExceeded marks a pool whose wall-clock budget ran out;
	// the controller recovers by escalating to a larger pool.
	ErrTimeBudgetExceeded = errors.New("time budget exceeded")

	// ErrPoolCeilingExceeded is terminal: the pool cannot grow any further.
	ErrPoolCeilingExceeded = errors.New("keyword ceiling exceeded")

	// ErrDuplicateWord is returned when a word with the same text is
	// already in the pool.
	ErrDuplicateWord = errors.New("duplicate word")

	// ErrInvalidWord is returned for words with inconsistent annotations.
	ErrInvalidWord = errors.New("invalid word")

	// ErrInvalidConfig is returned for unusable meter, rhyme scheme or limits.
	ErrInvalidConfig = errors.New("invalid composer config")

	// ErrMalformedPoem is returned when an assembled poem violates the
	// meter, the rhyme scheme or word uniqueness.
	ErrMalformedPoem = errors.New("malformed poem")
)

// Failure describes a run that ended without a poem.
type Failure struct {
	KeywordCount int           // last keyword count a pool was built for
	Requested    int           // keyword count that was refused by the ceiling
	Attempts     []int         // keyword count of every pool, in order
	PoemResets   int           // poem resets across all pools
	Elapsed      time.Duration // total run time
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("no poem after %d keywords (%d requested, %d poem resets, %s)",
		f.KeywordCount, f.Requested, f.PoemResets, f.Elapsed.Round(100*time.Millisecond))
}

// Unwrap lets errors.Is match ErrPoolCeilingExceeded.
func (f *Failure) Unwrap() error {
	return ErrPoolCeilingExceeded
}
