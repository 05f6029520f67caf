package composer

import (
	"math/rand/v2"
	"slices"
)

// LineAttempt is one randomized trial to fill a single line. Words are
// chosen back-to-front, so the first accepted word ends the line.
type LineAttempt struct {
	Words  []int // pool indices in line order
	Group  int   // rhyme group of the line
	Pinned bool  // this attempt pinned Group
	Draws  int   // random draws taken

	template  []int
	remaining int
	chosen    map[int]struct{}
}

// Complete reports whether every syllable slot is filled.
func (a *LineAttempt) Complete() bool {
	return a.remaining == 0
}

// LineFitter fills one line's syllable slots from a pool under stress and
// rhyme constraints. It is not an exhaustive search: a line attempt gives up
// once RetryFactor × pool size consecutive draws have been rejected.
type LineFitter struct {
	rng         *rand.Rand
	retryFactor int
}

// NewLineFitter creates a line fitter drawing from rng.
func NewLineFitter(rng *rand.Rand, retryFactor int) *LineFitter {
	if retryFactor < 1 {
		retryFactor = 1
	}
	return &LineFitter{rng: rng, retryFactor: retryFactor}
}

// Fit attempts a complete right-aligned fill of template. Words already used
// in the poem are skipped. If the attempt pins the line's rhyme group and
// then fails, the returned attempt has Pinned set and the caller owns the
// rollback.
func (f *LineFitter) Fit(template []int, group int, pool *Pool, rhymes *RhymeTracker) (*LineAttempt, error) {
	a := &LineAttempt{
		Group:     group,
		template:  template,
		remaining: len(template),
		chosen:    make(map[int]struct{}),
	}
	if pool.Len() == 0 {
		return a, ErrLineExhausted
	}

	limit := f.retryFactor * pool.Len()
	rejected := 0
	for !a.Complete() {
		a.Draws++
		i := f.rng.IntN(pool.Len())
		if f.accept(a, i, pool, rhymes) {
			rejected = 0
			continue
		}
		rejected++
		if rejected > limit {
			return a, ErrLineExhausted
		}
	}
	return a, nil
}

func (f *LineFitter) accept(a *LineAttempt, i int, pool *Pool, rhymes *RhymeTracker) bool {
	if pool.IsUsed(i) {
		return false
	}
	if _, ok := a.chosen[i]; ok {
		return false
	}
	w := pool.Word(i)
	n := w.SyllableCount()
	if n > a.remaining {
		return false
	}
	if !slices.Equal(w.Stress, a.template[a.remaining-n:a.remaining]) {
		return false
	}

	// The line-ending word carries the rhyme.
	if a.remaining == len(a.template) {
		if _, pinned := rhymes.Pin(a.Group); pinned {
			if !rhymes.Matches(a.Group, w.RhymeKey) {
				return false
			}
		} else {
			if !rhymes.TryPin(a.Group, w.RhymeKey, pool.RhymeCount(w.RhymeKey)) {
				return false
			}
			a.Pinned = true
		}
	}

	a.Words = slices.Insert(a.Words, 0, i)
	a.chosen[i] = struct{}{}
	a.remaining -= n
	return true
}
