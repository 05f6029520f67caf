package composer

// RhymeTracker keeps the rhyme pin of every rhyme group. A group is pinned
// by the first of its lines to receive a line-ending word, and only when the
// pool holds enough words with that rhyme key to serve every member line.
type RhymeTracker struct {
	scheme []int
	sizes  map[int]int
	pins   map[int]string
}

// NewRhymeTracker creates a tracker for a rhyme scheme, one group id per line.
func NewRhymeTracker(scheme []int) *RhymeTracker {
	t := &RhymeTracker{
		scheme: append([]int(nil), scheme...),
		sizes:  make(map[int]int),
		pins:   make(map[int]string),
	}
	for _, g := range scheme {
		t.sizes[g]++
	}
	return t
}

// Group returns the rhyme group of a line.
func (t *RhymeTracker) Group(line int) int {
	return t.scheme[line]
}

// RequiredSize returns the number of lines in a rhyme group.
func (t *RhymeTracker) RequiredSize(group int) int {
	return t.sizes[group]
}

// TryPin pins the group to key if the group is unpinned and at least
// RequiredSize(group) words carrying key are available.
func (t *RhymeTracker) TryPin(group int, key string, available int) bool {
	if _, pinned := t.pins[group]; pinned {
		return false
	}
	if available < t.RequiredSize(group) {
		return false
	}
	t.pins[group] = key
	return true
}

// Matches reports whether key is acceptable for the group: either the group
// is pinned to key or it is not pinned yet.
func (t *RhymeTracker) Matches(group int, key string) bool {
	pin, pinned := t.pins[group]
	return !pinned || pin == key
}

// Pin returns the group's rhyme pin, if set.
func (t *RhymeTracker) Pin(group int) (string, bool) {
	pin, ok := t.pins[group]
	return pin, ok
}

// Unpin clears the group's rhyme pin.
func (t *RhymeTracker) Unpin(group int) {
	delete(t.pins, group)
}

// Reset clears every pin.
func (t *RhymeTracker) Reset() {
	clear(t.pins)
}
