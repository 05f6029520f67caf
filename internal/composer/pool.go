package composer

import "fmt"

// Pool holds the candidate words available to a poem-generation run.
// Usage counters are the only mutable per-word state.
type Pool struct {
	words  []Word
	uses   []int
	byText map[string]int
	rhymes map[string]int
}

// NewPool creates a pool from the given words. Invalid and duplicate words
// are rejected with an error.
func NewPool(words ...Word) (*Pool, error) {
	p := &Pool{
		byText: make(map[string]int),
		rhymes: make(map[string]int),
	}
	for _, w := range words {
		if err := p.Add(w); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Add appends a word to the pool. A word whose text is already present is
// rejected with ErrDuplicateWord.
func (p *Pool) Add(w Word) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if _, ok := p.byText[w.Text]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateWord, w.Text)
	}
	p.byText[w.Text] = len(p.words)
	p.words = append(p.words, w)
	p.uses = append(p.uses, 0)
	p.rhymes[w.RhymeKey]++
	return nil
}

// Len returns the number of words in the pool.
func (p *Pool) Len() int {
	return len(p.words)
}

// Word returns the word at index i.
func (p *Pool) Word(i int) Word {
	return p.words[i]
}

// Index returns the index of the word with the given text.
func (p *Pool) Index(text string) (int, bool) {
	i, ok := p.byText[text]
	return i, ok
}

// Uses returns the usage counter of the word at index i.
func (p *Pool) Uses(i int) int {
	return p.uses[i]
}

// IsUsed reports whether the word at index i is already part of the poem.
func (p *Pool) IsUsed(i int) bool {
	return p.uses[i] > 0
}

// MarkUsed increments the usage counter of the word at index i.
func (p *Pool) MarkUsed(i int) {
	p.uses[i]++
}

// ResetUsage clears every usage counter.
func (p *Pool) ResetUsage() {
	clear(p.uses)
}

// RhymeCount returns how many words in the pool share the rhyme key.
func (p *Pool) RhymeCount(key string) int {
	return p.rhymes[key]
}
