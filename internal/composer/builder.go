package composer

import "context"

// Candidates is what a Builder returns for one keyword count: the keywords
// it was built from and their annotated words. Words that could not be
// annotated are simply absent.
type Candidates struct {
	Keywords []string
	Words    []Word
}

// Builder produces candidate words for a keyword count.
type Builder interface {
	BuildPool(ctx context.Context, keywordCount int) (Candidates, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(ctx context.Context, keywordCount int) (Candidates, error)

// BuildPool calls f.
func (f BuilderFunc) BuildPool(ctx context.Context, keywordCount int) (Candidates, error) {
	return f(ctx, keywordCount)
}

// StaticBuilder returns the same candidates for every keyword count.
func StaticBuilder(c Candidates) Builder {
	return BuilderFunc(func(context.Context, int) (Candidates, error) {
		return c, nil
	})
}
