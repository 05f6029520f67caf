package lexicon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tagespoet/tagespoet/internal/composer"
)

// KeywordSource supplies the n highest-ranked keywords of the period.
type KeywordSource interface {
	Keywords(ctx context.Context, n int) ([]string, error)
}

// Builder is the candidate builder used by the composer: it asks the
// keyword source for keywords and annotates their lexicon forms. Forms
// that cannot be annotated are left out, never reported as errors.
type Builder struct {
	lex    *Lexicon
	source KeywordSource
	log    *slog.Logger
}

// NewBuilder creates a Builder. A nil logger uses slog.Default().
func NewBuilder(lex *Lexicon, source KeywordSource, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{lex: lex, source: source, log: logger}
}

// BuildPool implements composer.Builder.
func (b *Builder) BuildPool(ctx context.Context, keywordCount int) (composer.Candidates, error) {
	keywords, err := b.source.Keywords(ctx, keywordCount)
	if err != nil {
		return composer.Candidates{}, fmt.Errorf("get keywords: %w", err)
	}

	var (
		words   []composer.Word
		seen    = make(map[string]bool)
		missing int
	)
	for _, kw := range keywords {
		forms, ok := b.lex.Forms(kw)
		if !ok {
			missing++
			b.log.Debug("keyword not in lexicon", "keyword", kw)
			continue
		}
		for _, form := range forms {
			w, err := Annotate(form)
			if err != nil {
				b.log.Debug("skipping form", "keyword", kw, "form", form, "error", err)
				continue
			}
			if seen[w.Text] {
				continue
			}
			seen[w.Text] = true
			words = append(words, w)
		}
	}

	b.log.Debug("candidate pool built",
		"keywords", len(keywords), "missing", missing, "words", len(words))
	return composer.Candidates{Keywords: keywords, Words: words}, nil
}
