package composer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tagespoet/tagespoet/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Result is the outcome of Assembler.Compose: exactly one of Poem and
// Failure is set.
type Result struct {
	Poem         *models.Poem
	Failure      *Failure
	KeywordCount int
	Attempts     []int
	Elapsed      time.Duration
}

// Assembler drives a Controller to success or terminal failure and turns a
// successful run into a Poem ready for persistence.
type Assembler struct {
	cfg     Config
	builder Builder
	opts    []Option
	clock   func() time.Time
}

// NewAssembler creates an assembler for the given configuration and builder.
func NewAssembler(cfg Config, builder Builder, opts ...Option) (*Assembler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if builder == nil {
		return nil, errors.New("composer: nil builder")
	}
	o := newOptions(cfg, opts)
	return &Assembler{cfg: cfg, builder: builder, opts: opts, clock: o.clock}, nil
}

// Compose runs one poem-generation run. Terminal failure is reported in
// Result.Failure with a nil error; the returned error is reserved for builder
// failures, cancellation and poems that fail verification.
func (a *Assembler) Compose(ctx context.Context) (*Result, error) {
	ctrl, err := NewController(a.cfg, a.builder, a.opts...)
	if err != nil {
		return nil, err
	}

	out, err := ctrl.Run(ctx)
	var failure *Failure
	if errors.As(err, &failure) {
		return &Result{
			Failure:      failure,
			KeywordCount: failure.KeywordCount,
			Attempts:     failure.Attempts,
			Elapsed:      failure.Elapsed,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := Verify(a.cfg.Meter, a.cfg.RhymeScheme, out.Lines); err != nil {
		return nil, err
	}

	poem := a.render(out)
	if err := models.ValidateStruct(poem); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPoem, err)
	}
	return &Result{
		Poem:         poem,
		KeywordCount: out.KeywordCount,
		Attempts:     out.Attempts,
		Elapsed:      out.Elapsed,
	}, nil
}

func (a *Assembler) render(out *Outcome) *models.Poem {
	title := cases.Title(language.German)
	lines := make([][]string, len(out.Lines))
	for i, line := range out.Lines {
		lines[i] = make([]string, len(line))
		for j, w := range line {
			lines[i][j] = title.String(w.Text)
		}
	}

	now := a.clock().UTC()
	return &models.Poem{
		ID:           uuid.New().String(),
		Lines:        lines,
		Keywords:     out.Keywords,
		KeywordCount: out.KeywordCount,
		GeneratedAt:  now,
		PublishAt:    now.Add(a.cfg.PublishOffset),
	}
}
