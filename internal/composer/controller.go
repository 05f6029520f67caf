package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// State is a state of the retry/escalation controller.
type State int

const (
	StateFillingLine State = iota
	StateLineExhausted
	StatePoemReset
	StateEscalate
	StateSuccess
	StateTerminalFailure
)

func (s State) String() string {
	switch s {
	case StateFillingLine:
		return "filling-line"
	case StateLineExhausted:
		return "line-exhausted"
	case StatePoemReset:
		return "poem-reset"
	case StateEscalate:
		return "escalate"
	case StateSuccess:
		return "success"
	case StateTerminalFailure:
		return "terminal-failure"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option configures a Controller or Assembler.
type Option func(*options)

type options struct {
	rng    *rand.Rand
	clock  func() time.Time
	logger *slog.Logger
	trace  func(State, int)
}

// WithRand sets the random source. The default is a PCG source seeded from
// Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithClock sets the wall clock used for the time budget.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTrace registers a callback invoked on every state transition with the
// new state and the current line index.
func WithTrace(fn func(state State, line int)) Option {
	return func(o *options) { o.trace = fn }
}

func newOptions(cfg Config, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Outcome is a successful controller run.
type Outcome struct {
	Lines        [][]Word
	Keywords     []string
	KeywordCount int
	Attempts     []int // keyword count of every pool, in order
	PoemResets   int
	Elapsed      time.Duration
}

// Controller runs the three-level retry state machine: a failed line
// attempt is retried, too many line failures reset the poem, and a poem
// reset past the time budget escalates to a larger pool.
type Controller struct {
	cfg     Config
	builder Builder
	fitter  *LineFitter
	opts    options
	log     *slog.Logger

	pool     *Pool
	rhymes   *RhymeTracker
	keywords []string

	keywordCount int
	attempts     []int
	started      time.Time
	checkpoint   time.Time

	lines      [][]int
	line       int
	attempt    *LineAttempt
	lineResets int
	poolResets int
	poemResets int
}

// NewController creates a controller. It does not touch the builder until Run.
func NewController(cfg Config, builder Builder, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if builder == nil {
		return nil, errors.New("composer: nil builder")
	}
	o := newOptions(cfg, opts)
	return &Controller{
		cfg:     cfg,
		builder: builder,
		fitter:  NewLineFitter(o.rng, cfg.Limits.LineRetryFactor),
		opts:    o,
		log:     o.logger,
		rhymes:  NewRhymeTracker(cfg.RhymeScheme),
	}, nil
}

// Run drives the controller to success or terminal failure. Terminal
// failure is returned as a *Failure. Builder errors and context
// cancellation, checked on every poem reset, are returned as is.
func (c *Controller) Run(ctx context.Context) (*Outcome, error) {
	c.started = c.opts.clock()
	c.pool, _ = NewPool()
	c.keywordCount = c.cfg.Limits.InitialKeywords
	if err := c.grow(ctx); err != nil {
		return nil, err
	}

	state := StateFillingLine
	for {
		if c.opts.trace != nil {
			c.opts.trace(state, c.line)
		}
		switch state {
		case StateFillingLine:
			state = c.fillLine()
		case StateLineExhausted:
			state = c.lineExhausted()
		case StatePoemReset:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			state = c.poemReset()
		case StateEscalate:
			next, err := c.escalate(ctx)
			if err != nil {
				return nil, err
			}
			state = next
		case StateSuccess:
			return c.outcome(), nil
		case StateTerminalFailure:
			return nil, c.failure()
		default:
			return nil, fmt.Errorf("composer: unknown state %s", state)
		}
	}
}

// Pool returns the current candidate pool.
func (c *Controller) Pool() *Pool {
	return c.pool
}

func (c *Controller) fillLine() State {
	attempt, err := c.fitter.Fit(c.cfg.Meter[c.line], c.rhymes.Group(c.line), c.pool, c.rhymes)
	c.attempt = attempt
	if err != nil {
		return StateLineExhausted
	}
	for _, i := range attempt.Words {
		c.pool.MarkUsed(i)
	}
	c.lines = append(c.lines, attempt.Words)
	c.attempt = nil
	c.line++
	if c.line == len(c.cfg.Meter) {
		return StateSuccess
	}
	return StateFillingLine
}

func (c *Controller) lineExhausted() State {
	if c.attempt != nil && c.attempt.Pinned {
		c.rhymes.Unpin(c.attempt.Group)
	}
	c.attempt = nil
	c.lineResets++
	if c.lineResets >= c.cfg.Limits.LineResetLimit {
		return StatePoemReset
	}
	return StateFillingLine
}

func (c *Controller) poemReset() State {
	c.clearPoem()
	c.poolResets++
	c.poemResets++

	elapsed := c.opts.clock().Sub(c.checkpoint)
	c.log.Debug("poem cannot be resolved, resetting",
		"error", ErrPoemResetRequired,
		"elapsed", elapsed,
		"keywords", c.keywordCount,
		"resets", c.poolResets)

	limits := c.cfg.Limits
	switch {
	case c.pool.Len() < len(c.cfg.Meter):
		// Every line needs at least one unused word.
		c.log.Info("candidate pool too small, escalating",
			"pool", c.pool.Len(), "lines", len(c.cfg.Meter), "keywords", c.keywordCount)
		return StateEscalate
	case elapsed > limits.TimeBudget:
		c.log.Info("trying again with more keywords",
			"error", ErrTimeBudgetExceeded, "elapsed", elapsed, "keywords", c.keywordCount)
		return StateEscalate
	case limits.MaxPoemResets > 0 && c.poolResets >= limits.MaxPoemResets:
		c.log.Info("poem reset limit reached, escalating",
			"resets", c.poolResets, "elapsed", elapsed, "keywords", c.keywordCount)
		return StateEscalate
	}
	return StateFillingLine
}

func (c *Controller) escalate(ctx context.Context) (State, error) {
	next := c.keywordCount + c.cfg.Limits.KeywordStep
	if next > c.cfg.Limits.MaxKeywords {
		return StateTerminalFailure, nil
	}
	c.keywordCount = next
	c.clearPoem()
	if err := c.grow(ctx); err != nil {
		return StateTerminalFailure, err
	}
	c.log.Info("now working with more keywords", "keywords", c.keywordCount, "pool", c.pool.Len())
	return StateFillingLine, nil
}

// grow asks the builder for the current keyword count and adds every new
// word to the pool. The pool never shrinks within a run.
func (c *Controller) grow(ctx context.Context) error {
	cands, err := c.builder.BuildPool(ctx, c.keywordCount)
	if err != nil {
		return fmt.Errorf("build pool for %d keywords: %w", c.keywordCount, err)
	}
	for _, w := range cands.Words {
		if err := c.pool.Add(w); err != nil {
			c.log.Debug("skipping candidate", "word", w.Text, "error", err)
		}
	}
	c.keywords = cands.Keywords
	c.attempts = append(c.attempts, c.keywordCount)
	c.checkpoint = c.opts.clock()
	c.poolResets = 0
	return nil
}

// clearPoem discards all poem-wide state: usage counters, every rhyme pin
// and the completed lines.
func (c *Controller) clearPoem() {
	c.pool.ResetUsage()
	c.rhymes.Reset()
	c.lines = nil
	c.line = 0
	c.attempt = nil
	c.lineResets = 0
}

func (c *Controller) outcome() *Outcome {
	lines := make([][]Word, len(c.lines))
	for i, idx := range c.lines {
		lines[i] = make([]Word, len(idx))
		for j, w := range idx {
			lines[i][j] = c.pool.Word(w)
		}
	}
	return &Outcome{
		Lines:        lines,
		Keywords:     append([]string(nil), c.keywords...),
		KeywordCount: c.keywordCount,
		Attempts:     append([]int(nil), c.attempts...),
		PoemResets:   c.poemResets,
		Elapsed:      c.opts.clock().Sub(c.started),
	}
}

func (c *Controller) failure() *Failure {
	return &Failure{
		KeywordCount: c.keywordCount,
		Requested:    c.keywordCount + c.cfg.Limits.KeywordStep,
		Attempts:     append([]int(nil), c.attempts...),
		PoemResets:   c.poemResets,
		Elapsed:      c.opts.clock().Sub(c.started),
	}
}
