package composer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler_ComposeSuccess(t *testing.T) {
	cfg := twoLineConfig()
	clock := newFakeClock(0)
	a, err := NewAssembler(cfg,
		StaticBuilder(Candidates{Keywords: []string{"Wahl", "Bund"}, Words: coupletWords()}),
		WithLogger(quietLogger()), WithClock(clock.Now))
	require.NoError(t, err)

	res, err := a.Compose(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.Poem)
	assert.Nil(t, res.Failure)

	p := res.Poem
	assert.Len(t, p.Lines, 2)
	for _, line := range p.Lines {
		require.Len(t, line, 2)
		assert.Contains(t, []string{"Rot", "Tag"}, line[0])
		assert.Contains(t, []string{"Gewinnt", "Zerrinnt"}, line[1])
	}
	assert.NotEqual(t, p.Lines[0][1], p.Lines[1][1])
	assert.Equal(t, []string{"Wahl", "Bund"}, p.Keywords)
	assert.Equal(t, 20, p.KeywordCount)
	assert.Equal(t, 6*time.Hour, p.PublishAt.Sub(p.GeneratedAt))
	assert.NotEmpty(t, p.ID)
}

func TestAssembler_ComposeFailure(t *testing.T) {
	cfg := twoLineConfig()
	cfg.Limits.LineResetLimit = 2
	cfg.Limits.MaxPoemResets = 1

	a, err := NewAssembler(cfg,
		StaticBuilder(Candidates{Words: []Word{w("rot", "ot", 1), w("tag", "ag", 1)}}),
		WithLogger(quietLogger()), WithClock(newFakeClock(0).Now))
	require.NoError(t, err)

	res, err := a.Compose(context.Background())
	require.NoError(t, err, "terminal failure is a result, not an error")
	assert.Nil(t, res.Poem)
	require.NotNil(t, res.Failure)
	assert.Equal(t, 30, res.KeywordCount)
	assert.Equal(t, []int{20, 25, 30}, res.Attempts)
	assert.ErrorIs(t, res.Failure, ErrPoolCeilingExceeded)
}

func TestAssembler_RejectsInvalidConfig(t *testing.T) {
	cfg := twoLineConfig()
	cfg.RhymeScheme = []int{1}
	_, err := NewAssembler(cfg, StaticBuilder(Candidates{}))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewAssembler(twoLineConfig(), nil)
	assert.Error(t, err)
}
