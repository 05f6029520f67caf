package store

import (
	"context"
	"errors"
	"time"

	"github.com/tagespoet/tagespoet/models"
)

// ErrPoemNotFound is returned by read paths when no poem matches.
var ErrPoemNotFound = errors.New("poem not found")

// PoemStore defines the interface for poem persistence.
// The composer only ever calls Save; the read paths serve the display layer.
type PoemStore interface {
	// Save persists a finished poem. Poems that fail validation are rejected.
	Save(ctx context.Context, poem *models.Poem) error

	// FindLatest returns the poem with the most recent publish date.
	FindLatest(ctx context.Context) (*models.Poem, error)

	// FindByID returns the poem with the given ID.
	FindByID(ctx context.Context, id string) (*models.Poem, error)

	// FindByDateRange returns the latest poem whose publish date lies in
	// [start, end).
	FindByDateRange(ctx context.Context, start, end time.Time) (*models.Poem, error)

	// RecordRun appends an entry to the run log.
	RecordRun(ctx context.Context, run models.RunRecord) error

	// ListRuns returns the most recent run log entries, newest first.
	ListRuns(ctx context.Context, limit int) ([]models.RunRecord, error)

	// Close releases the database connection.
	Close() error
}
