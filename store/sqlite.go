package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tagespoet/tagespoet/models"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore implements PoemStore using SQLite for persistence.
type SQLiteStore struct {
	db       *sql.DB
	basePath string
}

// NewSQLiteStore opens (or creates) <basePath>/<name>. A basePath of
// ":memory:" opens an in-memory database.
func NewSQLiteStore(basePath, name string) (*SQLiteStore, error) {
	var dbPath string
	if basePath == ":memory:" {
		dbPath = ":memory:"
	} else {
		dbPath = filepath.Join(basePath, name)

		if err := os.MkdirAll(basePath, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{
		db:       db,
		basePath: basePath,
	}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS poems (
		id TEXT PRIMARY KEY,
		generated_at TEXT NOT NULL,
		publish_at TEXT NOT NULL,
		keyword_count INTEGER NOT NULL,
		keywords TEXT NOT NULL,             -- JSON array of keywords
		lines TEXT NOT NULL                 -- JSON array of lines, each an array of words
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		status TEXT NOT NULL,               -- ok, fail
		keyword_count INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		poem_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_poems_publish_at ON poems(publish_at);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save implements PoemStore.
func (s *SQLiteStore) Save(ctx context.Context, poem *models.Poem) error {
	if poem == nil {
		return errors.New("save poem: nil poem")
	}
	if err := models.ValidateStruct(poem); err != nil {
		return fmt.Errorf("save poem: %w", err)
	}

	keywords, err := json.Marshal(poem.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	lines, err := json.Marshal(poem.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO poems (id, generated_at, publish_at, keyword_count, keywords, lines)
		VALUES (?, ?, ?, ?, ?, ?)`,
		poem.ID,
		poem.GeneratedAt.UTC().Format(timeLayout),
		poem.PublishAt.UTC().Format(timeLayout),
		poem.KeywordCount,
		string(keywords),
		string(lines),
	)
	if err != nil {
		return fmt.Errorf("insert poem: %w", err)
	}
	return nil
}

// FindLatest implements PoemStore.
func (s *SQLiteStore) FindLatest(ctx context.Context) (*models.Poem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, generated_at, publish_at, keyword_count, keywords, lines
		FROM poems ORDER BY publish_at DESC LIMIT 1`)
	return scanPoem(row)
}

// FindByDateRange implements PoemStore.
func (s *SQLiteStore) FindByDateRange(ctx context.Context, start, end time.Time) (*models.Poem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, generated_at, publish_at, keyword_count, keywords, lines
		FROM poems WHERE publish_at >= ? AND publish_at < ?
		ORDER BY publish_at DESC LIMIT 1`,
		start.UTC().Format(timeLayout),
		end.UTC().Format(timeLayout),
	)
	return scanPoem(row)
}

// FindByID implements PoemStore.
func (s *SQLiteStore) FindByID(ctx context.Context, id string) (*models.Poem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, generated_at, publish_at, keyword_count, keywords, lines
		FROM poems WHERE id = ?`, id)
	return scanPoem(row)
}

// FindPoemIDsByPrefix returns up to ten poem IDs starting with prefix.
func (s *SQLiteStore) FindPoemIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(prefix)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM poems WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 10`, escaped+"%")
	if err != nil {
		return nil, fmt.Errorf("query poem ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan poem id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, checkRowsErr(rows)
}

func scanPoem(row *sql.Row) (*models.Poem, error) {
	var (
		p                      models.Poem
		generatedAt, publishAt string
		keywords, lines        string
	)
	err := row.Scan(&p.ID, &generatedAt, &publishAt, &p.KeywordCount, &keywords, &lines)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPoemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan poem: %w", err)
	}

	if p.GeneratedAt, err = time.Parse(timeLayout, generatedAt); err != nil {
		return nil, fmt.Errorf("parse generated_at: %w", err)
	}
	if p.PublishAt, err = time.Parse(timeLayout, publishAt); err != nil {
		return nil, fmt.Errorf("parse publish_at: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &p.Keywords); err != nil {
		return nil, fmt.Errorf("unmarshal keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(lines), &p.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal lines: %w", err)
	}
	return &p, nil
}

// RecordRun implements PoemStore.
func (s *SQLiteStore) RecordRun(ctx context.Context, run models.RunRecord) error {
	if err := models.ValidateStruct(run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	var poemID sql.NullString
	if run.PoemID != "" {
		poemID = sql.NullString{String: run.PoemID, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, status, keyword_count, elapsed_ms, poem_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		string(run.Status),
		run.KeywordCount,
		run.Elapsed.Milliseconds(),
		poemID,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns implements PoemStore.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]models.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, status, keyword_count, elapsed_ms, poem_id
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []models.RunRecord
	for rows.Next() {
		var (
			r         models.RunRecord
			startedAt string
			status    string
			elapsedMS int64
			poemID    sql.NullString
		)
		if err := rows.Scan(&r.ID, &startedAt, &status, &r.KeywordCount, &elapsedMS, &poemID); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		r.Status = models.RunStatus(status)
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.PoemID = poemID.String
		runs = append(runs, r)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Close implements PoemStore.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// checkRowsErr checks for errors that may have occurred during row iteration.
func checkRowsErr(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}
