package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tagespoet/tagespoet/internal/util"
	"github.com/tagespoet/tagespoet/models"
	"github.com/tagespoet/tagespoet/store"
)

func savePoem(t *testing.T, s *store.SQLiteStore, publish time.Time, first string) *models.Poem {
	t.Helper()
	poem := &models.Poem{
		ID:           uuid.New().String(),
		Lines:        [][]string{{first, "Bestand"}, {"Tag", "Verstand"}},
		Keywords:     []string{"Wahl"},
		KeywordCount: 20,
		GeneratedAt:  publish.Add(-6 * time.Hour),
		PublishAt:    publish,
	}
	require.NoError(t, s.Save(context.Background(), poem))
	return poem
}

func TestPoemsLatest(t *testing.T) {
	dir, cfgPath := newDataDir(t)
	s := openTestStore(t, dir)
	savePoem(t, s, time.Date(2025, 3, 9, 6, 0, 0, 0, time.Local), "Alt")
	latest := savePoem(t, s, time.Date(2025, 3, 10, 6, 0, 0, 0, time.Local), "Rot")

	output, err := executeCommand(t, "--config", cfgPath, "poems", "latest")
	require.NoError(t, err)
	assert.Contains(t, output, "2025-03-10")
	assert.Contains(t, output, "Rot Bestand\nTag Verstand")

	output, err = executeCommand(t, "--config", cfgPath, "--json", "poems", "latest")
	require.NoError(t, err)
	var got models.Poem
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, latest.ID, got.ID)
}

func TestPoemsLatest_Empty(t *testing.T) {
	_, cfgPath := newDataDir(t)

	_, err := executeCommand(t, "--config", cfgPath, "poems", "latest")
	assert.ErrorIs(t, err, store.ErrPoemNotFound)
}

func TestPoemsRange(t *testing.T) {
	dir, cfgPath := newDataDir(t)
	s := openTestStore(t, dir)
	savePoem(t, s, time.Date(2025, 3, 9, 6, 0, 0, 0, time.Local), "Alt")
	savePoem(t, s, time.Date(2025, 3, 10, 6, 0, 0, 0, time.Local), "Rot")

	output, err := executeCommand(t, "--config", cfgPath, "poems", "range", "--from", "2025-03-09")
	require.NoError(t, err)
	assert.Contains(t, output, "Alt Bestand")

	output, err = executeCommand(t, "--config", cfgPath, "poems", "range", "--from", "2025-03-01", "--to", "2025-04-01")
	require.NoError(t, err)
	assert.Contains(t, output, "Rot Bestand")

	_, err = executeCommand(t, "--config", cfgPath, "poems", "range", "--from", "2025-03-11")
	assert.ErrorIs(t, err, store.ErrPoemNotFound)
}

func TestPoemsShow(t *testing.T) {
	dir, cfgPath := newDataDir(t)
	s := openTestStore(t, dir)
	poem := savePoem(t, s, time.Date(2025, 3, 10, 6, 0, 0, 0, time.Local), "Rot")

	output, err := executeCommand(t, "--config", cfgPath, "poems", "show", poem.ID[:6])
	require.NoError(t, err)
	assert.Contains(t, output, "Rot Bestand")
	assert.Contains(t, output, poem.ID[:8])

	_, err = executeCommand(t, "--config", cfgPath, "poems", "show", "zzzz")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestParseDateRange(t *testing.T) {
	start, end, err := parseDateRange("2025-03-10", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local), end)

	_, _, err = parseDateRange("10.03.2025", "")
	assert.Error(t, err)

	_, _, err = parseDateRange("2025-03-10", "2025-03-10")
	assert.Error(t, err)
}

func TestPoemsRuns(t *testing.T) {
	dir, cfgPath := newDataDir(t)
	s := openTestStore(t, dir)
	require.NoError(t, s.RecordRun(context.Background(), models.RunRecord{
		ID:           uuid.New().String(),
		StartedAt:    time.Now().UTC(),
		Status:       models.RunFail,
		KeywordCount: 35,
		Elapsed:      3 * time.Minute,
	}))

	output, err := executeCommand(t, "--config", cfgPath, "poems", "runs")
	require.NoError(t, err)
	assert.Contains(t, output, "fail")
	assert.Contains(t, output, "keywords=35")
}

func TestKeywordsCmd(t *testing.T) {
	dir, cfgPath := newDataDir(t)
	articles := filepath.Join(dir, "articles")
	require.NoError(t, os.MkdirAll(articles, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(articles, "a.html"),
		[]byte("<p>Der Kanzler und das Klima.</p><p>Der Kanzler.</p>"), 0644))

	output, err := executeCommand(t, "--config", cfgPath, "keywords", "-n", "5")
	require.NoError(t, err)
	assert.Equal(t, "  1. Kanzler\n  2. Klima\n", output)
}

func TestConfigInit(t *testing.T) {
	dir, cfgPath := newDataDir(t)

	output, err := executeCommand(t, "--config", cfgPath, "config", "init")
	assert.Error(t, err, "existing config must not be overwritten")
	assert.Empty(t, output)

	target := filepath.Join(dir, "fresh.yaml")
	require.NoError(t, os.WriteFile(target, []byte("data:\n  dir: "+dir+"\n"), 0644))
	output, err = executeCommand(t, "--config", target, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote "+target)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "rhymeScheme: [1, 1, 2, 3, 3, 2]")
}
