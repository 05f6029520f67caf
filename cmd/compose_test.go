package cmd

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tagespoet/tagespoet/internal/composer"
	"github.com/tagespoet/tagespoet/models"
	"github.com/tagespoet/tagespoet/store"
)

func assertCouplet(t *testing.T, text string) {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 2)

	var endings, starts []string
	for _, line := range lines {
		words := strings.Fields(line)
		require.Len(t, words, 2, "line %q", line)
		starts = append(starts, words[0])
		endings = append(endings, words[1])
	}
	assert.ElementsMatch(t, []string{"Rot", "Tag"}, starts)
	assert.ElementsMatch(t, []string{"Bestand", "Verstand"}, endings)
}

func openTestStore(t *testing.T, dir string) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(dir, "tagespoet.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCompose_SavesPoemAndRun(t *testing.T) {
	dir, cfgPath := newDataDir(t)

	output, err := executeCommand(t, "--config", cfgPath, "compose", "--seed", "7")
	require.NoError(t, err)
	assertCouplet(t, output)

	s := openTestStore(t, dir)
	poem, err := s.FindLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(output), poem.Text())
	assert.Equal(t, []string{"Wahl"}, poem.Keywords)
	assert.Equal(t, 1, poem.KeywordCount)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunOK, runs[0].Status)
	assert.Equal(t, poem.ID, runs[0].PoemID)
}

func TestCompose_SameSeedSamePoem(t *testing.T) {
	_, cfgPath := newDataDir(t)

	first, err := executeCommand(t, "--config", cfgPath, "compose", "--seed", "99", "--dry-run")
	require.NoError(t, err)
	second, err := executeCommand(t, "--config", cfgPath, "compose", "--seed", "99", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompose_DryRunStoresNothing(t *testing.T) {
	dir, cfgPath := newDataDir(t)

	output, err := executeCommand(t, "--config", cfgPath, "--json", "compose", "--dry-run", "--seed", "3")
	require.NoError(t, err)

	var poem models.Poem
	require.NoError(t, json.Unmarshal([]byte(output), &poem))
	assertCouplet(t, poem.Text())

	assert.NoFileExists(t, filepath.Join(dir, "tagespoet.db"))
}

func TestCompose_KeywordFlagOverridesConfig(t *testing.T) {
	dir, cfgPath := newDataDir(t)

	_, err := executeCommand(t, "--config", cfgPath, "compose", "--keywords", "Unbekannt", "--seed", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, composer.ErrPoolCeilingExceeded)
	assert.Equal(t, exitNoPoem, exitCode(err))

	s := openTestStore(t, dir)
	_, err = s.FindLatest(context.Background())
	assert.ErrorIs(t, err, store.ErrPoemNotFound)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunFail, runs[0].Status)
	assert.Equal(t, 2, runs[0].KeywordCount)
	assert.Empty(t, runs[0].PoemID)
}

func TestCompose_RefusesConcurrentRun(t *testing.T) {
	dir, cfgPath := newDataDir(t)

	lock, err := store.AcquireRunLock(dir)
	require.NoError(t, err)
	defer func() { _ = lock.Release() }()

	_, err = executeCommand(t, "--config", cfgPath, "compose", "--seed", "1")
	assert.ErrorIs(t, err, store.ErrRunInProgress)
}
