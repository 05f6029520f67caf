package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	output, err := executeCommand(t, "--help")
	assert.NoError(t, err)

	assert.Contains(t, output, "tagespoet composes a short rhymed poem")
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "compose")
	assert.Contains(t, output, "poems")
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.3.0", GetVersion())

	_, cfgPath := newDataDir(t)
	output, err := executeCommand(t, "--config", cfgPath, "version")
	require.NoError(t, err)
	assert.Equal(t, "tagespoet version 0.3.0\n", output)

	output, err = executeCommand(t, "--config", cfgPath, "--json", "version")
	require.NoError(t, err)
	var v map[string]string
	require.NoError(t, json.Unmarshal([]byte(output), &v))
	assert.Equal(t, "0.3.0", v["version"])
}

func TestInitConfig_LoadsFile(t *testing.T) {
	dir, cfgPath := newDataDir(t)

	_, err := executeCommand(t, "--config", cfgPath, "version")
	require.NoError(t, err)

	cfg := GetConfig()
	assert.Equal(t, dir, cfg.Data.Dir)
	assert.Equal(t, "tagespoet.db", cfg.Data.Database)
	assert.Equal(t, ".html", cfg.Articles.Extension)
	assert.Equal(t, []string{"Wahl"}, cfg.Keywords.Static)
}
