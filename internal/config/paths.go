package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalDataDir returns the path to the global data directory (~/.tagespoet).
// It's a variable to allow overriding in tests.
var GetGlobalDataDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DataDirName), nil
}

// GetDataDir returns the path to the data directory holding the database,
// the lexicon and saved articles.
// Resolution order (first match wins):
// 1. Explicit config via "data.dir" (Viper/env/flag)
// 2. Local directory: ./.tagespoet (if exists)
// 3. XDG_DATA_HOME/tagespoet (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.tagespoet
func GetDataDir() string {
	if path := viper.GetString("data.dir"); path != "" {
		return path
	}

	if info, err := os.Stat(DataDirName); err == nil && info.IsDir() {
		return DataDirName
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "tagespoet")
	}

	dir, err := GetGlobalDataDir()
	if err != nil {
		return "./" + DataDirName
	}
	return dir
}

// GetLexiconDir returns "lexicon.dir" or <data>/lexicon.
func GetLexiconDir() string {
	if path := viper.GetString("lexicon.dir"); path != "" {
		return path
	}
	return filepath.Join(GetDataDir(), LexiconDirName)
}

// GetArticlesDir returns "articles.dir" or <data>/articles.
func GetArticlesDir() string {
	if path := viper.GetString("articles.dir"); path != "" {
		return path
	}
	return filepath.Join(GetDataDir(), ArticlesDirName)
}
