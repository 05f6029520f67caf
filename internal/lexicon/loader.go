// Package lexicon builds candidate pools from an annotated word lexicon: for
// each keyword, the dictionary syllabifications of the keyword and its
// synonyms.
package lexicon

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

// Entry is one keyword with the dictionary forms of itself and its synonyms.
type Entry struct {
	Keyword string   `json:"keyword" yaml:"keyword" toml:"keyword"`
	Forms   []string `json:"forms" yaml:"forms" toml:"forms"`
}

// File is the on-disk shape of a lexicon file.
type File struct {
	Entries []Entry `json:"entries" yaml:"entries" toml:"entries"`
}

// Lexicon maps keywords to dictionary forms. Lookups ignore case.
type Lexicon struct {
	entries map[string]Entry
}

// New creates a lexicon from entries. Later entries replace earlier ones
// with the same keyword.
func New(entries ...Entry) *Lexicon {
	l := &Lexicon{entries: make(map[string]Entry)}
	for _, e := range entries {
		l.put(e)
	}
	return l
}

func (l *Lexicon) put(e Entry) {
	e.Keyword = strings.TrimSpace(e.Keyword)
	if e.Keyword == "" {
		return
	}
	l.entries[strings.ToLower(e.Keyword)] = e
}

// Forms returns the dictionary forms for a keyword.
func (l *Lexicon) Forms(keyword string) ([]string, bool) {
	e, ok := l.entries[strings.ToLower(strings.TrimSpace(keyword))]
	return e.Forms, ok
}

// Len returns the number of keywords in the lexicon.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Keywords returns every keyword, sorted.
func (l *Lexicon) Keywords() []string {
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Keyword)
	}
	sort.Strings(out)
	return out
}

// Loader scans and loads lexicon files from a directory.
// It uses an afero.Fs interface for filesystem operations, enabling
// easy testing with in-memory filesystems.
type Loader struct {
	fs      afero.Fs
	baseDir string
}

// NewLoader creates a lexicon loader using the provided filesystem.
func NewLoader(fs afero.Fs, baseDir string) *Loader {
	return &Loader{fs: fs, baseDir: baseDir}
}

// NewOsLoader creates a Loader using the real operating system filesystem.
func NewOsLoader(baseDir string) *Loader {
	return NewLoader(afero.NewOsFs(), baseDir)
}

// Load reads every .yaml, .yml, .json and .toml file below the base
// directory, in lexical path order. A missing directory yields an empty
// lexicon.
func (l *Loader) Load() (*Lexicon, error) {
	lex := New()

	exists, err := afero.DirExists(l.fs, l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("check lexicon directory: %w", err)
	}
	if !exists {
		return lex, nil
	}

	err = afero.Walk(l.fs, l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".yaml", ".yml", ".json", ".toml":
		default:
			return nil
		}

		f, err := l.loadFile(path, ext)
		if err != nil {
			return fmt.Errorf("load lexicon %s: %w", path, err)
		}
		for _, e := range f.Entries {
			lex.put(e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk lexicon directory: %w", err)
	}

	return lex, nil
}

func (l *Loader) loadFile(path, ext string) (*File, error) {
	file, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var f File
	switch ext {
	case ".json":
		err = json.Unmarshal(content, &f)
	case ".toml":
		err = toml.Unmarshal(content, &f)
	default:
		err = yaml.Unmarshal(content, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ext, err)
	}
	return &f, nil
}
