package lexicon

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("/data/lexicon/extra", 0755)

	yamlLexicon := `entries:
  - keyword: Regierung
    forms:
      - "Re·gie̱·rung"
      - "Ka·bi·ne̱tt"
  - keyword: Wahl
    forms: ["Wa̱hl"]
`
	jsonLexicon := `{"entries": [{"keyword": "Bund", "forms": ["Bu̱nd"]}]}`
	tomlLexicon := `[[entries]]
keyword = "Wahl"
forms = ["Wa̱hl", "Ab·stim·mung"]
`
	_ = afero.WriteFile(fs, "/data/lexicon/a.yaml", []byte(yamlLexicon), 0644)
	_ = afero.WriteFile(fs, "/data/lexicon/b.json", []byte(jsonLexicon), 0644)
	_ = afero.WriteFile(fs, "/data/lexicon/extra/c.toml", []byte(tomlLexicon), 0644)
	_ = afero.WriteFile(fs, "/data/lexicon/README.md", []byte("# Lexicon"), 0644)

	lex, err := NewLoader(fs, "/data/lexicon").Load()
	require.NoError(t, err)

	assert.Equal(t, 3, lex.Len())
	assert.Equal(t, []string{"Bund", "Regierung", "Wahl"}, lex.Keywords())

	forms, ok := lex.Forms("regierung")
	require.True(t, ok, "lookups ignore case")
	assert.Len(t, forms, 2)

	// extra/c.toml sorts after a.yaml and replaces its Wahl entry.
	forms, ok = lex.Forms("Wahl")
	require.True(t, ok)
	assert.Len(t, forms, 2)
}

func TestLoader_MissingDirectory(t *testing.T) {
	lex, err := NewLoader(afero.NewMemMapFs(), "/nope").Load()
	require.NoError(t, err)
	assert.Zero(t, lex.Len())
}

func TestLoader_DecodeError(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/lex/bad.json", []byte("{not json"), 0644)

	_, err := NewLoader(fs, "/lex").Load()
	assert.Error(t, err)
}
