package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// executeCommand runs rootCmd with args on fresh Viper and flag state and
// returns what the command wrote to its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	resetFlags(rootCmd)
	cfgFile, verbose, jsonOutput = "", false, false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// Lexicon forms: "·" separates syllables, U+0331 and U+0323 mark stress.
const testLexicon = "entries:\n" +
	"  - keyword: Wahl\n" +
	"    forms:\n" +
	"      - \"Ro\u0323t\"\n" +
	"      - \"Ta\u0323g\"\n" +
	"      - \"Be\u00b7sta\u0331nd\"\n" +
	"      - \"Ver\u00b7sta\u0331nd\"\n"

// newDataDir creates a data dir with a small lexicon and a config file for
// a two-line poem in the meter 101/101 with both lines rhyming. It returns
// the data dir and the config file path.
func newDataDir(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lexicon"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lexicon", "wahl.yaml"), []byte(testLexicon), 0644))

	cfg := "data:\n" +
		"  dir: " + dir + "\n" +
		"keywords:\n" +
		"  static: [Wahl]\n" +
		"composer:\n" +
		"  meter: [\"101\", \"101\"]\n" +
		"  rhymeScheme: [1, 1]\n" +
		"  keywords:\n" +
		"    initial: 1\n" +
		"    step: 1\n" +
		"    max: 2\n"
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))
	return dir, cfgPath
}
