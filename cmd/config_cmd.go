package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tagespoet/tagespoet/internal/composer"
	"github.com/tagespoet/tagespoet/internal/config"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tagespoet configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with every default spelled out",
	Long: `Write a config file with the default meter, rhyme scheme and search
limits. The file goes to --config if given, otherwise to
<data dir>/.tagespoet.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		dataDir := GetConfig().Data.Dir

		path := cfgFile
		if path == "" {
			path = filepath.Join(dataDir, configName+".yaml")
		}
		if err := config.WriteDefaultConfig(path, dataDir, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		composerCfg, err := config.LoadComposerConfig()
		if err != nil {
			return err
		}

		settings := viper.AllSettings()
		settings["composer"] = map[string]any{
			"meter":           formatMeter(composerCfg.Meter),
			"rhymeScheme":     composerCfg.RhymeScheme,
			"keywords":        map[string]int{"initial": composerCfg.Limits.InitialKeywords, "step": composerCfg.Limits.KeywordStep, "max": composerCfg.Limits.MaxKeywords},
			"lineRetryFactor": composerCfg.Limits.LineRetryFactor,
			"lineResetLimit":  composerCfg.Limits.LineResetLimit,
			"timeBudget":      composerCfg.Limits.TimeBudget.String(),
			"maxPoemResets":   composerCfg.Limits.MaxPoemResets,
			"seed":            composerCfg.Seed,
			"publishOffset":   composerCfg.PublishOffset.String(),
		}
		settings["lexicon"] = map[string]string{"dir": config.GetLexiconDir()}
		settings["articles"] = map[string]any{"dir": config.GetArticlesDir(), "extension": GetConfig().Articles.Extension}
		delete(settings, "config")

		if isJSON() {
			return printJSON(cmd.OutOrStdout(), settings)
		}
		if f := viper.ConfigFileUsed(); f != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", f)
		}
		out, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("render config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
}

func formatMeter(meter [][]int) []string {
	out := make([]string, len(meter))
	for i, line := range meter {
		out[i] = composer.FormatPattern(line)
	}
	return out
}
