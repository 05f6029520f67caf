package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tagespoet/tagespoet/internal/config"
	"github.com/tagespoet/tagespoet/internal/keywords"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the ranked keywords of the saved articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("count")
		if n < 1 {
			return fmt.Errorf("--count must be positive, got %d", n)
		}

		src := keywords.NewArticleSource(afero.NewOsFs(), config.GetArticlesDir(), GetConfig().Articles.Extension)
		ranked, err := src.Keywords(cmd.Context(), n)
		if err != nil {
			return err
		}

		if isJSON() {
			return printJSON(cmd.OutOrStdout(), ranked)
		}
		for i, k := range ranked {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d. %s\n", i+1, k)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
	keywordsCmd.Flags().IntP("count", "n", config.DefaultInitialKeywords, "number of keywords")
}
