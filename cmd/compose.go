package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tagespoet/tagespoet/internal/composer"
	"github.com/tagespoet/tagespoet/internal/config"
	"github.com/tagespoet/tagespoet/internal/keywords"
	"github.com/tagespoet/tagespoet/internal/lexicon"
	"github.com/tagespoet/tagespoet/internal/logger"
	"github.com/tagespoet/tagespoet/models"
	"github.com/tagespoet/tagespoet/store"
)

type composeOptions struct {
	keywords []string
	seed     uint64
	dryRun   bool
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose and store the poem for the current period",
	Long: `Compose builds a candidate pool from the top keywords of the saved
articles (or --keywords), searches for a poem that fits the configured
meter and rhyme scheme, and stores it together with a run log entry.

The keyword pool grows step by step when the search stalls. If the
ceiling is reached without a poem, the run is logged as failed and the
command exits with status 2.`,
	Example: `  tagespoet compose
  tagespoet compose --keywords Wahl,Kanzler,Klima --seed 42 --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.HandlePanic()

		opts := composeOptions{}
		opts.keywords, _ = cmd.Flags().GetStringSlice("keywords")
		opts.seed, _ = cmd.Flags().GetUint64("seed")
		opts.dryRun, _ = cmd.Flags().GetBool("dry-run")
		return runCompose(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(composeCmd)
	composeCmd.Flags().StringSlice("keywords", nil, "ranked keywords to use instead of the saved articles")
	composeCmd.Flags().Uint64("seed", 0, "random seed (0 = composer.seed or the clock)")
	composeCmd.Flags().Bool("dry-run", false, "print the poem without storing it")
}

func runCompose(ctx context.Context, out io.Writer, opts composeOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := GetConfig()

	composerCfg, err := config.LoadComposerConfig()
	if err != nil {
		return fmt.Errorf("load composer config: %w", err)
	}
	if opts.seed != 0 {
		composerCfg.Seed = opts.seed
	}
	if composerCfg.Seed == 0 {
		composerCfg.Seed = uint64(time.Now().UnixNano())
	}

	lock, err := store.AcquireRunLock(cfg.Data.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			LogError("release run lock", err)
		}
	}()

	lex, err := lexicon.NewOsLoader(config.GetLexiconDir()).Load()
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	slog.Debug("lexicon loaded", "keywords", lex.Len(), "dir", config.GetLexiconDir())

	base := lexicon.NewBuilder(lex, keywordSource(opts.keywords), slog.Default())
	builder := composer.BuilderFunc(func(ctx context.Context, n int) (composer.Candidates, error) {
		c, err := base.BuildPool(ctx, n)
		if err == nil {
			logger.SetRun(c.Keywords, composerCfg.Seed)
		}
		return c, err
	})

	asm, err := composer.NewAssembler(composerCfg, builder, composer.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	var poems store.PoemStore
	if !opts.dryRun {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		poems = s
	}

	started := time.Now().UTC()
	res, err := asm.Compose(ctx)
	run := models.RunRecord{
		ID:        uuid.New().String(),
		StartedAt: started,
		Status:    models.RunFail,
	}
	if err != nil {
		recordRun(ctx, poems, run)
		return fmt.Errorf("compose poem: %w", err)
	}
	run.KeywordCount = res.KeywordCount
	run.Elapsed = res.Elapsed

	if res.Failure != nil {
		recordRun(ctx, poems, run)
		slog.Warn("no poem within keyword ceiling",
			"keywords", res.Failure.KeywordCount,
			"attempts", res.Failure.Attempts,
			"poem_resets", res.Failure.PoemResets,
			"elapsed", res.Failure.Elapsed)
		return res.Failure
	}

	if poems != nil {
		if err := poems.Save(ctx, res.Poem); err != nil {
			recordRun(ctx, poems, run)
			return fmt.Errorf("save poem: %w", err)
		}
		run.Status = models.RunOK
		run.PoemID = res.Poem.ID
		recordRun(ctx, poems, run)
	}

	slog.Info("poem composed",
		"keywords", res.KeywordCount,
		"elapsed", res.Elapsed,
		"seed", composerCfg.Seed,
		"dry_run", opts.dryRun)

	if isJSON() {
		return printJSON(out, res.Poem)
	}
	_, err = fmt.Fprintln(out, res.Poem.Text())
	return err
}

// keywordSource picks the ranked keyword list: the flag, then
// keywords.static, then the saved articles.
func keywordSource(flagKeywords []string) lexicon.KeywordSource {
	if len(flagKeywords) > 0 {
		return keywords.StaticSource(flagKeywords)
	}
	cfg := GetConfig()
	if len(cfg.Keywords.Static) > 0 {
		return keywords.StaticSource(cfg.Keywords.Static)
	}
	return keywords.NewArticleSource(afero.NewOsFs(), config.GetArticlesDir(), cfg.Articles.Extension)
}

// recordRun writes the run log entry. A run log failure never masks the
// outcome of the run itself.
func recordRun(ctx context.Context, poems store.PoemStore, run models.RunRecord) {
	if poems == nil {
		return
	}
	if err := poems.RecordRun(ctx, run); err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("failed to record run", "run_id", run.ID, "error", err)
	}
}
