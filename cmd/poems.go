package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/tagespoet/tagespoet/internal/util"
	"github.com/tagespoet/tagespoet/models"
)

// dateLayout is the accepted format of --from and --to.
const dateLayout = time.DateOnly

var poemsCmd = &cobra.Command{
	Use:   "poems",
	Short: "Read stored poems and the run log",
}

var poemsLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the poem with the most recent publish date",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		poem, err := s.FindLatest(cmd.Context())
		if err != nil {
			return err
		}
		return printPoem(cmd.OutOrStdout(), poem)
	},
}

var poemsRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Print the latest poem published in a date range",
	Long: `Print the latest poem whose publish date lies in [--from, --to).
Dates are calendar days (YYYY-MM-DD) in local time; --to defaults to the
day after --from.`,
	Example: `  tagespoet poems range --from 2025-03-10
  tagespoet poems range --from 2025-03-01 --to 2025-04-01 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fromFlag, _ := cmd.Flags().GetString("from")
		toFlag, _ := cmd.Flags().GetString("to")

		start, end, err := parseDateRange(fromFlag, toFlag)
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		poem, err := s.FindByDateRange(cmd.Context(), start, end)
		if err != nil {
			return err
		}
		return printPoem(cmd.OutOrStdout(), poem)
	},
}

var poemsShowCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Print a poem by ID or unique ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := util.ResolvePoemID(cmd.Context(), s, args[0])
		if err != nil {
			return err
		}
		poem, err := s.FindByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printPoem(cmd.OutOrStdout(), poem)
	},
}

var poemsRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the most recent compose runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), runs)
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
			return nil
		}
		for _, r := range runs {
			poem := "-"
			if r.PoemID != "" {
				poem = util.ShortID(r.PoemID, 0)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-4s  keywords=%-3d  poem=%-8s  %s\n",
				r.StartedAt.Local().Format(time.DateTime), r.Status, r.KeywordCount, poem, r.Elapsed.Round(time.Millisecond))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(poemsCmd)
	poemsCmd.AddCommand(poemsLatestCmd)
	poemsCmd.AddCommand(poemsRangeCmd)
	poemsCmd.AddCommand(poemsShowCmd)
	poemsCmd.AddCommand(poemsRunsCmd)

	poemsRangeCmd.Flags().String("from", "", "first publish day (YYYY-MM-DD)")
	poemsRangeCmd.Flags().String("to", "", "day after the last publish day (YYYY-MM-DD)")
	_ = poemsRangeCmd.MarkFlagRequired("from")

	poemsRunsCmd.Flags().IntP("limit", "n", 10, "number of runs to show")
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, from, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from %q: want YYYY-MM-DD", from)
	}
	if to == "" {
		return start, start.AddDate(0, 0, 1), nil
	}
	end, err := time.ParseInLocation(dateLayout, to, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --to %q: want YYYY-MM-DD", to)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s must be after --from %s", to, from)
	}
	return start, end, nil
}

func printPoem(w io.Writer, poem *models.Poem) error {
	if isJSON() {
		return printJSON(w, poem)
	}
	fmt.Fprintf(w, "%s  (%s)\n\n", poem.PublishAt.Local().Format("Monday, 2006-01-02"), util.ShortID(poem.ID, 0))
	_, err := fmt.Fprintln(w, poem.Text())
	return err
}
