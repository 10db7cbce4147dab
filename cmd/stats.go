package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/fincert/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show attempt history statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.NoHistory {
			return fmt.Errorf("attempt history is disabled (no_history)")
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.HistoryRepo()
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if reset, _ := cmd.Flags().GetBool("reset"); reset {
			if err := repo.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "history cleared")
			return nil
		}

		totals, err := repo.Totals(ctx)
		if err != nil {
			return err
		}
		cats, err := repo.CategoryAccuracy(ctx)
		if err != nil {
			return err
		}
		missed, err := repo.MostMissed(ctx, 10)
		if err != nil {
			return err
		}
		recent, err := repo.RecentSessions(ctx, 10)
		if err != nil {
			return err
		}

		printStats(out, totals, cats, missed, recent)
		return nil
	},
}

func printStats(out io.Writer, totals store.Totals, cats []store.CategoryStat, missed []store.MissStat, recent []store.SessionRecord) {
	var pct float64
	if totals.Attempts > 0 {
		pct = float64(totals.Correct) / float64(totals.Attempts) * 100
	}
	fmt.Fprintf(out, "%d sessions, %d answers, %.0f%% correct\n", totals.Sessions, totals.Attempts, pct)

	if len(cats) > 0 {
		fmt.Fprintf(out, "\n%-20s  %8s  %7s  %5s\n", "Category", "Attempts", "Correct", "Acc")
		fmt.Fprintln(out, strings.Repeat("─", 46))
		for _, c := range cats {
			fmt.Fprintf(out, "%-20s  %8d  %7d  %4.0f%%\n", c.Category, c.Attempts, c.Correct, c.Accuracy()*100)
		}
	}

	if len(missed) > 0 {
		fmt.Fprintf(out, "\n%-8s  %-20s  %6s  %8s\n", "ID", "Category", "Misses", "Attempts")
		fmt.Fprintln(out, strings.Repeat("─", 48))
		for _, m := range missed {
			fmt.Fprintf(out, "%-8s  %-20s  %6d  %8d\n", m.QuestionID, m.Category, m.Misses, m.Attempts)
		}
	}

	if len(recent) > 0 {
		fmt.Fprintf(out, "\n%-16s  %-16s  %9s  %s\n", "Started", "Label", "Score", "")
		fmt.Fprintln(out, strings.Repeat("─", 56))
		for _, r := range recent {
			status := ""
			if !r.Finished() {
				status = "unfinished"
			}
			fmt.Fprintf(out, "%-16s  %-16s  %4d/%-4d  %s\n",
				r.StartedAt.Local().Format("2006-01-02 15:04"), r.Label, r.Score, r.Answered, status)
		}
	}
}

func init() {
	statsCmd.Flags().Bool("reset", false, "Delete all attempt history")
}
