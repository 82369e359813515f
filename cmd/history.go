package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/screens/history"
	"github.com/abhisek/examprep/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		subject, _ := cmd.Flags().GetString("subject")

		repo, closeFn, err := openRepo(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		records, err := repo.QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit, Subject: subject})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No quizzes recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-16s  %7s  %-6s  %6s  %s\n",
			"Session", "Finished", "Subject", "Score", "Level", "Time", "Ended")
		fmt.Fprintln(out, strings.Repeat("─", 112))
		for _, r := range records {
			fmt.Fprintf(out, "%-36s  %-16s  %-16s  %3d/%-3d  %-6s  %3d:%02d  %s\n",
				r.SessionID,
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(r.Subject, 16),
				r.Score, r.TotalQuestions,
				r.FinalLevel,
				r.DurationSecs/60, r.DurationSecs%60,
				history.ReasonLabel(r.EndReason),
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show every answer of one quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		answers, err := st.EventRepo().QueryAnswers(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(answers) == 0 {
			fmt.Fprintf(out, "No answers recorded for %s.\n", args[0])
			return nil
		}

		// Question text is a nicety; the log stands on its own without the bank.
		b, err := bank.LoadFiles(cmd.Context(), cfg.BankPaths...)
		if err != nil {
			b = nil
		}

		score := 0
		for i, a := range answers {
			if a.Correct {
				score++
			}
			fmt.Fprintf(out, "%s  %s\n", history.AnswerLine(i+1, a), questionText(b, a.QuestionID))
		}
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "Score %d/%d\n", score, len(answers))
		return nil
	},
}

// questionText returns the question's text from b, or its id when b is nil
// or no longer holds it.
func questionText(b *bank.Bank, id string) string {
	if b != nil {
		if q, ok := b.ByID(id); ok {
			return truncate(q.Text, 60)
		}
	}
	return id
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of quizzes to list (0 for all)")
	historyCmd.Flags().String("subject", "", "Only list quizzes of this subject")
	historyCmd.AddCommand(historyShowCmd)
}
