package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/bank"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the subjects in the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b, err := bank.LoadFiles(cmd.Context(), cfg.BankPaths...)
		if err != nil {
			return fmt.Errorf("load question bank: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %6s  %6s  %6s  %6s\n", "Subject", "Easy", "Medium", "Hard", "Total")
		fmt.Fprintln(out, strings.Repeat("─", 56))
		for _, subj := range b.Subjects() {
			counts := b.LevelCounts(subj)
			total := 0
			for _, n := range counts {
				total += n
			}
			fmt.Fprintf(out, "%-24s  %6d  %6d  %6d  %6d\n",
				truncate(subj, 24), counts[bank.LevelEasy], counts[bank.LevelMedium], counts[bank.LevelHard], total)
		}
		fmt.Fprintln(out, strings.Repeat("─", 56))
		fmt.Fprintf(out, "%d questions from %s\n", b.Len(), strings.Join(cfg.BankPaths, ", "))
		return nil
	},
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
