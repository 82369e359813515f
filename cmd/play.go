package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz right away",
	Example: `  examprep play --subject GK
  examprep play --subject "Social Studies" --count 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		count, _ := cmd.Flags().GetInt("count")
		return runApp(cmd, &session.Config{Subject: subject, TotalQuestions: count})
	},
}

func init() {
	playCmd.Flags().String("subject", "", "Subject to practise")
	playCmd.Flags().Int("count", session.AllowedQuestionCounts[0], "Number of questions (30, 50 or 100)")
	_ = playCmd.MarkFlagRequired("subject")
}
