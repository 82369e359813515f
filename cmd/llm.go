package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/llm"
	"github.com/abhisek/examprep/internal/logging"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the explanation provider",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Send a tiny request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := logging.New(logging.Config{Path: cfg.LogFile, Level: cfg.LogLevel, Mode: cfg.LogMode})
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		llmCfg, ok := llm.DiscoverConfig()
		if !ok {
			return errors.New("no LLM provider configured: set EXAMPREP_LLM_PROVIDER or a provider API key")
		}

		repo, closeFn, err := openRepo(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, llmCfg, repo, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider:  %s\n", provider.Name())
		fmt.Fprintf(out, "Model:     %s\n", provider.ModelID())

		start := time.Now()
		resp, err := provider.Generate(llm.WithPurpose(ctx, llm.PurposeCheck), llm.Request{
			System:    "You are a connectivity check. Reply with the single word OK.",
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Are you there?"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("provider check failed: %w", err)
		}
		fmt.Fprintf(out, "Latency:   %dms\n", time.Since(start).Milliseconds())
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		fmt.Fprintf(out, "Response:  %s\n", string(resp.Content))
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
}
