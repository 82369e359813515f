package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/examprep/internal/app"
	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/config"
	"github.com/abhisek/examprep/internal/explain"
	"github.com/abhisek/examprep/internal/llm"
	"github.com/abhisek/examprep/internal/logging"
	sessionscreen "github.com/abhisek/examprep/internal/screens/session"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/store"
)

// runApp loads the bank, opens the store, builds the optional explainer and
// launches the TUI. start skips the setup screen.
func runApp(cmd *cobra.Command, start *session.Config) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{Path: cfg.LogFile, Level: cfg.LogLevel, Mode: cfg.LogMode})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	b, err := bank.LoadFiles(ctx, cfg.BankPaths...)
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}
	logger.Info("question bank loaded",
		zap.Strings("paths", cfg.BankPaths),
		zap.Int("questions", b.Len()),
		zap.Int("subjects", len(b.Subjects())))

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	deps := sessionscreen.Deps{
		Bank:      b,
		EventRepo: st.EventRepo(),
		Logger:    logger,
		Options:   sessionOptions(cfg),
	}

	if llmCfg, ok := llm.DiscoverConfig(); ok {
		provider, err := llm.NewProvider(ctx, llmCfg, deps.EventRepo, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Explanations will be unavailable.")
		} else {
			deps.Explainer = explain.NewService(provider, explain.DefaultConfig())
			logger.Info("explanations enabled",
				zap.String("provider", provider.Name()),
				zap.String("model", provider.ModelID()))
		}
	}

	return app.Run(app.Options{Deps: deps, Start: start})
}

func sessionOptions(cfg *config.Config) []session.Option {
	if !cfg.HasSeed {
		return nil
	}
	return []session.Option{session.WithSeed(cfg.Seed)}
}

// openRepo is shared by the read-only commands.
func openRepo(cmd *cobra.Command) (store.EventRepo, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return st.EventRepo(), st.Close, nil
}
