package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/config"
	"github.com/abhisek/examprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "examprep",
	Short: "Adaptive timed multiple-choice practice",
	Long: "ExamPrep runs timed multiple-choice quizzes from a local question bank. " +
		"Questions get harder after every perfect block of three.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides EXAMPREP_DB)")
	pf.String("bank", "", "Question bank files, comma separated (overrides EXAMPREP_BANK)")
	pf.String("log-file", "", "Write logs to this file (overrides EXAMPREP_LOG_FILE)")
	pf.String("seed", "", "Fix question selection with this seed (overrides EXAMPREP_SEED)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies flags on top. Flags win
// over env, env wins over defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if p, _ := flags.GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if b, _ := flags.GetString("bank"); b != "" {
		cfg.BankPaths = config.SplitPaths(b)
	}
	if l, _ := flags.GetString("log-file"); l != "" {
		cfg.LogFile = l
	}
	if s, _ := flags.GetString("seed"); s != "" {
		seed, err := config.ParseSeed(s)
		if err != nil {
			return nil, err
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, creating its
// directory, or the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
