// Package config reads runtime settings from the environment and an optional
// .env file. Command-line flags override these values in cmd.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultBankPath is used when EXAMPREP_BANK is unset.
const DefaultBankPath = "questions.csv"

// Config holds settings that apply to every command.
type Config struct {
	// DBPath is the SQLite file; empty means store.DefaultDBPath.
	DBPath string

	// BankPaths are the question bank files to load.
	BankPaths []string

	LogFile  string
	LogLevel string
	LogMode  string

	// Seed fixes question selection when HasSeed is set.
	Seed    uint64
	HasSeed bool
}

// Load reads a .env file in the working directory if one exists, then the
// EXAMPREP_* variables. Variables already set in the environment win over
// the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:    os.Getenv("EXAMPREP_DB"),
		BankPaths: SplitPaths(getenvDefault("EXAMPREP_BANK", DefaultBankPath)),
		LogFile:   os.Getenv("EXAMPREP_LOG_FILE"),
		LogLevel:  getenvDefault("EXAMPREP_LOG_LEVEL", "info"),
		LogMode:   getenvDefault("EXAMPREP_LOG_MODE", "prod"),
	}

	if v := os.Getenv("EXAMPREP_SEED"); v != "" {
		seed, err := ParseSeed(v)
		if err != nil {
			return nil, fmt.Errorf("config: EXAMPREP_SEED: %w", err)
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}
	return cfg, nil
}

// ParseSeed parses a non-negative integer seed.
func ParseSeed(s string) (uint64, error) {
	seed, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seed %q: %w", s, err)
	}
	return seed, nil
}

// SplitPaths splits a list of files separated by commas or the OS path list
// separator, dropping empty entries.
func SplitPaths(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == filepath.ListSeparator
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
