package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/store"
)

const bankCSV = "Question ID,Subject,Difficulty Level,Concept,Question,Option A,Option B,Option C,Option D,Correct Option\n" +
	"1,GK,Easy,History,Who built the Taj Mahal?,Akbar,Shah Jahan,Babur,Humayun,B\n" +
	"2,GK,Hard,Geography,Capital of Peru?,Lima,Quito,Bogota,La Paz,A\n" +
	"3,Science,Medium,Physics,Unit of force?,Joule,Newton,Watt,Pascal,B\n"

func writeBank(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.csv")
	require.NoError(t, os.WriteFile(path, []byte(bankCSV), 0o644))
	return path
}

// flagCmd builds a command carrying the root persistent flags, parsed from args.
func flagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("db", "", "")
	c.Flags().String("bank", "", "")
	c.Flags().String("log-file", "", "")
	c.Flags().String("seed", "", "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("EXAMPREP_DB", "/env/db.sqlite")
	t.Setenv("EXAMPREP_BANK", "env.csv")
	t.Setenv("EXAMPREP_SEED", "7")

	cfg, err := loadConfig(flagCmd(t))
	require.NoError(t, err)
	assert.Equal(t, "/env/db.sqlite", cfg.DBPath)
	assert.Equal(t, []string{"env.csv"}, cfg.BankPaths)
	assert.True(t, cfg.HasSeed)
	assert.Equal(t, uint64(7), cfg.Seed)

	cfg, err = loadConfig(flagCmd(t, "--db", "/flag/db.sqlite", "--bank", "a.csv,b.yaml", "--seed", "42", "--log-file", "x.log"))
	require.NoError(t, err)
	assert.Equal(t, "/flag/db.sqlite", cfg.DBPath)
	assert.Equal(t, []string{"a.csv", "b.yaml"}, cfg.BankPaths)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "x.log", cfg.LogFile)
}

func TestLoadConfig_BadSeed(t *testing.T) {
	_, err := loadConfig(flagCmd(t, "--seed", "-3"))
	assert.Error(t, err)
}

func TestSessionOptions(t *testing.T) {
	cfg, err := loadConfig(flagCmd(t))
	require.NoError(t, err)
	cfg.HasSeed = false
	assert.Empty(t, sessionOptions(cfg))

	cfg.Seed, cfg.HasSeed = 9, true
	assert.Len(t, sessionOptions(cfg), 1)
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestSubjectsCommand(t *testing.T) {
	out := execute(t, "subjects", "--bank", writeBank(t))
	assert.Contains(t, out, "GK")
	assert.Contains(t, out, "Science")
	assert.Contains(t, out, "3 questions from")
}

func TestHistoryCommand_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "examprep.db")
	out := execute(t, "history", "--db", db)
	assert.Contains(t, out, "No quizzes recorded yet.")
}

func TestHistoryShowCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "examprep.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	ctx := context.Background()
	for _, a := range []store.AnswerEventData{
		{SessionID: "s1", QuestionID: "1", Level: "Easy", Chosen: "B", CorrectLabel: "B", Correct: true},
		{SessionID: "s1", QuestionID: "gone", Level: "Easy", Chosen: "C", CorrectLabel: "A"},
	} {
		require.NoError(t, st.EventRepo().AppendAnswerEvent(ctx, a))
	}
	require.NoError(t, st.Close())

	out := execute(t, "history", "show", "s1", "--db", db, "--bank", writeBank(t))
	assert.Contains(t, out, "1. Easy    B ✓  Who built the Taj Mahal?")
	assert.Contains(t, out, "2. Easy    C ✗ (A)  gone")
	assert.Contains(t, out, "Score 1/2")
}

func TestQuestionText(t *testing.T) {
	assert.Equal(t, "q-7", questionText(nil, "q-7"))
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "examprep (devel)")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "Ré", truncate("Résumé", 2))
}
