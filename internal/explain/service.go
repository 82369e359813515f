// Package explain asks a language model why the correct option of a missed
// question is right. It only reads questions; the quiz engine never waits
// on it.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/llm"
)

// ErrCorrectAnswer is returned for an answer that needs no explanation.
var ErrCorrectAnswer = errors.New("answer was correct")

// Explanation is the model's answer.
type Explanation struct {
	Explanation   string `json:"explanation"`
	ChosenMistake string `json:"chosen_mistake"`
	Tip           string `json:"tip"`
}

// Config tunes generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{MaxTokens: 400, Temperature: 0.3}
}

// Service generates explanations and remembers them for the process
// lifetime, so asking twice about the same miss costs one request.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu    sync.Mutex
	cache map[cacheKey]*Explanation
}

type cacheKey struct {
	questionID string
	chosen     bank.Label
}

func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg, cache: make(map[cacheKey]*Explanation)}
}

// Provider returns the underlying provider name, for display.
func (s *Service) Provider() string {
	return s.provider.Name()
}

// Explain returns why q.Correct is right given the learner chose chosen.
// chosen may be empty when no answer was given.
func (s *Service) Explain(ctx context.Context, q bank.Question, chosen bank.Label) (*Explanation, error) {
	if chosen != "" && chosen == q.Correct {
		return nil, ErrCorrectAnswer
	}

	key := cacheKey{questionID: q.ID, chosen: chosen}
	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeExplain), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(q, chosen)}},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explain %s: %w", q.ID, err)
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	out.Explanation = strings.TrimSpace(out.Explanation)
	out.ChosenMistake = strings.TrimSpace(out.ChosenMistake)
	out.Tip = strings.TrimSpace(out.Tip)
	if out.Explanation == "" {
		return nil, fmt.Errorf("explain %s: empty explanation", q.ID)
	}

	s.mu.Lock()
	s.cache[key] = &out
	s.mu.Unlock()
	return &out, nil
}
