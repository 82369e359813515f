package session

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/examprep/internal/bank"
)

// NoAnswer is submitted when the user lets a question go unanswered.
const NoAnswer bank.Label = ""

// Cycle is the render request for one question.
type Cycle struct {
	Ordinal   int // 1-based position of the question in the session
	Total     int
	Level     bank.Level
	Question  bank.Question
	Stage     Stage
	Remaining time.Duration
}

// Feedback describes the outcome of one submitted answer.
type Feedback struct {
	Question     bank.Question
	Chosen       bank.Label
	Correct      bool
	CorrectLabel bank.Label
	Stage        Stage

	// Advancement is set when this answer completed a perfect block.
	Advancement *LevelAdvancement

	Score    int
	Answered int
	Level    bank.Level
	TimeTook time.Duration
}

// Controller runs the question loop of one session. It owns the session state
// for the session's lifetime; all mutation goes through its methods. A
// Controller is not safe for concurrent use.
type Controller struct {
	bank     *bank.Bank
	state    *SessionState
	selector *Selector
	now      func() time.Time
	logger   *zap.Logger
}

// Option configures a Controller.
type Option func(*controllerOptions)

type controllerOptions struct {
	rng       *rand.Rand
	now       func() time.Time
	logger    *zap.Logger
	sessionID string
}

// WithRand sets the random source used for question selection.
func WithRand(rng *rand.Rand) Option {
	return func(o *controllerOptions) { o.rng = rng }
}

// WithSeed makes question selection deterministic.
func WithSeed(seed uint64) Option {
	return func(o *controllerOptions) { o.rng = rand.New(rand.NewPCG(seed, seed)) }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *controllerOptions) { o.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *controllerOptions) { o.logger = l }
}

// WithSessionID fixes the session id instead of generating a UUID.
func WithSessionID(id string) Option {
	return func(o *controllerOptions) { o.sessionID = id }
}

// NewController validates cfg and starts a session against b.
func NewController(b *bank.Bank, cfg Config, opts ...Option) (*Controller, error) {
	if err := ValidateConfig(cfg, b); err != nil {
		return nil, err
	}

	o := controllerOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.sessionID == "" {
		o.sessionID = uuid.New().String()
	}

	state := NewSessionState(o.sessionID, cfg, o.now())
	c := &Controller{
		bank:     b,
		state:    state,
		selector: NewSelector(o.rng),
		now:      o.now,
		logger:   o.logger.With(zap.String("session_id", state.ID)),
	}
	c.logger.Info("session started",
		zap.String("subject", cfg.Subject),
		zap.Int("total_questions", cfg.TotalQuestions),
		zap.Duration("time_limit", state.TimeLimit))
	return c, nil
}

// State returns the live session state. Callers must treat it as read-only.
func (c *Controller) State() *SessionState {
	return c.state
}

// Remaining returns the time left in the session.
func (c *Controller) Remaining() time.Duration {
	return Remaining(c.state, c.now())
}

// Next starts the next question cycle. It returns ErrSessionEnded once the
// time budget is spent or every question has been answered, and
// ErrAwaitingAnswer while the current question is still open. A selection
// failure ends the session and is returned as is.
func (c *Controller) Next() (*Cycle, error) {
	now := c.now()
	if c.checkEnd(now) {
		return nil, ErrSessionEnded
	}
	if c.state.Current != nil {
		return nil, ErrAwaitingAnswer
	}

	q, stage, err := c.selector.Next(c.state, c.bank)
	if err != nil {
		c.finish(EndNoQuestions, now)
		c.logger.Error("question selection failed", zap.Error(err))
		return nil, err
	}

	c.state.UsedIDs[q.ID] = struct{}{}
	if q.Concept != "" {
		c.state.UsedConcepts[q.Concept] = struct{}{}
	}
	c.state.Current = &q
	c.state.CurrentStage = stage
	c.state.QuestionStartTime = now

	c.logger.Debug("question served",
		zap.String("question_id", q.ID),
		zap.Stringer("level", c.state.Level),
		zap.Stringer("stage", stage))

	return &Cycle{
		Ordinal:   c.state.Answered + 1,
		Total:     c.state.TotalQuestions,
		Level:     c.state.Level,
		Question:  q,
		Stage:     stage,
		Remaining: Remaining(c.state, now),
	}, nil
}

// Submit answers the current question with label, or NoAnswer. Labels match
// exactly; an answer that arrives after the time budget ran out still counts
// as long as its question was served in time.
func (c *Controller) Submit(label bank.Label) (*Feedback, error) {
	if c.state.Ended() {
		return nil, ErrSessionEnded
	}
	q := c.state.Current
	if q == nil {
		return nil, ErrNoActiveQuestion
	}

	now := c.now()
	correct := label != NoAnswer && label == q.Correct
	adv := RecordAnswer(c.state, correct)
	c.state.Answered++
	c.state.Current = nil

	fb := &Feedback{
		Question:     *q,
		Chosen:       label,
		Correct:      correct,
		CorrectLabel: q.Correct,
		Stage:        c.state.CurrentStage,
		Advancement:  adv,
		Score:        c.state.Score,
		Answered:     c.state.Answered,
		Level:        c.state.Level,
		TimeTook:     now.Sub(c.state.QuestionStartTime),
	}

	c.logger.Debug("answer recorded",
		zap.String("question_id", q.ID),
		zap.Bool("correct", correct),
		zap.Int("score", c.state.Score),
		zap.Int("answered", c.state.Answered))
	if adv != nil {
		c.logger.Info("level up", zap.Stringer("from", adv.From), zap.Stringer("to", adv.To))
	}
	return fb, nil
}

// CheckExpiry ends the session if the time budget is spent, discarding any
// open question. It reports whether the session has ended.
func (c *Controller) CheckExpiry() bool {
	if c.state.Ended() {
		return true
	}
	now := c.now()
	if IsExpired(c.state, now) {
		c.finish(EndTimeExpired, now)
	}
	return c.state.Ended()
}

// Quit ends the session at the user's request.
func (c *Controller) Quit() {
	c.finish(EndQuit, c.now())
}

// Ended reports whether the session is over.
func (c *Controller) Ended() bool {
	return c.state.Ended()
}

func (c *Controller) checkEnd(now time.Time) bool {
	if c.state.Ended() {
		return true
	}
	switch {
	case IsExpired(c.state, now):
		c.finish(EndTimeExpired, now)
	case c.state.Answered >= c.state.TotalQuestions:
		c.finish(EndCompleted, now)
	}
	return c.state.Ended()
}

func (c *Controller) finish(reason EndReason, now time.Time) {
	if c.state.Ended() {
		return
	}
	c.state.end(reason, now)
	c.logger.Info("session ended",
		zap.String("reason", string(reason)),
		zap.Int("score", c.state.Score),
		zap.Int("answered", c.state.Answered),
		zap.Stringer("final_level", c.state.Level))
}
