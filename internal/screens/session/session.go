package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/explain"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/screens/summary"
	sess "github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/store"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
)

// Explainer produces an explanation for a missed question.
type Explainer interface {
	Explain(ctx context.Context, q bank.Question, chosen bank.Label) (*explain.Explanation, error)
}

// Deps are the collaborators of a session screen. EventRepo and Explainer
// may be nil.
type Deps struct {
	Bank      *bank.Bank
	EventRepo store.EventRepo
	Explainer Explainer
	Logger    *zap.Logger
	Options   []sess.Option
}

// SessionScreen runs one quiz session on top of a session.Controller.
type SessionScreen struct {
	deps   Deps
	cfg    sess.Config
	logger *zap.Logger

	ctrl      *sess.Controller
	cycle     *sess.Cycle
	choice    components.MultiChoice
	feedback  *sess.Feedback
	confirm   *components.Confirm
	remaining time.Duration
	errMsg    string

	explaining  bool
	explanation *explain.Explanation
	explainErr  string
}

var (
	_ screen.Screen          = (*SessionScreen)(nil)
	_ screen.KeyHintProvider = (*SessionScreen)(nil)
	_ screen.StatusProvider  = (*SessionScreen)(nil)
	_ screen.EscapeHandler   = (*SessionScreen)(nil)
)

func New(deps Deps, cfg sess.Config) *SessionScreen {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionScreen{deps: deps, cfg: cfg, logger: logger.Named("tui")}
}

// Init starts the controller and serves the first question.
func (s *SessionScreen) Init() tea.Cmd {
	opts := append([]sess.Option{sess.WithLogger(s.logger)}, s.deps.Options...)
	ctrl, err := sess.NewController(s.deps.Bank, s.cfg, opts...)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.ctrl = ctrl
	s.remaining = ctrl.Remaining()

	st := ctrl.State()
	data := store.SessionEventData{
		SessionID:      st.ID,
		Action:         store.ActionStart,
		Subject:        st.Subject,
		TotalQuestions: st.TotalQuestions,
	}
	start := s.persist("session start", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, data)
	})
	return tea.Batch(start, s.advance(), tickCmd())
}

func (s *SessionScreen) Title() string {
	return "Quiz"
}

func (s *SessionScreen) HeaderStatus() string {
	if s.ctrl == nil {
		return s.cfg.Subject
	}
	return fmt.Sprintf("%s · %s", s.cfg.Subject, s.ctrl.State().Level)
}

func (s *SessionScreen) HandlesEscape() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirm != nil:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.feedback != nil:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next question"}}
		if s.canExplain() {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "S", Description: "Skip"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()

	case persistedMsg:
		return s, nil

	case explanationMsg:
		return s.handleExplanation(msg)

	case components.ConfirmedMsg:
		s.confirm = nil
		if msg.Yes && s.ctrl != nil {
			s.ctrl.Quit()
			return s, s.finish()
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.ctrl == nil || s.ctrl.Ended() {
		return s, nil
	}
	s.remaining = s.ctrl.Remaining()

	// Between questions the next advance ends the session; an open
	// question is dropped.
	if s.feedback == nil && s.ctrl.CheckExpiry() {
		return s, s.finish()
	}
	return s, tickCmd()
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.ctrl == nil || s.ctrl.Ended() {
		return s, nil
	}

	if s.confirm != nil {
		c, cmd := s.confirm.Update(msg)
		s.confirm = &c
		return s, cmd
	}

	key := msg.String()
	if key == "esc" {
		c := components.NewConfirm("End the quiz now?", "Yes, end", "No, keep going")
		s.confirm = &c
		return s, nil
	}

	if s.feedback != nil {
		if (key == "e" || key == "E") && s.canExplain() {
			return s, s.requestExplanation()
		}
		return s, s.advance()
	}

	if s.cycle == nil {
		return s, nil
	}
	if key == "s" || key == "S" {
		return s, s.submit(sess.NoAnswer)
	}
	s.choice, _ = s.choice.Update(msg)
	if label, ok := s.choice.Picked(); ok {
		return s, s.submit(label)
	}
	return s, nil
}

// advance serves the next question or ends the session.
func (s *SessionScreen) advance() tea.Cmd {
	s.feedback = nil
	s.explanation = nil
	s.explainErr = ""
	s.explaining = false

	cycle, err := s.ctrl.Next()
	if err != nil {
		s.cycle = nil
		if !errors.Is(err, sess.ErrSessionEnded) {
			s.logger.Error("no question to serve", zap.Error(err))
		}
		return s.finish()
	}
	s.cycle = cycle
	s.remaining = cycle.Remaining
	s.choice = components.NewMultiChoice(cycle.Question, 0)
	return nil
}

func (s *SessionScreen) submit(label bank.Label) tea.Cmd {
	fb, err := s.ctrl.Submit(label)
	if err != nil {
		s.logger.Warn("answer rejected", zap.Error(err))
		if s.ctrl.Ended() {
			return s.finish()
		}
		return nil
	}
	s.feedback = fb
	s.choice = s.choice.Reveal(label)

	data := store.AnswerEventData{
		SessionID:    s.ctrl.State().ID,
		QuestionID:   fb.Question.ID,
		Subject:      fb.Question.Subject,
		Level:        fb.Question.Difficulty.String(),
		Concept:      fb.Question.Concept,
		Chosen:       string(fb.Chosen),
		CorrectLabel: string(fb.CorrectLabel),
		Correct:      fb.Correct,
		Stage:        fb.Stage.String(),
		TimeMs:       int(fb.TimeTook.Milliseconds()),
	}
	return s.persist("answer", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendAnswerEvent(ctx, data)
	})
}

// finish records the end event and hands over to the summary screen.
func (s *SessionScreen) finish() tea.Cmd {
	sum := s.ctrl.Summary()
	data := store.SessionEventData{
		SessionID:         sum.SessionID,
		Action:            store.ActionEnd,
		Subject:           sum.Subject,
		TotalQuestions:    sum.TotalQuestions,
		QuestionsAnswered: sum.Answered,
		Score:             sum.Score,
		FinalLevel:        sum.FinalLevel.String(),
		EndReason:         string(sum.Reason),
		DurationSecs:      int(sum.Duration.Seconds()),
	}
	end := s.persist("session end", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, data)
	})
	next := func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
	return tea.Batch(end, next)
}

// persist runs a store write off the update loop. The write only sees the
// data captured by fn, never the session state. Failures are logged; the
// quiz goes on without them.
func (s *SessionScreen) persist(what string, fn func(context.Context, store.EventRepo) error) tea.Cmd {
	repo, logger := s.deps.EventRepo, s.logger
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		err := fn(context.Background(), repo)
		if err != nil {
			logger.Warn("event not recorded", zap.String("event", what), zap.Error(err))
		}
		return persistedMsg{What: what, Err: err}
	}
}

func (s *SessionScreen) canExplain() bool {
	return s.deps.Explainer != nil && s.feedback != nil && !s.feedback.Correct
}

func (s *SessionScreen) requestExplanation() tea.Cmd {
	if !s.canExplain() || s.explaining || s.explanation != nil {
		return nil
	}
	s.explaining = true
	s.explainErr = ""

	explainer := s.deps.Explainer
	q, chosen := s.feedback.Question, s.feedback.Chosen
	return func() tea.Msg {
		exp, err := explainer.Explain(context.Background(), q, chosen)
		return explanationMsg{QuestionID: q.ID, Explanation: exp, Err: err}
	}
}

func (s *SessionScreen) handleExplanation(msg explanationMsg) (screen.Screen, tea.Cmd) {
	// The learner may have moved on while the request was in flight.
	if s.feedback == nil || s.feedback.Question.ID != msg.QuestionID {
		return s, nil
	}
	s.explaining = false
	if msg.Err != nil {
		s.logger.Warn("explanation failed", zap.String("question_id", msg.QuestionID), zap.Error(msg.Err))
		s.explainErr = "Explanation unavailable right now."
		return s, nil
	}
	s.explanation = msg.Explanation
	return s, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
