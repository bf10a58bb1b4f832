package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/lfca-quiz-bot/internal/domain/entities"
)

// MsgLoadFailed is the user-facing error of a session whose category failed to load.
const MsgLoadFailed = "Failed to load quiz questions. Please try again."

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

type EventKind string

const (
	EventLoading    EventKind = "loading"
	EventLoaded     EventKind = "loaded"
	EventLoadFailed EventKind = "load_failed"
	EventNavigated  EventKind = "navigated"
	EventSelected   EventKind = "selected"
	EventSubmitted  EventKind = "submitted"
)

// Event is emitted by a QuizSession after each state change.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
}

// Listener receives session events in the order the changes happened.
// Listeners work on the event snapshot and must not call back into the session.
type Listener func(Event)

// CategoryLoader loads the questions of one category.
type CategoryLoader interface {
	LoadCategory(ctx context.Context, categoryID string) ([]entities.Question, error)
}

// Snapshot is a read-only copy of a session's state.
type Snapshot struct {
	SessionID    string
	Category     string
	Status       Status
	Questions    []entities.Question // shared, never modified
	CurrentIndex int
	Answer       entities.AnswerState
	Err          string
	Generation   uint64
}

// Current returns the question on screen.
func (s Snapshot) Current() (entities.Question, bool) {
	if s.Status != StatusReady || len(s.Questions) == 0 {
		return entities.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// QuestionNumber is the one-based number of the question on screen.
func (s Snapshot) QuestionNumber() int {
	return s.CurrentIndex + 1
}

func (s Snapshot) Total() int {
	return len(s.Questions)
}

func (s Snapshot) CanGoNext() bool {
	return s.Status == StatusReady && s.CurrentIndex < len(s.Questions)-1
}

func (s Snapshot) CanGoPrevious() bool {
	return s.Status == StatusReady && s.CurrentIndex > 0
}

// Feedback evaluates the submitted answer of the current question.
// ok is false until the answer is submitted.
func (s Snapshot) Feedback() (ev entities.Evaluation, ok bool) {
	q, ok := s.Current()
	if !ok || !s.Answer.Submitted {
		return entities.Evaluation{}, false
	}
	return entities.Evaluate(q.CorrectIndices, s.Answer.Selected), true
}

type subscription struct {
	id int
	fn Listener
}

// QuizSession holds the questions of the active category, the position in
// them and the answer state of the question on screen.
//
// Loads are the only blocking step. Each Start bumps a generation counter and
// a load whose generation is no longer current is dropped.
type QuizSession struct {
	mu     sync.Mutex
	emitMu sync.Mutex

	id     string
	loader CategoryLoader
	logger *zap.Logger

	category   string
	status     Status
	questions  []entities.Question
	current    int
	answer     entities.AnswerState
	errMsg     string
	generation uint64

	listeners []subscription
	nextSubID int
}

func NewQuizSession(loader CategoryLoader, logger *zap.Logger) *QuizSession {
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.NewString()

	return &QuizSession{
		id:     id,
		loader: loader,
		logger: logger.With(zap.String("session_id", id)),
		status: StatusIdle,
	}
}

func (s *QuizSession) ID() string {
	return s.id
}

// Subscribe registers a listener. Listeners are called in subscription order.
func (s *QuizSession) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

func (s *QuizSession) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Start switches the session to category and loads its questions. The
// question numbered initialQuestion is shown first when it exists, otherwise
// the first question. Load failures end in StatusError; Start never fails.
func (s *QuizSession) Start(ctx context.Context, category string, initialQuestion int) Snapshot {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.category = category
	s.status = StatusLoading
	s.questions = nil
	s.current = 0
	s.answer = entities.AnswerState{}
	s.errMsg = ""
	s.publishLocked(EventLoading)

	questions, err := s.load(ctx, category)

	s.mu.Lock()
	if gen != s.generation {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.logger.Debug("discarding superseded load",
			zap.String("category", category),
			zap.Uint64("generation", gen),
		)
		return snap
	}

	kind := EventLoaded
	if err != nil {
		s.logger.Error("failed to load category",
			zap.String("category", category),
			zap.Error(err),
		)
		s.status = StatusError
		s.errMsg = MsgLoadFailed
		kind = EventLoadFailed
	} else {
		s.questions = questions
		s.status = StatusReady
		if initialQuestion >= 1 && initialQuestion <= len(questions) {
			s.current = initialQuestion - 1
		}
		s.logger.Debug("category loaded",
			zap.String("category", category),
			zap.Int("questions", len(questions)),
			zap.Int("question", s.current+1),
		)
	}

	snap := s.snapshotLocked()
	s.publishLocked(kind)
	return snap
}

// GoTo shows the question with the one-based number n.
// Numbers outside [1, len(questions)] are ignored.
func (s *QuizSession) GoTo(n int) bool {
	return s.navigate(func(_, _ int) int { return n - 1 })
}

func (s *QuizSession) Next() bool {
	return s.navigate(func(current, _ int) int { return current + 1 })
}

func (s *QuizSession) Previous() bool {
	return s.navigate(func(current, _ int) int { return current - 1 })
}

func (s *QuizSession) First() bool {
	return s.navigate(func(_, _ int) int { return 0 })
}

func (s *QuizSession) Last() bool {
	return s.navigate(func(_, total int) int { return total - 1 })
}

func (s *QuizSession) CanGoNext() bool {
	return s.Snapshot().CanGoNext()
}

func (s *QuizSession) CanGoPrevious() bool {
	return s.Snapshot().CanGoPrevious()
}

// SelectChoice selects (single answer) or toggles (multiple answers) a choice
// of the current question. It does nothing after submission.
func (s *QuizSession) SelectChoice(choiceIndex int) bool {
	s.mu.Lock()

	if s.status != StatusReady || len(s.questions) == 0 || s.answer.Submitted {
		s.mu.Unlock()
		return false
	}

	q := s.questions[s.current]
	if choiceIndex < 0 || choiceIndex >= len(q.Choices) {
		s.mu.Unlock()
		return false
	}

	before := s.answer.Clone()
	s.answer.Select(choiceIndex, q.Multiple)
	if slices.Equal(before.Selected, s.answer.Selected) {
		s.mu.Unlock()
		return false
	}

	s.publishLocked(EventSelected)
	return true
}

// SubmitAnswer locks in the selection of the current question. It needs at
// least one selected choice and has no effect once submitted.
func (s *QuizSession) SubmitAnswer() bool {
	s.mu.Lock()

	if s.status != StatusReady || len(s.questions) == 0 ||
		s.answer.Submitted || len(s.answer.Selected) == 0 {
		s.mu.Unlock()
		return false
	}

	s.answer.Submitted = true
	s.publishLocked(EventSubmitted)
	return true
}

// Feedback evaluates the current question's submitted answer.
func (s *QuizSession) Feedback() (entities.Evaluation, bool) {
	return s.Snapshot().Feedback()
}

// navigate moves to the index chosen by target. Moving to the question
// already on screen, or outside the question list, changes nothing.
func (s *QuizSession) navigate(target func(current, total int) int) bool {
	s.mu.Lock()

	total := len(s.questions)
	if s.status != StatusReady || total == 0 {
		s.mu.Unlock()
		return false
	}

	idx := target(s.current, total)
	if idx < 0 || idx >= total || idx == s.current {
		s.mu.Unlock()
		return false
	}

	s.current = idx
	s.answer = entities.AnswerState{}
	s.publishLocked(EventNavigated)
	return true
}

func (s *QuizSession) load(ctx context.Context, category string) (questions []entities.Question, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("load category %s: panic: %v", category, r)
		}
	}()

	return s.loader.LoadCategory(ctx, category)
}

func (s *QuizSession) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID:    s.id,
		Category:     s.category,
		Status:       s.status,
		Questions:    s.questions,
		CurrentIndex: s.current,
		Answer:       s.answer.Clone(),
		Err:          s.errMsg,
		Generation:   s.generation,
	}
}

// publishLocked must be called with s.mu held and releases it. Listeners run
// under emitMu so that events are delivered in mutation order.
func (s *QuizSession) publishLocked(kind EventKind) {
	ev := Event{Kind: kind, Snapshot: s.snapshotLocked()}
	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.fn
	}

	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}
