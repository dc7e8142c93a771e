// Package quiz runs a bounded sequence of question/answer/grade rounds
// against the assistant service.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/inflight"
)

var (
	// ErrNotStarted is returned when an operation needs a generated quiz.
	ErrNotStarted = errors.New("quiz has not been started")

	// ErrBlankAnswer is returned when a submitted answer has no text.
	ErrBlankAnswer = errors.New("answer text is blank")

	// ErrRequestPending is returned when a gateway call is already in
	// flight for this engine.
	ErrRequestPending = errors.New("a request is already pending")

	// ErrAlreadyAnswered is returned on a second submission for the
	// same question.
	ErrAlreadyAnswered = errors.New("current question is already answered")

	// ErrNotAnswered is returned when Advance is called before the
	// current question has been graded.
	ErrNotAnswered = errors.New("current question has not been answered")

	// ErrComplete is returned when submitting after the final round.
	ErrComplete = errors.New("quiz is complete")

	// ErrInvalidCount is returned when a generate request asks for
	// fewer than one question.
	ErrInvalidCount = errors.New("question count must be at least 1")
)

// Phase is the engine's position in the quiz lifecycle.
type Phase int

const (
	NotStarted Phase = iota
	Unanswered
	Answered
	Complete
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not started"
	case Unanswered:
		return "unanswered"
	case Answered:
		return "answered"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Gateway is the slice of the assistant service the engine needs.
type Gateway interface {
	GenerateQuiz(ctx context.Context, req gateway.QuizRequest) ([]gateway.QuizQuestion, error)
	CheckAnswer(ctx context.Context, req gateway.AnswerCheckRequest) (*gateway.AnswerResult, error)
}

// Engine is the quiz state machine. The phase is derived from the
// counters rather than stored, so completion and the answered count can
// never disagree.
type Engine struct {
	gw    Gateway
	guard inflight.Guard

	questions  []gateway.QuizQuestion
	topic      string
	current    int
	answered   int
	scoreSum   int
	lastResult *gateway.AnswerResult
}

// New creates an engine in the NotStarted phase.
func New(gw Gateway) *Engine {
	return &Engine{gw: gw}
}

// Phase reports where the engine is in the quiz lifecycle. Complete is
// reached the moment the final answer is recorded.
func (e *Engine) Phase() Phase {
	switch {
	case len(e.questions) == 0:
		return NotStarted
	case e.answered == len(e.questions):
		return Complete
	case e.lastResult != nil:
		return Answered
	default:
		return Unanswered
	}
}

// Generate fetches count questions scoped by topic and difficulty and
// starts the quiz at the first one. On failure the engine stays in
// NotStarted.
func (e *Engine) Generate(ctx context.Context, topic string, difficulty gateway.Difficulty, count int) error {
	if count < 1 {
		return ErrInvalidCount
	}
	release, tok, ok := e.guard.TryAcquire()
	if !ok {
		return ErrRequestPending
	}
	defer release()

	questions, err := e.gw.GenerateQuiz(ctx, gateway.QuizRequest{
		Topic:        gateway.OptionalString(topic),
		Difficulty:   difficulty,
		NumQuestions: count,
	})
	if err != nil {
		return fmt.Errorf("generating quiz: %w", err)
	}
	if len(questions) == 0 {
		return fmt.Errorf("generating quiz: service returned no questions")
	}
	if !e.guard.Live(tok) {
		return nil
	}

	e.questions = questions
	e.topic = topic
	e.current = 0
	e.answered = 0
	e.scoreSum = 0
	e.lastResult = nil
	return nil
}

// SubmitAnswer grades the given text against the current question. A
// graded round is final: re-submission is rejected. A gateway failure
// leaves the round unanswered so the user can retry with edited text.
func (e *Engine) SubmitAnswer(ctx context.Context, text string) (*gateway.AnswerResult, error) {
	switch e.Phase() {
	case NotStarted:
		return nil, ErrNotStarted
	case Answered:
		return nil, ErrAlreadyAnswered
	case Complete:
		return nil, ErrComplete
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankAnswer
	}
	release, tok, ok := e.guard.TryAcquire()
	if !ok {
		return nil, ErrRequestPending
	}
	defer release()

	result, err := e.gw.CheckAnswer(ctx, gateway.AnswerCheckRequest{
		Question:   e.questions[e.current].Question,
		UserAnswer: text,
		Topic:      gateway.OptionalString(e.topic),
	})
	if err != nil {
		return nil, fmt.Errorf("checking answer: %w", err)
	}
	if !e.guard.Live(tok) {
		return nil, nil
	}

	e.lastResult = result
	e.answered++
	if result.IsCorrect {
		e.scoreSum += result.Score
	}
	return result, nil
}

// Advance clears the recorded result and moves to the next question.
// After the final round it leaves the engine at Complete.
func (e *Engine) Advance() error {
	if e.Phase() == NotStarted {
		return ErrNotStarted
	}
	if e.lastResult == nil {
		return ErrNotAnswered
	}
	e.lastResult = nil
	if e.current+1 < len(e.questions) {
		e.current++
	}
	return nil
}

// Restart discards the whole run and returns to NotStarted. A response
// still in flight for the old run is dropped when it resolves.
func (e *Engine) Restart() {
	e.guard.Invalidate()
	e.questions = nil
	e.topic = ""
	e.current = 0
	e.answered = 0
	e.scoreSum = 0
	e.lastResult = nil
}

// AverageScore is the running score shown to the user: the mean of the
// per-round 0-100 scores of correct answers over all graded rounds,
// rounded to the nearest integer. It is 0 before any round is graded.
func (e *Engine) AverageScore() int {
	if e.answered == 0 {
		return 0
	}
	return int(math.Round(float64(e.scoreSum) / float64(e.answered)))
}

// Current returns the question being asked, or false when the quiz is
// not in progress.
func (e *Engine) Current() (gateway.QuizQuestion, bool) {
	if len(e.questions) == 0 {
		return gateway.QuizQuestion{}, false
	}
	return e.questions[e.current], true
}

// Index is the zero-based position of the current question.
func (e *Engine) Index() int { return e.current }

// Total is the number of questions in this run.
func (e *Engine) Total() int { return len(e.questions) }

// AnsweredCount is the number of rounds graded so far.
func (e *Engine) AnsweredCount() int { return e.answered }

// LastResult returns the grading of the current round, or nil when it
// has not been graded or the engine has advanced past it.
func (e *Engine) LastResult() *gateway.AnswerResult { return e.lastResult }

// Pending reports whether a gateway call is in flight.
func (e *Engine) Pending() bool { return e.guard.Busy() }
