// Package flashcard drives a bounded deck of two-sided revision cards
// with flip and clamped navigation semantics.
package flashcard

import (
	"context"
	"errors"
	"fmt"

	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/inflight"
)

var (
	// ErrNotStarted is returned when an operation needs a generated deck.
	ErrNotStarted = errors.New("flashcards have not been generated")

	// ErrRequestPending is returned when a generate call is already in
	// flight.
	ErrRequestPending = errors.New("a request is already pending")

	// ErrInvalidCount is returned when a generate request asks for
	// fewer than one card.
	ErrInvalidCount = errors.New("card count must be at least 1")
)

// Gateway is the slice of the assistant service the engine needs.
type Gateway interface {
	GenerateFlashcards(ctx context.Context, req gateway.FlashcardRequest) ([]gateway.Flashcard, error)
}

// Engine is the flashcard state machine. There is no terminal phase:
// navigation simply clamps at the ends of the deck.
type Engine struct {
	gw    Gateway
	guard inflight.Guard

	cards   []gateway.Flashcard
	current int
	flipped bool
}

// New creates an engine with no deck.
func New(gw Gateway) *Engine {
	return &Engine{gw: gw}
}

// Generate fetches count cards scoped by topic and shows the first one
// front side up. On failure the engine keeps no deck.
func (e *Engine) Generate(ctx context.Context, topic string, count int) error {
	if count < 1 {
		return ErrInvalidCount
	}
	release, tok, ok := e.guard.TryAcquire()
	if !ok {
		return ErrRequestPending
	}
	defer release()

	cards, err := e.gw.GenerateFlashcards(ctx, gateway.FlashcardRequest{
		Topic:    gateway.OptionalString(topic),
		NumCards: count,
	})
	if err != nil {
		return fmt.Errorf("generating flashcards: %w", err)
	}
	if len(cards) == 0 {
		return fmt.Errorf("generating flashcards: service returned no cards")
	}
	if !e.guard.Live(tok) {
		return nil
	}

	e.cards = cards
	e.current = 0
	e.flipped = false
	return nil
}

// Flip turns the current card over.
func (e *Engine) Flip() error {
	if !e.Active() {
		return ErrNotStarted
	}
	e.flipped = !e.flipped
	return nil
}

// Next moves to the following card, clamping at the end of the deck.
// The card is always shown front side up afterwards, even when the
// index did not move.
func (e *Engine) Next() error {
	return e.JumpTo(e.current + 1)
}

// Previous moves to the preceding card, clamping at the start.
func (e *Engine) Previous() error {
	return e.JumpTo(e.current - 1)
}

// JumpTo moves directly to the card at index i, clamped to the deck
// bounds, and resets the flip.
func (e *Engine) JumpTo(i int) error {
	if !e.Active() {
		return ErrNotStarted
	}
	if i < 0 {
		i = 0
	}
	if i > len(e.cards)-1 {
		i = len(e.cards) - 1
	}
	e.current = i
	e.flipped = false
	return nil
}

// Restart discards the deck. A generate still in flight for the old
// deck is dropped when it resolves.
func (e *Engine) Restart() {
	e.guard.Invalidate()
	e.cards = nil
	e.current = 0
	e.flipped = false
}

// Active reports whether a deck has been generated.
func (e *Engine) Active() bool { return len(e.cards) > 0 }

// Current returns the card being shown, or false when no deck exists.
func (e *Engine) Current() (gateway.Flashcard, bool) {
	if !e.Active() {
		return gateway.Flashcard{}, false
	}
	return e.cards[e.current], true
}

// Index is the zero-based position of the current card.
func (e *Engine) Index() int { return e.current }

// Total is the number of cards in the deck.
func (e *Engine) Total() int { return len(e.cards) }

// Flipped reports whether the back of the current card is showing.
func (e *Engine) Flipped() bool { return e.flipped }

// Pending reports whether a generate call is in flight.
func (e *Engine) Pending() bool { return e.guard.Busy() }
