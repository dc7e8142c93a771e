// Package chat maintains the message history for the free-form chat
// activity. The thread is append-only and strictly chronological;
// individual messages are never edited or removed.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/inflight"
)

// errorReply is appended whenever the assistant cannot be reached.
const errorReply = "Sorry, I encountered an error. Please make sure the assistant service is running."

var (
	// ErrBlankMessage is returned when Send is called with no text.
	ErrBlankMessage = errors.New("message text is blank")

	// ErrRequestPending is returned when Send is called while a prior
	// question is still being answered.
	ErrRequestPending = errors.New("a question is already pending")
)

// Role marks who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the thread.
type Message struct {
	Role    Role
	Content string
	Sources []gateway.Citation
}

// Gateway is the slice of the assistant service the thread needs.
type Gateway interface {
	Query(ctx context.Context, req gateway.QueryRequest) (*gateway.QueryResponse, error)
}

// Scope carries the filters applied to a question.
type Scope struct {
	Mode    gateway.Mode
	Company string
	Topic   string
}

// Thread is the ordered chat history for one activity.
type Thread struct {
	gw       Gateway
	guard    inflight.Guard
	messages []Message
}

// NewThread creates an empty thread backed by the given gateway.
func NewThread(gw Gateway) *Thread {
	return &Thread{gw: gw}
}

// Initialize seeds the thread with the mode's welcome message. It does
// nothing when the thread already has messages.
func (t *Thread) Initialize(mode gateway.Mode, company string) {
	if len(t.messages) > 0 {
		return
	}
	t.messages = append(t.messages, Message{
		Role:    RoleAssistant,
		Content: Greeting(mode, company),
	})
}

// Send appends the question as a user message, queries the assistant,
// and appends the answer. Blank text and concurrent sends are rejected
// before anything is appended. A gateway failure appends a fixed error
// reply and is also returned so the caller can flag connectivity.
func (t *Thread) Send(ctx context.Context, text string, scope Scope) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankMessage
	}
	release, tok, ok := t.guard.TryAcquire()
	if !ok {
		return ErrRequestPending
	}
	defer release()

	t.messages = append(t.messages, Message{Role: RoleUser, Content: text})

	resp, err := t.gw.Query(ctx, gateway.QueryRequest{
		Question: text,
		Mode:     scope.Mode,
		Company:  gateway.OptionalString(scope.Company),
		Topic:    gateway.OptionalString(scope.Topic),
	})
	if !t.guard.Live(tok) {
		// The thread was reset while the question was in flight;
		// the response belongs to a discarded conversation.
		return nil
	}
	if err != nil {
		t.messages = append(t.messages, Message{Role: RoleAssistant, Content: errorReply})
		return err
	}

	t.messages = append(t.messages, Message{
		Role:    RoleAssistant,
		Content: resp.Answer,
		Sources: resp.Sources,
	})
	return nil
}

// Messages returns a copy of the thread in chronological order.
func (t *Thread) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the thread.
func (t *Thread) Len() int { return len(t.messages) }

// Pending reports whether a question is awaiting its answer.
func (t *Thread) Pending() bool { return t.guard.Busy() }

// Reset discards the whole thread. Any in-flight answer is dropped when
// it resolves rather than applied to the new conversation.
func (t *Thread) Reset() {
	t.guard.Invalidate()
	t.messages = nil
}
