package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tanmaysane/studymate/internal/gateway"
)

type fakeGateway struct {
	answer   string
	sources  []gateway.Citation
	queryErr error
	calls    int

	entered chan struct{}
	release chan struct{}
}

func (f *fakeGateway) Query(ctx context.Context, req gateway.QueryRequest) (*gateway.QueryResponse, error) {
	f.calls++
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &gateway.QueryResponse{
		Answer:  f.answer,
		Sources: f.sources,
		Mode:    string(req.Mode),
	}, nil
}

func TestInitializeGreetsOncePerMode(t *testing.T) {
	tests := []struct {
		mode    gateway.Mode
		company string
		want    string
	}{
		{gateway.ModeGeneral, "", "Welcome to your study assistant"},
		{gateway.ModeMockInterview, "", "Mock Interview Mode"},
		{gateway.ModeResumeReview, "", "Resume Review Mode"},
		{gateway.ModeCompanySpecific, "Amazon", "Company-Specific Mode - Amazon"},
		{gateway.ModeQuiz, "", "Welcome to your study assistant"}, // default template
	}
	for _, tt := range tests {
		thread := NewThread(&fakeGateway{})
		thread.Initialize(tt.mode, tt.company)

		msgs := thread.Messages()
		if len(msgs) != 1 {
			t.Fatalf("%s: expected 1 greeting, got %d messages", tt.mode, len(msgs))
		}
		if msgs[0].Role != RoleAssistant {
			t.Errorf("%s: greeting role = %s", tt.mode, msgs[0].Role)
		}
		if !strings.Contains(msgs[0].Content, tt.want) {
			t.Errorf("%s: greeting %q does not contain %q", tt.mode, msgs[0].Content, tt.want)
		}

		// A second initialize must not add another greeting.
		thread.Initialize(tt.mode, tt.company)
		if thread.Len() != 1 {
			t.Errorf("%s: re-initialize duplicated the greeting", tt.mode)
		}
	}
}

func TestSendAppendsExchange(t *testing.T) {
	gw := &fakeGateway{
		answer: "Quicksort partitions around a pivot.",
		sources: []gateway.Citation{
			{Source: "algorithms.pdf", Page: 12, Content: "partitioning"},
		},
	}
	thread := NewThread(gw)
	thread.Initialize(gateway.ModeGeneral, "")

	err := thread.Send(context.Background(), "Explain quicksort", Scope{Mode: gateway.ModeGeneral})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	msgs := thread.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected greeting + user + assistant, got %d messages", len(msgs))
	}
	if msgs[1].Role != RoleUser || msgs[1].Content != "Explain quicksort" {
		t.Errorf("unexpected user message: %+v", msgs[1])
	}
	if msgs[2].Role != RoleAssistant || msgs[2].Content != gw.answer {
		t.Errorf("unexpected assistant message: %+v", msgs[2])
	}
	if len(msgs[2].Sources) != 1 || msgs[2].Sources[0].Source != "algorithms.pdf" {
		t.Errorf("citations not carried over: %+v", msgs[2].Sources)
	}
}

func TestSendRejectsBlank(t *testing.T) {
	thread := NewThread(&fakeGateway{})
	if err := thread.Send(context.Background(), "   ", Scope{Mode: gateway.ModeGeneral}); !errors.Is(err, ErrBlankMessage) {
		t.Errorf("expected ErrBlankMessage, got %v", err)
	}
	if thread.Len() != 0 {
		t.Error("rejected send appended a message")
	}
}

func TestSendRejectsWhilePending(t *testing.T) {
	gw := &fakeGateway{
		answer:  "done",
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	thread := NewThread(gw)

	done := make(chan error)
	go func() {
		done <- thread.Send(context.Background(), "first question", Scope{Mode: gateway.ModeGeneral})
	}()
	<-gw.entered

	err := thread.Send(context.Background(), "second question", Scope{Mode: gateway.ModeGeneral})
	if !errors.Is(err, ErrRequestPending) {
		t.Errorf("expected ErrRequestPending, got %v", err)
	}

	close(gw.release)
	if err := <-done; err != nil {
		t.Fatalf("first send: %v", err)
	}

	// Only the first question's user message and answer exist.
	msgs := thread.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "first question" {
		t.Errorf("unexpected user message: %q", msgs[0].Content)
	}
	if gw.calls != 1 {
		t.Errorf("rejected send reached the gateway: %d calls", gw.calls)
	}
}

func TestSendFailureAppendsErrorReply(t *testing.T) {
	gw := &fakeGateway{queryErr: errors.New("connection refused")}
	thread := NewThread(gw)

	err := thread.Send(context.Background(), "anyone there?", Scope{Mode: gateway.ModeGeneral})
	if err == nil {
		t.Fatal("expected transport error")
	}
	msgs := thread.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected user + error reply, got %d messages", len(msgs))
	}
	if msgs[1].Role != RoleAssistant || msgs[1].Content != errorReply {
		t.Errorf("unexpected error reply: %+v", msgs[1])
	}
	if len(msgs[1].Sources) != 0 {
		t.Error("error reply should carry no citations")
	}
	if thread.Pending() {
		t.Error("pending flag not released after failure")
	}
}

func TestResetDropsStaleResponse(t *testing.T) {
	gw := &fakeGateway{
		answer:  "late answer",
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	thread := NewThread(gw)

	done := make(chan error)
	go func() {
		done <- thread.Send(context.Background(), "slow question", Scope{Mode: gateway.ModeGeneral})
	}()
	<-gw.entered

	// The conversation is discarded while the answer is in flight.
	thread.Reset()
	close(gw.release)
	if err := <-done; err != nil {
		t.Fatalf("Send: %v", err)
	}

	if thread.Len() != 0 {
		t.Errorf("stale answer was applied to the new conversation: %d messages", thread.Len())
	}
}
