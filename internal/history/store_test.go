package history

import (
	"context"
	"testing"

	"github.com/tanmaysane/studymate/internal/gateway"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestCreateSessionAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, gateway.ModeQuiz, "Amazon", "DSA")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.ID == "" {
		t.Error("expected non-empty session ID")
	}

	sessions, err := store.ListSessions(ctx, 10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.Mode != gateway.ModeQuiz || got.Company != "Amazon" || got.Topic != "DSA" {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestTranscriptKeepsOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, gateway.ModeGeneral, "", "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	entries := []struct{ role, content string }{
		{"assistant", "Welcome!"},
		{"user", "Explain paging"},
		{"assistant", "Paging divides memory into frames."},
	}
	for _, e := range entries {
		if err := store.AppendMessage(ctx, sess.ID, e.role, e.content); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}

	messages, err := store.Transcript(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	for i, e := range entries {
		if messages[i].Role != e.role || messages[i].Content != e.content {
			t.Errorf("message %d: got %s %q", i, messages[i].Role, messages[i].Content)
		}
	}
}

func TestRecordAndLoadRounds(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, gateway.ModeQuiz, "", "OS")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	err = store.RecordRound(ctx, sess.ID, "What is a deadlock?", "circular wait",
		gateway.AnswerResult{IsCorrect: true, Score: 90})
	if err != nil {
		t.Fatalf("RecordRound: %v", err)
	}
	err = store.RecordRound(ctx, sess.ID, "What is thrashing?", "no idea",
		gateway.AnswerResult{IsCorrect: false, Score: 0})
	if err != nil {
		t.Fatalf("RecordRound: %v", err)
	}

	rounds, err := store.Rounds(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Rounds: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	if !rounds[0].IsCorrect || rounds[0].Score != 90 {
		t.Errorf("unexpected first round: %+v", rounds[0])
	}
	if rounds[1].IsCorrect || rounds[1].Question != "What is thrashing?" {
		t.Errorf("unexpected second round: %+v", rounds[1])
	}
}

func TestTranscriptOfUnknownSessionIsEmpty(t *testing.T) {
	store := setupTestStore(t)

	messages, err := store.Transcript(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected no messages, got %d", len(messages))
	}
}
