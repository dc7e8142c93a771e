package session

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/tanmaysane/studymate/internal/gateway"
)

// fakeGateway serves every engine with canned content.
type fakeGateway struct {
	docs []string
}

func (f *fakeGateway) ListDocuments(ctx context.Context) ([]string, error) {
	return f.docs, nil
}

func (f *fakeGateway) Upload(ctx context.Context, files []gateway.File) error {
	for _, file := range files {
		f.docs = append(f.docs, file.Name)
	}
	return nil
}

func (f *fakeGateway) DeleteAllDocuments(ctx context.Context) error {
	f.docs = nil
	return nil
}

func (f *fakeGateway) Query(ctx context.Context, req gateway.QueryRequest) (*gateway.QueryResponse, error) {
	return &gateway.QueryResponse{Answer: "answer to " + req.Question}, nil
}

func (f *fakeGateway) GenerateQuiz(ctx context.Context, req gateway.QuizRequest) ([]gateway.QuizQuestion, error) {
	questions := make([]gateway.QuizQuestion, req.NumQuestions)
	for i := range questions {
		questions[i] = gateway.QuizQuestion{Question: fmt.Sprintf("q%d", i+1)}
	}
	return questions, nil
}

func (f *fakeGateway) CheckAnswer(ctx context.Context, req gateway.AnswerCheckRequest) (*gateway.AnswerResult, error) {
	return &gateway.AnswerResult{IsCorrect: true, Score: 80}, nil
}

func (f *fakeGateway) GenerateFlashcards(ctx context.Context, req gateway.FlashcardRequest) ([]gateway.Flashcard, error) {
	cards := make([]gateway.Flashcard, req.NumCards)
	for i := range cards {
		cards[i] = gateway.Flashcard{Front: fmt.Sprintf("f%d", i+1), Back: fmt.Sprintf("b%d", i+1)}
	}
	return cards, nil
}

func newTestController(t *testing.T, docs ...string) *Controller {
	t.Helper()
	ctrl := New(&fakeGateway{docs: docs})
	if err := ctrl.Corpus().Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return ctrl
}

func TestNewStartsInGeneralChat(t *testing.T) {
	ctrl := newTestController(t, "notes.pdf")
	if ctrl.Mode() != gateway.ModeGeneral {
		t.Errorf("expected general mode, got %s", ctrl.Mode())
	}
	if ctrl.View() != ViewChat {
		t.Errorf("expected chat view, got %v", ctrl.View())
	}
	if ctrl.Chat().Len() != 1 {
		t.Errorf("expected a greeting in the thread, got %d messages", ctrl.Chat().Len())
	}
}

func TestModeRoundTripDiscardsQuizProgress(t *testing.T) {
	ctrl := newTestController(t, "notes.pdf")
	ctx := context.Background()

	if err := ctrl.SetMode(gateway.ModeQuiz); err != nil {
		t.Fatalf("SetMode quiz: %v", err)
	}
	if err := ctrl.Quiz().Generate(ctx, "", gateway.DifficultyMedium, 3); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := ctrl.Quiz().SubmitAnswer(ctx, "some answer"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if err := ctrl.SetMode(gateway.ModeGeneral); err != nil {
		t.Fatalf("SetMode general: %v", err)
	}
	if err := ctrl.SetMode(gateway.ModeQuiz); err != nil {
		t.Fatalf("SetMode quiz again: %v", err)
	}

	if ctrl.Quiz().Total() != 0 || ctrl.Quiz().AnsweredCount() != 0 {
		t.Error("quiz progress survived a mode round-trip")
	}
}

func TestModeRoundTripDiscardsFlashcardProgress(t *testing.T) {
	ctrl := newTestController(t, "notes.pdf")
	ctx := context.Background()

	if err := ctrl.SetMode(gateway.ModeFlashcard); err != nil {
		t.Fatalf("SetMode flashcard: %v", err)
	}
	if err := ctrl.Flashcards().Generate(ctx, "", 5); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ctrl.Flashcards().Next()
	ctrl.Flashcards().Flip()

	if err := ctrl.SetMode(gateway.ModeMockInterview); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if err := ctrl.SetMode(gateway.ModeFlashcard); err != nil {
		t.Fatalf("SetMode back: %v", err)
	}

	if ctrl.Flashcards().Active() {
		t.Error("flashcard deck survived a mode round-trip")
	}
}

func TestSetModeKeepsCorpusAndFilters(t *testing.T) {
	ctrl := newTestController(t, "notes.pdf")
	ctrl.SetCompany("Amazon")
	ctrl.SetTopic("DSA")

	if err := ctrl.SetMode(gateway.ModeQuiz); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if ctrl.Company() != "Amazon" || ctrl.Topic() != "DSA" {
		t.Error("filters did not survive a mode switch")
	}
	if ctrl.Corpus().Empty() {
		t.Error("corpus did not survive a mode switch")
	}
}

func TestSetModeRegreetsChatThread(t *testing.T) {
	ctrl := newTestController(t, "notes.pdf")
	ctx := context.Background()

	if err := ctrl.Chat().Send(ctx, "hello", ctrl.Scope()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if ctrl.Chat().Len() != 3 {
		t.Fatalf("expected 3 messages, got %d", ctrl.Chat().Len())
	}

	if err := ctrl.SetMode(gateway.ModeMockInterview); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	msgs := ctrl.Chat().Messages()
	if len(msgs) != 1 {
		t.Fatalf("thread not replaced on mode change: %d messages", len(msgs))
	}
	if !strings.Contains(msgs[0].Content, "Mock Interview Mode") {
		t.Errorf("expected mock interview greeting, got %q", msgs[0].Content)
	}
}

func TestSetModeRejectsUnknownMode(t *testing.T) {
	ctrl := newTestController(t)
	if err := ctrl.SetMode(gateway.Mode("karaoke")); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if ctrl.Mode() != gateway.ModeGeneral {
		t.Error("failed SetMode changed the mode")
	}
}

func TestSetModeSameModeIsNoop(t *testing.T) {
	ctrl := newTestController(t, "notes.pdf")
	if err := ctrl.Chat().Send(context.Background(), "hi", ctrl.Scope()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	before := ctrl.Chat().Len()

	if err := ctrl.SetMode(gateway.ModeGeneral); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if ctrl.Chat().Len() != before {
		t.Error("re-setting the current mode replaced the thread")
	}
}

func TestViewShowsUploadWhileCorpusEmpty(t *testing.T) {
	ctrl := newTestController(t)
	if ctrl.View() != ViewUpload {
		t.Errorf("expected upload view for empty corpus, got %v", ctrl.View())
	}

	// The upload prompt wins regardless of mode.
	if err := ctrl.SetMode(gateway.ModeQuiz); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if ctrl.View() != ViewUpload {
		t.Errorf("expected upload view in quiz mode too, got %v", ctrl.View())
	}

	if err := ctrl.Corpus().Upload(context.Background(), []gateway.File{
		{Name: "notes.pdf", Reader: strings.NewReader("notes")},
	}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if ctrl.View() != ViewQuiz {
		t.Errorf("expected quiz view after upload, got %v", ctrl.View())
	}
}

func TestViewByMode(t *testing.T) {
	ctrl := newTestController(t, "notes.pdf")

	tests := []struct {
		mode gateway.Mode
		want View
	}{
		{gateway.ModeQuiz, ViewQuiz},
		{gateway.ModeFlashcard, ViewFlashcards},
		{gateway.ModeGeneral, ViewChat},
		{gateway.ModeResumeReview, ViewChat},
		{gateway.ModeCompanySpecific, ViewChat},
		{gateway.ModeMockInterview, ViewChat},
	}
	for _, tt := range tests {
		if err := ctrl.SetMode(tt.mode); err != nil {
			t.Fatalf("SetMode %s: %v", tt.mode, err)
		}
		if got := ctrl.View(); got != tt.want {
			t.Errorf("mode %s: view = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
