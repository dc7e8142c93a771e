package gateway

import "io"

// Mode identifies which study activity a request belongs to. The values
// are part of the wire contract with the assistant service.
type Mode string

const (
	ModeGeneral         Mode = "general"
	ModeQuiz            Mode = "quiz"
	ModeFlashcard       Mode = "flashcard"
	ModeMockInterview   Mode = "mock_interview"
	ModeResumeReview    Mode = "resume_review"
	ModeCompanySpecific Mode = "company_specific"
)

// validModes is the set of recognized mode values.
var validModes = map[Mode]bool{
	ModeGeneral:         true,
	ModeQuiz:            true,
	ModeFlashcard:       true,
	ModeMockInterview:   true,
	ModeResumeReview:    true,
	ModeCompanySpecific: true,
}

// Valid reports whether m is a recognized mode.
func (m Mode) Valid() bool { return validModes[m] }

// Chat reports whether m is served by the chat thread rather than a
// dedicated engine.
func (m Mode) Chat() bool { return m != ModeQuiz && m != ModeFlashcard }

// Difficulty selects how hard generated quiz questions should be.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a recognized difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Citation is one source attribution attached to an assistant answer.
type Citation struct {
	Source  string `json:"source"`
	Page    int    `json:"page"`
	Content string `json:"content"`
}

// QueryRequest is the body for POST /query.
type QueryRequest struct {
	Question string  `json:"question"`
	Mode     Mode    `json:"mode"`
	Company  *string `json:"company"`
	Topic    *string `json:"topic"`
}

// QueryResponse is the assistant's answer to a query.
type QueryResponse struct {
	Answer  string     `json:"answer"`
	Sources []Citation `json:"sources"`
	Mode    string     `json:"mode"`
}

// QuizRequest is the body for POST /quiz/generate.
type QuizRequest struct {
	Topic        *string    `json:"topic"`
	Difficulty   Difficulty `json:"difficulty"`
	NumQuestions int        `json:"num_questions"`
}

// QuizQuestion is one generated quiz question.
type QuizQuestion struct {
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
}

// AnswerCheckRequest is the body for POST /quiz/check.
type AnswerCheckRequest struct {
	Question   string  `json:"question"`
	UserAnswer string  `json:"user_answer"`
	Topic      *string `json:"topic"`
}

// AnswerResult is the grading verdict for one submitted answer.
// Score is on a 0-100 scale.
type AnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	Score         int    `json:"score"`
	CorrectAnswer string `json:"correct_answer"`
	Feedback      string `json:"feedback"`
}

// FlashcardRequest is the body for POST /flashcards/generate.
type FlashcardRequest struct {
	Topic    *string `json:"topic"`
	NumCards int     `json:"num_cards"`
}

// Flashcard is one two-sided revision card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// File is one document to upload, streamed from Reader.
type File struct {
	Name   string
	Reader io.Reader
}

// OptionalString converts an empty string to a nil pointer, matching the
// service's convention of null for "no filter".
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
