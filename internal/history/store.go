package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tanmaysane/studymate/internal/gateway"
)

// Session is one recorded study session.
type Session struct {
	ID        string
	Mode      gateway.Mode
	Company   string
	Topic     string
	StartedAt time.Time
}

// ChatMessage is one recorded thread entry.
type ChatMessage struct {
	SessionID string
	Role      string
	Content   string
	CreatedAt time.Time
}

// QuizRound is one recorded question/answer/grade cycle.
type QuizRound struct {
	SessionID  string
	Question   string
	UserAnswer string
	IsCorrect  bool
	Score      int
	CreatedAt  time.Time
}

// Store provides read/append operations for the history tables.
type Store struct {
	db *DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *DB) *Store {
	return &Store{db: database}
}

// CreateSession records the start of a study session and returns it.
func (s *Store) CreateSession(ctx context.Context, mode gateway.Mode, company, topic string) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		Mode:      mode,
		Company:   company,
		Topic:     topic,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO study_sessions (id, mode, company, topic, started_at)
		VALUES (?, ?, ?, ?, ?)`,
		sess.ID, string(sess.Mode), sess.Company, sess.Topic, sess.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting study session: %w", err)
	}
	return sess, nil
}

// AppendMessage records one chat message for a session.
func (s *Store) AppendMessage(ctx context.Context, sessionID, role, content string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (session_id, role, content)
		VALUES (?, ?, ?)`,
		sessionID, role, content,
	)
	if err != nil {
		return fmt.Errorf("inserting chat message: %w", err)
	}
	return nil
}

// RecordRound records one graded quiz round for a session.
func (s *Store) RecordRound(ctx context.Context, sessionID, question, userAnswer string, result gateway.AnswerResult) error {
	correct := 0
	if result.IsCorrect {
		correct = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quiz_rounds (session_id, question, user_answer, is_correct, score)
		VALUES (?, ?, ?, ?, ?)`,
		sessionID, question, userAnswer, correct, result.Score,
	)
	if err != nil {
		return fmt.Errorf("inserting quiz round: %w", err)
	}
	return nil
}

// ListSessions returns recorded sessions, most recent first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, company, topic, started_at
		FROM study_sessions
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing study sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var mode string
		if err := rows.Scan(&sess.ID, &mode, &sess.Company, &sess.Topic, &sess.StartedAt); err != nil {
			return nil, fmt.Errorf("scanning study session: %w", err)
		}
		sess.Mode = gateway.Mode(mode)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Transcript returns a session's chat messages in chronological order.
func (s *Store) Transcript(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = ?
		ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading transcript: %w", err)
	}
	defer rows.Close()

	var messages []ChatMessage
	for rows.Next() {
		var msg ChatMessage
		if err := rows.Scan(&msg.SessionID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// Rounds returns a session's quiz rounds in chronological order.
func (s *Store) Rounds(ctx context.Context, sessionID string) ([]QuizRound, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, question, user_answer, is_correct, score, created_at
		FROM quiz_rounds
		WHERE session_id = ?
		ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading quiz rounds: %w", err)
	}
	defer rows.Close()

	var rounds []QuizRound
	for rows.Next() {
		var r QuizRound
		var correct int
		if err := rows.Scan(&r.SessionID, &r.Question, &r.UserAnswer, &correct, &r.Score, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning quiz round: %w", err)
		}
		r.IsCorrect = correct != 0
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}
