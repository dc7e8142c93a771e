// Package session owns the active study activity and the company/topic
// scope filters. The controller is the only component allowed to reset
// another engine's state, and it does so atomically with a mode change.
package session

import (
	"fmt"

	"github.com/tanmaysane/studymate/internal/chat"
	"github.com/tanmaysane/studymate/internal/corpus"
	"github.com/tanmaysane/studymate/internal/flashcard"
	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/quiz"
)

// View is what the UI should currently show.
type View int

const (
	// ViewUpload prompts for documents; shown whenever the corpus is
	// empty, regardless of mode.
	ViewUpload View = iota
	ViewChat
	ViewQuiz
	ViewFlashcards
)

// Gateway is everything the controller's children need from the
// assistant service. *gateway.Client satisfies it.
type Gateway interface {
	corpus.Gateway
	chat.Gateway
	quiz.Gateway
	flashcard.Gateway
}

// Controller coordinates the corpus, chat thread, quiz engine and
// flashcard engine. It makes no network calls of its own.
type Controller struct {
	mode    gateway.Mode
	company string
	topic   string

	corpus     *corpus.State
	thread     *chat.Thread
	quiz       *quiz.Engine
	flashcards *flashcard.Engine
}

// New creates a controller in general chat mode with all engines empty.
func New(gw Gateway) *Controller {
	c := &Controller{
		mode:       gateway.ModeGeneral,
		corpus:     corpus.New(gw),
		thread:     chat.NewThread(gw),
		quiz:       quiz.New(gw),
		flashcards: flashcard.New(gw),
	}
	c.thread.Initialize(c.mode, c.company)
	return c
}

// SetMode switches the active activity. In-progress quiz and flashcard
// state is discarded; the corpus and the scope filters are kept. When
// the new mode is chat-capable the thread is replaced and re-greeted.
// The whole transition happens before the method returns, so no
// observer can see the new mode paired with old sub-engine state.
func (c *Controller) SetMode(m gateway.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("unknown mode %q", m)
	}
	if m == c.mode {
		return nil
	}

	c.quiz.Restart()
	c.flashcards.Restart()
	if m.Chat() {
		c.thread.Reset()
		c.thread.Initialize(m, c.company)
	}
	c.mode = m
	return nil
}

// Mode returns the active activity mode.
func (c *Controller) Mode() gateway.Mode { return c.mode }

// SetCompany sets the company filter. It applies to the next query or
// generate call; content already fetched is unaffected.
func (c *Controller) SetCompany(name string) { c.company = name }

// SetTopic sets the topic filter for subsequent requests.
func (c *Controller) SetTopic(name string) { c.topic = name }

// Company returns the company filter, empty for none.
func (c *Controller) Company() string { return c.company }

// Topic returns the topic filter, empty for none.
func (c *Controller) Topic() string { return c.topic }

// Scope bundles the current filters for a chat query.
func (c *Controller) Scope() chat.Scope {
	return chat.Scope{Mode: c.mode, Company: c.company, Topic: c.topic}
}

// View derives which screen to show: the upload prompt while the corpus
// is empty, otherwise the active mode's screen.
func (c *Controller) View() View {
	if c.corpus.Empty() {
		return ViewUpload
	}
	switch c.mode {
	case gateway.ModeQuiz:
		return ViewQuiz
	case gateway.ModeFlashcard:
		return ViewFlashcards
	default:
		return ViewChat
	}
}

// Corpus returns the document corpus state.
func (c *Controller) Corpus() *corpus.State { return c.corpus }

// Chat returns the chat thread.
func (c *Controller) Chat() *chat.Thread { return c.thread }

// Quiz returns the quiz engine.
func (c *Controller) Quiz() *quiz.Engine { return c.quiz }

// Flashcards returns the flashcard engine.
func (c *Controller) Flashcards() *flashcard.Engine { return c.flashcards }
