// Package corpus tracks the set of documents uploaded to the assistant
// service. The list is a mirror of the remote state: it is replaced on
// every successful refresh and never edited locally.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tanmaysane/studymate/internal/gateway"
	"github.com/tanmaysane/studymate/internal/inflight"
)

var (
	// ErrNoFiles is returned when Upload is called with an empty file set.
	ErrNoFiles = errors.New("no files to upload")

	// ErrUploadInProgress is returned when an upload is started while
	// another one is still pending.
	ErrUploadInProgress = errors.New("upload already in progress")
)

// Gateway is the slice of the assistant service the corpus needs.
type Gateway interface {
	ListDocuments(ctx context.Context) ([]string, error)
	Upload(ctx context.Context, files []gateway.File) error
	DeleteAllDocuments(ctx context.Context) error
}

// State holds the known document list and the upload-in-progress flag.
type State struct {
	gw        Gateway
	guard     inflight.Guard
	docs      []string
	connected bool
}

// New creates an empty corpus backed by the given gateway.
func New(gw Gateway) *State {
	return &State{gw: gw}
}

// Refresh replaces the document list with the service's current one.
// A failure leaves the prior list untouched and is reported only
// through the connectivity indicator; refreshing is a background
// concern, not a user-facing action.
func (s *State) Refresh(ctx context.Context) error {
	docs, err := s.gw.ListDocuments(ctx)
	if err != nil {
		s.connected = false
		log.Printf("corpus: refresh failed, keeping %d known documents: %v", len(s.docs), err)
		return nil
	}
	s.connected = true
	s.docs = docs
	return nil
}

// Upload sends files to the service and refreshes the list on success.
// Only one upload may be pending at a time; a second call is rejected.
// On failure the document list is unchanged.
func (s *State) Upload(ctx context.Context, files []gateway.File) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	release, tok, ok := s.guard.TryAcquire()
	if !ok {
		return ErrUploadInProgress
	}
	defer release()

	if err := s.gw.Upload(ctx, files); err != nil {
		return fmt.Errorf("uploading %d files: %w", len(files), err)
	}
	if !s.guard.Live(tok) {
		return nil
	}
	return s.Refresh(ctx)
}

// ClearAll deletes every document from the service and refreshes.
// Callers must have confirmed the action with the user first. On
// failure the list is left as-is.
func (s *State) ClearAll(ctx context.Context) error {
	if err := s.gw.DeleteAllDocuments(ctx); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	return s.Refresh(ctx)
}

// Documents returns a copy of the known document names.
func (s *State) Documents() []string {
	out := make([]string, len(s.docs))
	copy(out, s.docs)
	return out
}

// Empty reports whether no documents are known.
func (s *State) Empty() bool { return len(s.docs) == 0 }

// Uploading reports whether an upload is currently pending.
func (s *State) Uploading() bool { return s.guard.Busy() }

// Connected reports whether the last refresh reached the service.
func (s *State) Connected() bool { return s.connected }
