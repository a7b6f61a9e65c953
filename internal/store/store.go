// Package store holds the shared session record that every client polls and
// mutates. All mutation is whole-record read-modify-write; how much atomicity
// that read-modify-write gets depends on the backend.
package store

import (
	"context"
	"errors"

	"github.com/harshitkumar81444-source/RIDDLE-SHIELD/internal/quiz"
)

// ErrUnavailable classifies backend read/write failures, including corrupt
// state. A corrupt record must surface as this error rather than being
// replaced with a blank session, so genuine data loss never masquerades as a
// first run.
var ErrUnavailable = errors.New("session store unavailable")

// ErrNoChange may be returned from an Update callback to signal that the
// session came out unchanged; the store then skips the write and returns the
// loaded snapshot. Clients tick on every poll, so most Update calls end
// this way.
var ErrNoChange = errors.New("session unchanged")

// Store is the single shared mutable resource in the system.
//
// Load returns a snapshot of the session, creating a fresh lobby-phase record
// if none exists yet. Update applies fn to the current session and persists
// the result. Backends with compare-and-swap semantics guarantee fn observed
// the latest committed state; the file backend documents last-write-wins as
// its residual race instead.
type Store interface {
	Load(ctx context.Context) (quiz.Session, error)
	Update(ctx context.Context, fn func(quiz.Session) (quiz.Session, error)) (quiz.Session, error)
}

// normalize backfills nil collections after decoding partial or legacy
// documents so core operations can assume non-nil maps.
func normalize(s *quiz.Session) {
	if s.Roster == nil {
		s.Roster = []string{}
	}
	if s.QuestionOrder == nil {
		s.QuestionOrder = []string{}
	}
	if s.QuestionDeadlines == nil {
		s.QuestionDeadlines = map[int]quiz.Timestamp{}
	}
	if s.AnswerLedger == nil {
		s.AnswerLedger = map[string]map[int]quiz.Answer{}
	}
	if s.Phase == "" {
		s.Phase = quiz.PhaseLobby
	}
}
