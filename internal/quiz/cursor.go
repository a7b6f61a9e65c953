package quiz

import (
	"math/rand"
	"time"
)

// Start moves the session out of the lobby: the full riddle set is shuffled
// into questionOrder (every riddle used exactly once, order is the only
// randomized element) and question zero opens at now. The order is fixed for
// the lifetime of the session.
func (s *Session) Start(riddles Set, seed int64, now time.Time) error {
	if s.Phase != PhaseLobby {
		return ErrNotInLobby
	}
	if len(riddles) == 0 {
		return ErrNoRiddles
	}

	order := make([]string, len(riddles))
	for i, r := range riddles {
		order[i] = r.Prompt
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	s.QuestionOrder = order
	s.Phase = PhaseInProgress
	s.CurrentQuestion = 0
	s.QuestionDeadlines = map[int]Timestamp{0: At(now)}
	return nil
}

// Tick advances the cursor once the active question's window has elapsed.
// Every polling client calls it on every cycle, so it must tolerate any
// number of concurrent, repeated invocations: a poll that observes no
// expired window is a no-op, and a start stamp already recorded for an index
// is never overwritten. Run inside Store.Update so that on a compare-and-swap
// backend only the first poll to cross the boundary takes effect; the file
// backend degrades to last-write-wins on that boundary.
//
// The return value reports whether the session changed, letting callers skip
// the write-back on quiet polls.
func (s *Session) Tick(questionTime time.Duration, now time.Time) bool {
	if s.Phase != PhaseInProgress {
		return false
	}
	start, ok := s.QuestionDeadlines[s.CurrentQuestion]
	if !ok {
		// A live session always has a start stamp for the cursor; restore it
		// rather than leaving the question without a reference instant.
		s.QuestionDeadlines[s.CurrentQuestion] = At(now)
		return true
	}
	if now.Sub(start.Time) < questionTime {
		return false
	}

	s.CurrentQuestion++
	if s.CurrentQuestion >= len(s.QuestionOrder) {
		s.Phase = PhaseFinished
		return true
	}
	if _, stamped := s.QuestionDeadlines[s.CurrentQuestion]; !stamped {
		s.QuestionDeadlines[s.CurrentQuestion] = At(now)
	}
	return true
}

// Remaining reports how much of the active question's window is left,
// clamped to zero. Purely derived; never stored.
func (s *Session) Remaining(questionTime time.Duration, now time.Time) time.Duration {
	if s.Phase != PhaseInProgress {
		return 0
	}
	start, ok := s.QuestionDeadlines[s.CurrentQuestion]
	if !ok {
		return 0
	}
	left := questionTime - now.Sub(start.Time)
	if left < 0 {
		return 0
	}
	return left
}
