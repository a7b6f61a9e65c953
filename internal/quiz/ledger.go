package quiz

import (
	"strings"
	"time"
)

// Submit records an answer for the active question. A later submission for
// the same question overwrites the earlier one; only the most recent counts.
// Submissions for any index other than the current cursor are rejected as
// stale rather than silently filed against the wrong slot, which guards
// against a client whose rendered question lagged behind the shared cursor.
func (s *Session) Submit(player string, questionIndex int, text string, now time.Time) error {
	if s.Phase != PhaseInProgress {
		return ErrSessionNotLive
	}
	if questionIndex != s.CurrentQuestion {
		return ErrStaleQuestion
	}

	player = strings.TrimSpace(player)
	if player == "" {
		return ErrEmptyName
	}

	if s.AnswerLedger == nil {
		s.AnswerLedger = map[string]map[int]Answer{}
	}
	entries := s.AnswerLedger[player]
	if entries == nil {
		entries = map[int]Answer{}
		s.AnswerLedger[player] = entries
	}
	entries[questionIndex] = Answer{Text: text, SubmittedAt: At(now)}
	return nil
}
