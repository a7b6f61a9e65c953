package quiz

import (
	"sort"
	"strings"
	"time"
)

// Standing is one leaderboard row. Score is in seconds: a correct answer is
// worth the time left on the clock when it arrived.
type Standing struct {
	Player string  `json:"player"`
	Score  float64 `json:"score"`
}

// Leaderboard ranks players by speed-weighted correctness, descending, with
// ties broken by roster join order. The output is deterministic for a given
// snapshot and valid mid-game; unanswered questions simply contribute zero.
//
// Names that appear in the ledger but not the roster are still scored (the
// two collections are not assumed referentially intact); they rank after
// roster members on equal scores, name-sorted among themselves.
func Leaderboard(s Session, riddles Set, questionTime time.Duration) []Standing {
	players := make([]string, 0, len(s.Roster)+len(s.AnswerLedger))
	onRoster := make(map[string]bool, len(s.Roster))
	for _, name := range s.Roster {
		players = append(players, name)
		onRoster[name] = true
	}
	extras := make([]string, 0)
	for name := range s.AnswerLedger {
		if !onRoster[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	players = append(players, extras...)

	answers := riddles.byPrompt()
	standings := make([]Standing, len(players))
	for i, name := range players {
		standings[i] = Standing{
			Player: name,
			Score:  totalScore(s, name, answers, questionTime),
		}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	return standings
}

// totalScore sums per-question contributions for one player. A question
// contributes max(0, questionTime - latency) seconds when the submitted text
// matches the canonical answer case-insensitively after trimming; wrong
// answers and submissions at or past the deadline contribute zero.
func totalScore(s Session, player string, answers map[string]string, questionTime time.Duration) float64 {
	entries := s.AnswerLedger[player]
	if len(entries) == 0 {
		return 0
	}

	var total float64
	for idx, prompt := range s.QuestionOrder {
		entry, ok := entries[idx]
		if !ok {
			continue
		}
		canonical, known := answers[prompt]
		if !known {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(entry.Text), strings.TrimSpace(canonical)) {
			continue
		}
		start, ok := s.QuestionDeadlines[idx]
		if !ok {
			continue
		}
		gain := questionTime - entry.SubmittedAt.Sub(start.Time)
		if gain > 0 {
			total += gain.Seconds()
		}
	}
	return total
}
