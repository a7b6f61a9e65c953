package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func singleRiddle() Set {
	return Set{{Prompt: "echo?", Answer: "echo"}}
}

func TestCorrectAnswerScoresRemainingTime(t *testing.T) {
	s := NewSession()
	now := baseTime()
	require.NoError(t, s.Join("Amy"))
	require.NoError(t, s.Start(singleRiddle(), 1, now))
	require.NoError(t, s.Submit("Amy", 0, "  ECHO ", now.Add(5*time.Second)))

	board := Leaderboard(s, singleRiddle(), questionTime)
	require.Equal(t, []Standing{{Player: "Amy", Score: 25}}, board)
}

func TestOnlyLastAnswerCounts(t *testing.T) {
	s := NewSession()
	now := baseTime()
	require.NoError(t, s.Join("Bob"))
	require.NoError(t, s.Start(singleRiddle(), 1, now))
	require.NoError(t, s.Submit("Bob", 0, "shadow", now.Add(3*time.Second)))
	require.NoError(t, s.Submit("Bob", 0, "echo", now.Add(10*time.Second)))

	board := Leaderboard(s, singleRiddle(), questionTime)
	require.Equal(t, []Standing{{Player: "Bob", Score: 20}}, board)
}

func TestWrongAnswerScoresZero(t *testing.T) {
	s := NewSession()
	now := baseTime()
	require.NoError(t, s.Join("Amy"))
	require.NoError(t, s.Start(singleRiddle(), 1, now))
	require.NoError(t, s.Submit("Amy", 0, "shadow", now.Add(2*time.Second)))

	board := Leaderboard(s, singleRiddle(), questionTime)
	require.Equal(t, []Standing{{Player: "Amy", Score: 0}}, board)
}

func TestDeadlineAnswerScoresZero(t *testing.T) {
	s := NewSession()
	now := baseTime()
	require.NoError(t, s.Join("Amy"))
	require.NoError(t, s.Start(singleRiddle(), 1, now))
	require.NoError(t, s.Submit("Amy", 0, "echo", now.Add(questionTime)))

	board := Leaderboard(s, singleRiddle(), questionTime)
	require.Equal(t, float64(0), board[0].Score)
}

func TestSilentPlayerStaysOnBoard(t *testing.T) {
	s := NewSession()
	now := baseTime()
	require.NoError(t, s.Join("Amy"))
	require.NoError(t, s.Join("Eve"))
	require.NoError(t, s.Start(singleRiddle(), 1, now))
	require.NoError(t, s.Submit("Amy", 0, "echo", now.Add(5*time.Second)))

	board := Leaderboard(s, singleRiddle(), questionTime)
	require.Equal(t, []Standing{
		{Player: "Amy", Score: 25},
		{Player: "Eve", Score: 0},
	}, board)
}

func TestTiesBreakByJoinOrder(t *testing.T) {
	s := NewSession()
	now := baseTime()
	for _, name := range []string{"Cara", "Amy", "Bob"} {
		require.NoError(t, s.Join(name))
	}
	require.NoError(t, s.Start(singleRiddle(), 1, now))
	require.NoError(t, s.Submit("Amy", 0, "echo", now.Add(5*time.Second)))
	require.NoError(t, s.Submit("Cara", 0, "echo", now.Add(5*time.Second)))

	board := Leaderboard(s, singleRiddle(), questionTime)
	require.Equal(t, []Standing{
		{Player: "Cara", Score: 25},
		{Player: "Amy", Score: 25},
		{Player: "Bob", Score: 0},
	}, board)
}

func TestLedgerOnlyPlayersAreScored(t *testing.T) {
	s := NewSession()
	now := baseTime()
	require.NoError(t, s.Join("Amy"))
	require.NoError(t, s.Start(singleRiddle(), 1, now))

	// A ledger entry without a roster row, as a crashed or hand-edited
	// store could leave behind.
	s.AnswerLedger["Ghost"] = map[int]Answer{
		0: {Text: "echo", SubmittedAt: At(now.Add(20 * time.Second))},
	}

	board := Leaderboard(s, singleRiddle(), questionTime)
	require.Equal(t, []Standing{
		{Player: "Ghost", Score: 10},
		{Player: "Amy", Score: 0},
	}, board)
}

func TestScoresAccumulateAcrossQuestions(t *testing.T) {
	riddles := Set{
		{Prompt: "echo?", Answer: "echo"},
		{Prompt: "shadow?", Answer: "shadow"},
	}
	s := NewSession()
	now := baseTime()
	require.NoError(t, s.Join("Amy"))
	require.NoError(t, s.Start(riddles, 1, now))

	first := s.QuestionOrder[0]
	answers := riddles.byPrompt()
	require.NoError(t, s.Submit("Amy", 0, answers[first], now.Add(10*time.Second)))

	require.True(t, s.Tick(questionTime, now.Add(questionTime)))
	second := s.QuestionOrder[1]
	require.NoError(t, s.Submit("Amy", 1, answers[second], now.Add(questionTime+5*time.Second)))

	board := Leaderboard(s, riddles, questionTime)
	require.Equal(t, []Standing{{Player: "Amy", Score: 45}}, board)
}

func TestLeaderboardIsDeterministic(t *testing.T) {
	s := NewSession()
	now := baseTime()
	for _, name := range []string{"Amy", "Bob"} {
		require.NoError(t, s.Join(name))
	}
	require.NoError(t, s.Start(singleRiddle(), 1, now))
	require.NoError(t, s.Submit("Bob", 0, "echo", now.Add(7*time.Second)))

	first := Leaderboard(s, singleRiddle(), questionTime)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Leaderboard(s, singleRiddle(), questionTime))
	}
}
