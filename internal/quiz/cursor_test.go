package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const questionTime = 30 * time.Second

var testRiddles = Set{
	{Prompt: "echo?", Answer: "echo"},
	{Prompt: "shadow?", Answer: "shadow"},
	{Prompt: "candle?", Answer: "candle"},
}

func baseTime() time.Time {
	return time.Unix(1700000000, 0).UTC()
}

func startedSession(t *testing.T, riddles Set) (Session, time.Time) {
	t.Helper()
	s := NewSession()
	now := baseTime()
	require.NoError(t, s.Start(riddles, 42, now))
	return s, now
}

func TestStartRequiresLobby(t *testing.T) {
	s, _ := startedSession(t, testRiddles)

	require.ErrorIs(t, s.Start(testRiddles, 1, baseTime()), ErrNotInLobby)
}

func TestStartRejectsEmptySet(t *testing.T) {
	s := NewSession()

	require.ErrorIs(t, s.Start(Set{}, 1, baseTime()), ErrNoRiddles)
	require.Equal(t, PhaseLobby, s.Phase)
}

func TestStartUsesEveryRiddleOnce(t *testing.T) {
	s, now := startedSession(t, testRiddles)

	require.Equal(t, PhaseInProgress, s.Phase)
	require.Equal(t, 0, s.CurrentQuestion)
	require.Equal(t, At(now), s.QuestionDeadlines[0])

	require.Len(t, s.QuestionOrder, len(testRiddles))
	seen := map[string]bool{}
	for _, prompt := range s.QuestionOrder {
		seen[prompt] = true
	}
	for _, r := range testRiddles {
		require.True(t, seen[r.Prompt], "missing prompt %q", r.Prompt)
	}
}

func TestStartIsDeterministicPerSeed(t *testing.T) {
	a, _ := startedSession(t, testRiddles)
	b, _ := startedSession(t, testRiddles)

	require.Equal(t, a.QuestionOrder, b.QuestionOrder)
}

func TestTickBeforeDeadlineIsNoop(t *testing.T) {
	s, now := startedSession(t, testRiddles)

	require.False(t, s.Tick(questionTime, now.Add(29*time.Second)))
	require.Equal(t, 0, s.CurrentQuestion)
}

func TestTickAdvancesExactlyOnce(t *testing.T) {
	s, now := startedSession(t, testRiddles)
	expired := now.Add(questionTime)

	require.True(t, s.Tick(questionTime, expired))
	require.Equal(t, 1, s.CurrentQuestion)
	require.Equal(t, At(expired), s.QuestionDeadlines[1])

	// Re-running with the same instant must not advance a second time: the
	// new question's window just opened.
	for i := 0; i < 5; i++ {
		require.False(t, s.Tick(questionTime, expired))
	}
	require.Equal(t, 1, s.CurrentQuestion)
	require.Equal(t, At(expired), s.QuestionDeadlines[1])
}

func TestTickKeepsExistingStamp(t *testing.T) {
	s, now := startedSession(t, testRiddles)

	// A concurrent writer already stamped the next question's start.
	stamped := At(now.Add(31 * time.Second))
	s.QuestionDeadlines[1] = stamped

	require.True(t, s.Tick(questionTime, now.Add(questionTime)))
	require.Equal(t, stamped, s.QuestionDeadlines[1])
}

func TestTickFinishesPastLastQuestion(t *testing.T) {
	s, now := startedSession(t, testRiddles)

	for i := 0; i < len(testRiddles); i++ {
		now = now.Add(questionTime)
		require.True(t, s.Tick(questionTime, now), "tick %d", i)
	}

	require.Equal(t, PhaseFinished, s.Phase)
	require.Equal(t, len(testRiddles), s.CurrentQuestion)
	require.False(t, s.Tick(questionTime, now.Add(time.Hour)))
}

func TestTickOutsideInProgressIsNoop(t *testing.T) {
	s := NewSession()

	require.False(t, s.Tick(questionTime, baseTime()))
	require.Equal(t, PhaseLobby, s.Phase)
}

func TestRemainingCountsDownMonotonically(t *testing.T) {
	s, now := startedSession(t, testRiddles)

	prev := s.Remaining(questionTime, now)
	require.Equal(t, questionTime, prev)

	for offset := time.Second; offset <= 40*time.Second; offset += time.Second {
		cur := s.Remaining(questionTime, now.Add(offset))
		require.LessOrEqual(t, cur, prev)
		require.GreaterOrEqual(t, cur, time.Duration(0))
		prev = cur
	}
	require.Equal(t, time.Duration(0), s.Remaining(questionTime, now.Add(time.Hour)))
}

func TestRemainingIsZeroOutsideInProgress(t *testing.T) {
	s := NewSession()

	require.Equal(t, time.Duration(0), s.Remaining(questionTime, baseTime()))
}
