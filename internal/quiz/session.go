package quiz

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Phase is the coarse session state. It only ever moves forward
// (LOBBY -> IN_PROGRESS -> FINISHED); a reset is the single way back.
type Phase string

const (
	PhaseLobby      Phase = "LOBBY"
	PhaseInProgress Phase = "IN_PROGRESS"
	PhaseFinished   Phase = "FINISHED"
)

// Timestamp is an instant carried on the wire as float unix seconds.
// Precision is truncated to microseconds so a value survives the float
// encoding and a JSON round trip unchanged.
type Timestamp struct {
	time.Time
}

// At wraps t as a Timestamp, normalized to UTC at microsecond precision.
func At(t time.Time) Timestamp {
	return Timestamp{time.UnixMicro(t.UnixMicro()).UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(t.UnixMicro())/1e6, 'f', -1, 64)), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parsing timestamp: %w", err)
	}
	t.Time = time.UnixMicro(int64(math.Round(f * 1e6))).UTC()
	return nil
}

// Answer is one ledger entry: what a player submitted and when. Its wire
// form is a two-element array, [text, submitted_at].
type Answer struct {
	Text        string
	SubmittedAt Timestamp
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{a.Text, a.SubmittedAt})
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var tuple [2]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("parsing answer entry: %w", err)
	}
	if err := json.Unmarshal(tuple[0], &a.Text); err != nil {
		return fmt.Errorf("parsing answer text: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &a.SubmittedAt); err != nil {
		return fmt.Errorf("parsing answer timestamp: %w", err)
	}
	return nil
}

// Session is the entire shared quiz state: one instance per game, read and
// written whole by every polling client through the store. The maps keyed by
// question index serialize with stringified keys, which is exactly the
// persisted layout clients expect.
type Session struct {
	Roster            []string                  `json:"roster"`
	Phase             Phase                     `json:"phase"`
	QuestionOrder     []string                  `json:"questionOrder"`
	CurrentQuestion   int                       `json:"currentQuestionIndex"`
	QuestionDeadlines map[int]Timestamp         `json:"questionDeadlines"`
	AnswerLedger      map[string]map[int]Answer `json:"answerLedger"`
}

// NewSession returns a pristine lobby-phase session. Reset is the same
// operation: the old record is simply replaced with a fresh one.
func NewSession() Session {
	return Session{
		Roster:            []string{},
		Phase:             PhaseLobby,
		QuestionOrder:     []string{},
		QuestionDeadlines: map[int]Timestamp{},
		AnswerLedger:      map[string]map[int]Answer{},
	}
}

// Clone deep-copies the session so stores can hand out snapshots without
// sharing map state between callers.
func (s Session) Clone() Session {
	out := s
	out.Roster = append([]string(nil), s.Roster...)
	out.QuestionOrder = append([]string(nil), s.QuestionOrder...)
	out.QuestionDeadlines = make(map[int]Timestamp, len(s.QuestionDeadlines))
	for idx, t := range s.QuestionDeadlines {
		out.QuestionDeadlines[idx] = t
	}
	out.AnswerLedger = make(map[string]map[int]Answer, len(s.AnswerLedger))
	for player, entries := range s.AnswerLedger {
		copied := make(map[int]Answer, len(entries))
		for idx, a := range entries {
			copied[idx] = a
		}
		out.AnswerLedger[player] = copied
	}
	return out
}
