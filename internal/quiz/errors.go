package quiz

import "errors"

// Everything here is recoverable by the caller: the polling UI shows the
// message and lets the user retry on its next cycle.
var (
	ErrEmptyName      = errors.New("player name is empty")
	ErrNameTaken      = errors.New("player name is already taken")
	ErrNotInLobby     = errors.New("session has already started")
	ErrNoRiddles      = errors.New("no riddles loaded")
	ErrSessionNotLive = errors.New("session is not accepting answers")
	ErrStaleQuestion  = errors.New("question is no longer active")
)
