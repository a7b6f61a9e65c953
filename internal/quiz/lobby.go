package quiz

import "strings"

// Join admits a player. Names are whitespace-trimmed and must be unique
// under case-sensitive comparison; the roster keeps join order and is
// append-only until a reset. Joining is not phase-gated: a latecomer simply
// scores zero for questions that already passed.
func (s *Session) Join(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	for _, existing := range s.Roster {
		if existing == name {
			return ErrNameTaken
		}
	}
	s.Roster = append(s.Roster, name)
	return nil
}
