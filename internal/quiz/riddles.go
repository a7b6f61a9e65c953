package quiz

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Riddle pairs a prompt with its canonical answer. Prompts double as the
// identifiers stored in questionOrder, so they must be unique within a set.
type Riddle struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

type Set []Riddle

//go:embed data/riddles.json
var defaultRiddles []byte

// DefaultSet returns the built-in safety riddle set.
func DefaultSet() Set {
	set, err := parseSet(defaultRiddles)
	if err != nil {
		panic("quiz: embedded riddle set is invalid: " + err.Error())
	}
	return set
}

// LoadSet reads a riddle set from a JSON file on disk.
func LoadSet(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading riddle set: %w", err)
	}
	set, err := parseSet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

func parseSet(data []byte) (Set, error) {
	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing riddle set: %w", err)
	}
	if len(set) == 0 {
		return nil, errors.New("riddle set is empty")
	}
	seen := make(map[string]bool, len(set))
	for i, r := range set {
		if strings.TrimSpace(r.Prompt) == "" || strings.TrimSpace(r.Answer) == "" {
			return nil, fmt.Errorf("riddle %d has an empty prompt or answer", i)
		}
		if seen[r.Prompt] {
			return nil, fmt.Errorf("duplicate riddle prompt %q", r.Prompt)
		}
		seen[r.Prompt] = true
	}
	return set, nil
}

func (set Set) byPrompt() map[string]string {
	m := make(map[string]string, len(set))
	for _, r := range set {
		m[r.Prompt] = r.Answer
	}
	return m
}
