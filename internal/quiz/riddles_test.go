package quiz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSetIsValid(t *testing.T) {
	set := DefaultSet()

	require.NotEmpty(t, set)
	seen := map[string]bool{}
	for _, r := range set {
		require.NotEmpty(t, r.Prompt)
		require.NotEmpty(t, r.Answer)
		require.False(t, seen[r.Prompt], "duplicate prompt %q", r.Prompt)
		seen[r.Prompt] = true
	}
}

func TestLoadSetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riddles.json")
	payload := `[{"prompt":"echo?","answer":"echo"},{"prompt":"shadow?","answer":"shadow"}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	set, err := LoadSet(path)
	require.NoError(t, err)
	require.Len(t, set, 2)
	require.Equal(t, "echo?", set[0].Prompt)
}

func TestLoadSetRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"empty set":        `[]`,
		"duplicate prompt": `[{"prompt":"echo?","answer":"a"},{"prompt":"echo?","answer":"b"}]`,
		"blank answer":     `[{"prompt":"echo?","answer":"  "}]`,
		"not json":         `{`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "riddles.json")
			require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

			_, err := LoadSet(path)
			require.Error(t, err)
		})
	}
}

func TestLoadSetMissingFile(t *testing.T) {
	_, err := LoadSet(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
