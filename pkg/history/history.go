// Package history persists a bounded conversation transcript as a JSON file.
package history

import (
	"encoding/json"
	"os"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Tail returns the most recent n turns, oldest first.
func Tail(turns []Turn, n int) []Turn {
	if n <= 0 {
		return []Turn{}
	}
	if len(turns) <= n {
		return turns
	}
	out := make([]Turn, n)
	copy(out, turns[len(turns)-n:])
	return out
}

// Store reads and writes the transcript file.
type Store struct {
	path  string
	limit int
}

// NewStore returns a store backed by the given file path. The limit caps how
// many turns Save will retain.
func NewStore(path string, limit int) *Store {
	if limit <= 0 {
		limit = 1
	}
	return &Store{path: path, limit: limit}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Limit returns the maximum number of retained turns.
func (s *Store) Limit() int { return s.limit }

// Load returns the persisted transcript. A missing or unreadable file and any
// decode failure all yield an empty transcript; corruption is never surfaced.
func (s *Store) Load() []Turn {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []Turn{}
	}
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return []Turn{}
	}
	if turns == nil {
		turns = []Turn{}
	}
	return Tail(turns, s.limit)
}

// Save writes the transcript as an indented JSON array, truncated to the
// store limit. The whole file is rewritten on every call.
func (s *Store) Save(turns []Turn) error {
	turns = Tail(turns, s.limit)
	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Reset deletes the transcript file. A file that does not exist is not an
// error.
func (s *Store) Reset() error {
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
