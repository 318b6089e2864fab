package memory

import (
	"encoding/json"
	"time"
)

// Turn is a single chat turn. Immutable once appended.
type Turn struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Window is a bounded sliding window of recent chat turns. Appending past
// capacity evicts the oldest turn. Not safe for concurrent use; the owning
// session serializes access.
type Window struct {
	capacity int
	turns    []Turn
}

const DefaultCapacity = 3

func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Window{
		capacity: capacity,
		turns:    make([]Turn, 0, capacity),
	}
}

func (w *Window) Capacity() int {
	return w.capacity
}

func (w *Window) Len() int {
	return len(w.turns)
}

// Append adds a turn, evicting the oldest when full.
func (w *Window) Append(role, content string) {
	turn := Turn{Role: role, Content: content, Timestamp: time.Now()}
	if len(w.turns) == w.capacity {
		copy(w.turns, w.turns[1:])
		w.turns[len(w.turns)-1] = turn
		return
	}
	w.turns = append(w.turns, turn)
}

// Snapshot returns the retained turns oldest-first. The returned slice is
// a copy; mutating it does not affect the window.
func (w *Window) Snapshot() []Turn {
	out := make([]Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

// ContextString serializes the retained turns as a compact JSON array so
// the history can be embedded verbatim into completion prompts.
func (w *Window) ContextString() string {
	data, err := json.Marshal(w.turns)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Clear drops all retained turns.
func (w *Window) Clear() {
	w.turns = w.turns[:0]
}
