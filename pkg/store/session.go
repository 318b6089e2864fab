package store

import (
	"sync"

	"store-assistant-be/pkg/dialogue/flow"
	"store-assistant-be/pkg/dialogue/memory"
)

// Session is the per-conversation context object: one bounded memory window
// and one flow state, created on first message and destroyed on explicit
// reset or idle timeout. Nothing in here is shared across sessions.
//
// Mu serializes message handling within the session: one user message is
// fully handled before the next is accepted. Independent sessions run in
// parallel without any cross-session locking.
type Session struct {
	ID     string
	Memory *memory.Window
	Flow   *flow.State

	Mu sync.Mutex
}

func NewSession(id string, memoryCapacity int) *Session {
	return &Session{
		ID:     id,
		Memory: memory.NewWindow(memoryCapacity),
		Flow:   flow.NewState(),
	}
}

// Reset clears memory and flow state in place.
func (s *Session) Reset() {
	s.Memory.Clear()
	s.Flow.Clear()
}
