// Package flow tracks multi-turn flow state. Cancellation is the only
// operation needing two pieces of data that may arrive across separate
// turns, so it is the only flow that persists between messages.
package flow

// Slot names collected by the cancellation flow.
const (
	SlotEmail   = "email"
	SlotOrderID = "order_id"
)

// ActiveIntent values. Empty means no flow is in progress.
const (
	IntentNone        = ""
	IntentCancelOrder = "CANCEL_ORDER"
)

// State is the per-session flow state. Mutated only by the orchestrator
// and the flow manager; cleared on completion, abandonment, or reset.
type State struct {
	ActiveIntent string
	Slots        map[string]string
}

func NewState() *State {
	return &State{Slots: make(map[string]string)}
}

// Start begins a flow, seeding any slots already extracted.
func (s *State) Start(intent string, seeds map[string]string) {
	s.ActiveIntent = intent
	s.Slots = make(map[string]string)
	for k, v := range seeds {
		if v != "" {
			s.Slots[k] = v
		}
	}
}

// SetSlot stores a value. Empty values never overwrite: re-extraction only
// replaces a slot when the model actually found something.
func (s *State) SetSlot(key, value string) {
	if value == "" {
		return
	}
	s.Slots[key] = value
}

func (s *State) Slot(key string) string {
	return s.Slots[key]
}

func (s *State) IsCancelFlow() bool {
	return s.ActiveIntent == IntentCancelOrder
}

// Clear resets to IDLE.
func (s *State) Clear() {
	s.ActiveIntent = IntentNone
	s.Slots = make(map[string]string)
}

// MissingCancelSlots lists the cancellation fields still unknown, in the
// order they are asked for.
func (s *State) MissingCancelSlots() []string {
	var missing []string
	if s.Slot(SlotEmail) == "" {
		missing = append(missing, "your email address")
	}
	if s.Slot(SlotOrderID) == "" {
		missing = append(missing, "the order id")
	}
	return missing
}
