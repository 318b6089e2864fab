package flow

import (
	"context"
	"strings"

	"store-assistant-be/internal/pkg/logger"
	"store-assistant-be/pkg/dialogue/prompt"
	"store-assistant-be/pkg/dialogue/tools"
)

// SlotExtractor is the part of the slot extractor the flow manager needs.
type SlotExtractor interface {
	ExtractEmail(ctx context.Context, userInput, history string) (string, error)
	ExtractOrderID(ctx context.Context, userInput, history string) (string, error)
}

// CancelDispatcher executes the cancellation once both slots are known.
type CancelDispatcher interface {
	CancelOrder(ctx context.Context, email, orderID string) tools.CancelResult
}

// Manager advances the cancellation flow one turn at a time.
type Manager struct {
	extractor  SlotExtractor
	dispatcher CancelDispatcher
	logger     logger.ILogger
}

func NewManager(extractor SlotExtractor, dispatcher CancelDispatcher, logger logger.ILogger) *Manager {
	return &Manager{
		extractor:  extractor,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Advance runs the per-turn collection step for an active cancellation
// flow and returns the raw response for this turn. Once both slots are
// known it dispatches exactly one cancellation attempt and clears the flow
// whatever the outcome; the user must restate to retry.
func (m *Manager) Advance(ctx context.Context, state *State, userInput, history string) (string, error) {
	email, err := m.extractor.ExtractEmail(ctx, userInput, history)
	if err != nil {
		return "", err
	}
	state.SetSlot(SlotEmail, email)

	// The order id is only worth asking the model for once the email is known
	if state.Slot(SlotEmail) != "" {
		orderID, err := m.extractor.ExtractOrderID(ctx, userInput, history)
		if err != nil {
			return "", err
		}
		state.SetSlot(SlotOrderID, orderID)
	}

	return m.Resolve(ctx, state), nil
}

// Resolve dispatches the cancellation when both slots are known, otherwise
// asks for the missing field(s). Used directly when a flow has just been
// started with classifier-seeded slots and re-extraction would be redundant.
func (m *Manager) Resolve(ctx context.Context, state *State) string {
	if state.Slot(SlotEmail) != "" && state.Slot(SlotOrderID) != "" {
		result := m.dispatcher.CancelOrder(ctx, state.Slot(SlotEmail), state.Slot(SlotOrderID))
		state.Clear()
		m.logger.Info("flow", "cancellation attempt completed", map[string]interface{}{
			"success": result.Success,
		})
		return result.Message
	}

	missing := state.MissingCancelSlots()
	return prompt.MsgMissingInfo(strings.Join(missing, " and "), len(missing) > 1)
}
