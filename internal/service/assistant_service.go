package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/pkg/logger"
	memrepo "store-assistant-be/internal/repository/memory"
	"store-assistant-be/pkg/dialogue/faq"
	"store-assistant-be/pkg/dialogue/flow"
	"store-assistant-be/pkg/dialogue/intent"
	"store-assistant-be/pkg/dialogue/prompt"
	"store-assistant-be/pkg/llm"
	"store-assistant-be/pkg/store"
)

// IAssistantService is the single entry point for conversation turns. One
// call to Submit handles exactly one user message end to end and streams
// the final response; closure of the returned channel is the terminal
// signal for the turn.
type IAssistantService interface {
	Submit(ctx context.Context, sessionID, message string) (<-chan string, error)
	Reset(sessionID string)
}

// Consumer-side views of the dialogue components, sized to what the
// orchestrator actually calls.
type retrievalGate interface {
	Answer(ctx context.Context, query string) faq.Result
	Floor() float64
}

type intentClassifier interface {
	Classify(ctx context.Context, userInput, history string) (*intent.Result, error)
}

type slotExtractor interface {
	ExtractEmail(ctx context.Context, userInput, history string) (string, error)
}

type cancelFlowManager interface {
	Advance(ctx context.Context, state *flow.State, userInput, history string) (string, error)
	Resolve(ctx context.Context, state *flow.State) string
}

type orderLookup interface {
	LookupOrders(ctx context.Context, email string) ([]*entity.Order, error)
}

type responseFormatter interface {
	Stream(ctx context.Context, message, history string) <-chan string
}

type assistantService struct {
	sessions       *memrepo.SessionRepository
	gate           retrievalGate
	classifier     intentClassifier
	extractor      slotExtractor
	flowManager    cancelFlowManager
	orders         orderLookup
	formatter      responseFormatter
	llmProvider    llm.LLMProvider
	memoryCapacity int
	logger         logger.ILogger
}

func NewAssistantService(
	sessions *memrepo.SessionRepository,
	gate retrievalGate,
	classifier intentClassifier,
	extractor slotExtractor,
	flowManager cancelFlowManager,
	orders orderLookup,
	formatter responseFormatter,
	llmProvider llm.LLMProvider,
	memoryCapacity int,
	logger logger.ILogger,
) IAssistantService {
	return &assistantService{
		sessions:       sessions,
		gate:           gate,
		classifier:     classifier,
		extractor:      extractor,
		flowManager:    flowManager,
		orders:         orders,
		formatter:      formatter,
		llmProvider:    llmProvider,
		memoryCapacity: memoryCapacity,
		logger:         logger,
	}
}

// Submit handles one user message for the session and returns the stream of
// response fragments. The session lock is held for the whole turn, so
// concurrent messages on the same session are serialized; independent
// sessions proceed in parallel. Every failure surfaces as a well-formed
// response on the stream, never as a broken channel.
func (s *assistantService) Submit(ctx context.Context, sessionID, message string) (<-chan string, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		session = store.NewSession(sessionID, s.memoryCapacity)
		s.sessions.Save(session)
	}

	out := make(chan string, 8)
	go func() {
		defer close(out)

		session.Mu.Lock()
		defer session.Mu.Unlock()

		// History excludes the current message; prompts receive it separately
		history := session.Memory.ContextString()
		session.Memory.Append(constant.ChatMessageRoleUser, message)

		raw := s.respond(ctx, session, message, history)

		var assembled strings.Builder
		for fragment := range s.formatter.Stream(ctx, raw, history) {
			assembled.WriteString(fragment)
			out <- fragment
		}

		// Memory records what the user actually saw, not the raw answer
		session.Memory.Append(constant.ChatMessageRoleAssistant, assembled.String())
	}()

	return out, nil
}

// Reset clears the session's memory and flow state. Unknown sessions are a
// no-op; the next message simply starts a fresh one.
func (s *assistantService) Reset(sessionID string) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return
	}
	session.Mu.Lock()
	session.Reset()
	session.Mu.Unlock()
	s.logger.Info("assistant", "session reset", map[string]interface{}{
		"session_id": sessionID,
	})
}

// respond is the single catch boundary for a turn. Whatever goes wrong
// inside routing, the caller gets a user-visible message back.
func (s *assistantService) respond(ctx context.Context, session *store.Session, message, history string) (raw string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("assistant", "panic while handling turn", map[string]interface{}{
				"session_id": session.ID,
				"panic":      r,
			})
			raw = prompt.MsgProcessingError
		}
	}()

	raw, err := s.route(ctx, session, message, history)
	if err != nil {
		s.logger.Error("assistant", "turn handling failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return prompt.MsgProcessingError
	}
	return raw
}

// route picks the handling path for one message and returns the raw
// response for the formatter pass.
func (s *assistantService) route(ctx context.Context, session *store.Session, message, history string) (string, error) {
	// An in-progress cancellation owns the turn: no gate, no re-classification
	if session.Flow.IsCancelFlow() {
		return s.flowManager.Advance(ctx, session.Flow, message, history)
	}

	// Confident retrieval hits skip the whole classify/route/dispatch path.
	// The comparison is strictly greater; a hit exactly at the floor goes
	// through classification like any other message.
	gateResult := s.gate.Answer(ctx, message)
	if gateResult.Found && gateResult.Similarity > s.gate.Floor() {
		s.logger.Debug("assistant", "retrieval gate short-circuit", map[string]interface{}{
			"session_id": session.ID,
			"similarity": gateResult.Similarity,
		})
		return gateResult.Answer, nil
	}

	classification, err := s.classifier.Classify(ctx, message, history)
	if err != nil {
		if errors.Is(err, constant.ErrMalformedModelOutput) {
			return prompt.MsgClarification, nil
		}
		return "", err
	}

	switch classification.Intent {
	case intent.IntentCancelOrder:
		session.Flow.Start(flow.IntentCancelOrder, map[string]string{
			flow.SlotEmail:   classification.Email,
			flow.SlotOrderID: classification.OrderID,
		})
		// Slots already seeded from the classification; re-extraction on the
		// same message would be redundant
		return s.flowManager.Resolve(ctx, session.Flow), nil

	case intent.IntentCheckOrders:
		return s.checkOrders(ctx, classification.Email, message, history)

	case intent.IntentFAQ:
		// Non-confident hit: still the best answer we have for a question
		// the classifier also reads as FAQ
		if gateResult.Found {
			return gateResult.Answer, nil
		}
		return prompt.MsgOutOfScope, nil

	case intent.IntentChat:
		return s.openChat(ctx, message, history)

	default:
		return prompt.MsgOutOfScope, nil
	}
}

func (s *assistantService) checkOrders(ctx context.Context, email, message, history string) (string, error) {
	if email == "" {
		extracted, err := s.extractor.ExtractEmail(ctx, message, history)
		if err != nil {
			return "", err
		}
		email = extracted
	}
	if email == "" {
		return prompt.MsgEmailNeeded, nil
	}

	orders, err := s.orders.LookupOrders(ctx, email)
	if err != nil {
		return prompt.MsgLookupError, nil
	}
	if len(orders) == 0 {
		return prompt.MsgNoOrders(email), nil
	}

	return s.renderOrders(ctx, orders, history), nil
}

// renderOrders turns the order list into a readable summary via the
// completion capability, falling back to a plain rendering when the call
// fails. The data always reaches the user once it was fetched.
func (s *assistantService) renderOrders(ctx context.Context, orders []*entity.Order, history string) string {
	payload, err := json.Marshal(orders)
	if err != nil {
		return plainOrderSummary(orders)
	}

	response, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: prompt.BuildSystemPrompt(prompt.OrderResponseFormatter, history)},
		{Role: "user", Content: "Here are the orders to present:\n" + string(payload)},
	})
	if err != nil || strings.TrimSpace(response) == "" {
		s.logger.Warn("assistant", "order rendering failed, using plain summary", map[string]interface{}{
			"orders": len(orders),
		})
		return plainOrderSummary(orders)
	}
	return response
}

func (s *assistantService) openChat(ctx context.Context, message, history string) (string, error) {
	response, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: prompt.BuildSystemPrompt(prompt.Chat, history)},
		{Role: "user", Content: message},
	})
	if err != nil {
		return "", err
	}
	return response, nil
}

func plainOrderSummary(orders []*entity.Order) string {
	var b strings.Builder
	b.WriteString("Here are your orders:\n")
	for _, order := range orders {
		b.WriteString("- ")
		b.WriteString(order.OrderID)
		b.WriteString(" (")
		b.WriteString(order.Status)
		b.WriteString("), total ")
		b.WriteString(strconv.FormatFloat(order.TotalPrice, 'f', -1, 64))
		b.WriteString(", placed ")
		b.WriteString(order.CreatedAt.Format("2006-01-02"))
		b.WriteString("\n")
	}
	return b.String()
}
