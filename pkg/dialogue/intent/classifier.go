// Package intent classifies a user message into one of the four handling
// paths and opportunistically extracts slots in the same model call.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/pkg/logger"
	"store-assistant-be/pkg/dialogue/prompt"
	"store-assistant-be/pkg/llm"
)

type Intent string

const (
	IntentCheckOrders Intent = "CHECK_ORDERS"
	IntentCancelOrder Intent = "CANCEL_ORDER"
	IntentFAQ         Intent = "FAQ"
	IntentChat        Intent = "CHAT"
)

// Result is the outcome of one classification call. Transient; produced
// fresh per call and never persisted.
type Result struct {
	Intent     Intent
	Confidence float64
	Email      string // empty when not extracted
	OrderID    string // empty when not extracted
}

// rawResult mirrors the JSON contract the classifier prompt demands.
// email/order_id arrive as null when absent.
type rawResult struct {
	Intent     string   `json:"intent"`
	Confidence *float64 `json:"confidence"`
	Email      *string  `json:"email"`
	OrderID    *string  `json:"order_id"`
}

type Classifier struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewClassifier(llmProvider llm.LLMProvider, logger logger.ILogger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify runs one classification call. A completion fault comes back
// wrapped as ErrTransient; a response failing schema validation comes back
// as ErrMalformedModelOutput. The caller decides the fallback, not this
// package.
func (c *Classifier) Classify(ctx context.Context, userInput, history string) (*Result, error) {
	response, err := c.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: prompt.BuildSystemPrompt(prompt.IntentClassifier, history)},
		{Role: "user", Content: userInput},
	}, llm.WithTemperature(0.0))
	if err != nil {
		return nil, fmt.Errorf("%w: classify: %v", constant.ErrTransient, err)
	}

	result, err := parseResult(response)
	if err != nil {
		c.logger.Warn("intent", "classifier output failed validation", map[string]interface{}{
			"error":    err.Error(),
			"response": truncate(response, 500),
		})
		return nil, fmt.Errorf("%w: %v", constant.ErrMalformedModelOutput, err)
	}

	return result, nil
}

func parseResult(response string) (*Result, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal: %v", err)
	}

	parsed := &Result{Intent: Intent(strings.ToUpper(strings.TrimSpace(raw.Intent)))}
	switch parsed.Intent {
	case IntentCheckOrders, IntentCancelOrder, IntentFAQ, IntentChat:
	default:
		return nil, fmt.Errorf("unknown intent %q", raw.Intent)
	}

	if raw.Confidence == nil {
		return nil, fmt.Errorf("missing confidence")
	}
	if *raw.Confidence < 0 || *raw.Confidence > 1 {
		return nil, fmt.Errorf("confidence %v outside [0,1]", *raw.Confidence)
	}
	parsed.Confidence = *raw.Confidence

	// Models occasionally emit the literal string "null" instead of JSON null
	if raw.Email != nil && !strings.EqualFold(*raw.Email, "null") {
		parsed.Email = strings.TrimSpace(*raw.Email)
	}
	if raw.OrderID != nil && !strings.EqualFold(*raw.OrderID, "null") {
		parsed.OrderID = strings.TrimSpace(*raw.OrderID)
	}

	return parsed, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
