package intent

import (
	"context"
	"errors"
	"testing"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/pkg/logger"
	"store-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) ChatStream(_ context.Context, _ []llm.Message, _ ...llm.Option) (<-chan string, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(chan string, 1)
	out <- s.response
	close(out)
	return out, nil
}

func TestClassifyParsesWellFormedResult(t *testing.T) {
	c := NewClassifier(&stubLLM{
		response: `{"intent": "CANCEL_ORDER", "confidence": 0.95, "email": null, "order_id": "ORD-123"}`,
	}, logger.NewNopLogger())

	result, err := c.Classify(context.Background(), "cancel my order #ORD-123", "[]")
	require.NoError(t, err)
	assert.Equal(t, IntentCancelOrder, result.Intent)
	assert.Equal(t, 0.95, result.Confidence)
	assert.Empty(t, result.Email)
	assert.Equal(t, "ORD-123", result.OrderID)
}

func TestClassifyExtractsJSONFromSurroundingProse(t *testing.T) {
	c := NewClassifier(&stubLLM{
		response: "Sure! Here is the classification:\n{\"intent\": \"CHAT\", \"confidence\": 0.8, \"email\": null, \"order_id\": null}\nLet me know if you need more.",
	}, logger.NewNopLogger())

	result, err := c.Classify(context.Background(), "tell me about the RX-78-2", "[]")
	require.NoError(t, err)
	assert.Equal(t, IntentChat, result.Intent)
}

func TestClassifyTreatsLiteralNullStringAsAbsent(t *testing.T) {
	c := NewClassifier(&stubLLM{
		response: `{"intent": "CHECK_ORDERS", "confidence": 0.9, "email": "null", "order_id": "NULL"}`,
	}, logger.NewNopLogger())

	result, err := c.Classify(context.Background(), "show my orders", "[]")
	require.NoError(t, err)
	assert.Empty(t, result.Email)
	assert.Empty(t, result.OrderID)
}

func TestClassifyMalformedOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json at all", "I think the user wants to chat."},
		{"unknown intent", `{"intent": "REFUND", "confidence": 0.9}`},
		{"missing confidence", `{"intent": "CHAT"}`},
		{"confidence out of range", `{"intent": "CHAT", "confidence": 1.7}`},
		{"broken json", `{"intent": "CHAT", "confidence":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&stubLLM{response: tt.response}, logger.NewNopLogger())
			_, err := c.Classify(context.Background(), "hello", "[]")
			assert.ErrorIs(t, err, constant.ErrMalformedModelOutput)
		})
	}
}

func TestClassifyCompletionFaultIsTransient(t *testing.T) {
	c := NewClassifier(&stubLLM{err: errors.New("connection refused")}, logger.NewNopLogger())

	_, err := c.Classify(context.Background(), "hello", "[]")
	assert.ErrorIs(t, err, constant.ErrTransient)
	assert.NotErrorIs(t, err, constant.ErrMalformedModelOutput)
}

func TestClassifyNormalizesIntentCase(t *testing.T) {
	c := NewClassifier(&stubLLM{
		response: `{"intent": "cancel_order", "confidence": 0.9, "email": null, "order_id": null}`,
	}, logger.NewNopLogger())

	result, err := c.Classify(context.Background(), "cancel it", "[]")
	require.NoError(t, err)
	assert.Equal(t, IntentCancelOrder, result.Intent)
}
