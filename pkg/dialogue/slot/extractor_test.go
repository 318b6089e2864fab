package slot

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
	out := make(chan string)
	close(out)
	return out, s.err
}

func newExtractor(response string) *Extractor {
	return NewExtractor(&stubLLM{response: response}, logger.NewNopLogger())
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"valid email", "john.smith@email.com", "john.smith@email.com"},
		{"padded response", "  john.smith@email.com\n", "john.smith@email.com"},
		{"not found token", "None", ""},
		{"not found token lowercase", "none", ""},
		{"not an email", "john smith", ""},
		{"missing domain dot", "john@localhost", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newExtractor(tt.response).ExtractEmail(context.Background(), "my email is...", "[]")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractOrderID(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"plain id", "ORD-123ABC", "ORD-123ABC"},
		{"hash prefix stripped", "#ORD-123ABC", "ORD-123ABC"},
		{"not found token", "None", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newExtractor(tt.response).ExtractOrderID(context.Background(), "cancel my order", "[]")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCompletionFaultIsTransient(t *testing.T) {
	e := NewExtractor(&stubLLM{err: errors.New("timeout")}, logger.NewNopLogger())

	_, err := e.ExtractEmail(context.Background(), "anything", "[]")
	assert.ErrorIs(t, err, constant.ErrTransient)

	_, err = e.ExtractOrderID(context.Background(), "anything", "[]")
	assert.ErrorIs(t, err, constant.ErrTransient)
}
