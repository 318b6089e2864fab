// Package slot extracts a single slot value (email or order id) from a
// user message on demand, via the completion capability.
package slot

import (
	"context"
	"fmt"
	"strings"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/pkg/logger"
	"store-assistant-be/pkg/dialogue/prompt"
	"store-assistant-be/pkg/llm"

	"github.com/go-playground/validator/v10"
)

// notFoundToken is the literal the extraction prompts instruct the model to
// return when no value is present. Compared case-insensitively and never
// propagated as a real slot value.
const notFoundToken = "none"

type Extractor struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
	validate    *validator.Validate
}

func NewExtractor(llmProvider llm.LLMProvider, logger logger.ILogger) *Extractor {
	return &Extractor{
		llmProvider: llmProvider,
		logger:      logger,
		validate:    validator.New(),
	}
}

// ExtractEmail returns the email found in userInput, or "" when none was
// found or the extraction does not look like an email. Only completion
// faults produce an error.
func (e *Extractor) ExtractEmail(ctx context.Context, userInput, history string) (string, error) {
	value, err := e.extract(ctx, prompt.EmailExtractor, userInput, history)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", nil
	}
	if !e.isValidEmail(value) {
		e.logger.Debug("slot", "discarding invalid email extraction", map[string]interface{}{
			"value": value,
		})
		return "", nil
	}
	return value, nil
}

// ExtractOrderID returns the order id found in userInput, or "" when none
// was found.
func (e *Extractor) ExtractOrderID(ctx context.Context, userInput, history string) (string, error) {
	value, err := e.extract(ctx, prompt.OrderIDExtractor, userInput, history)
	if err != nil {
		return "", err
	}
	// Leading '#' is how users write order ids, not part of the id itself
	return strings.TrimPrefix(value, "#"), nil
}

func (e *Extractor) extract(ctx context.Context, template, userInput, history string) (string, error) {
	response, err := e.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: prompt.BuildSystemPrompt(template, history)},
		{Role: "user", Content: userInput},
	}, llm.WithTemperature(0.0))
	if err != nil {
		return "", fmt.Errorf("%w: extract slot: %v", constant.ErrTransient, err)
	}

	value := strings.TrimSpace(response)
	if strings.EqualFold(value, notFoundToken) {
		return "", nil
	}
	return value, nil
}

// isValidEmail keeps the acceptance rule strict: validator's email check
// plus an explicit dot in the domain segment.
func (e *Extractor) isValidEmail(value string) bool {
	if e.validate.Var(value, "email") != nil {
		return false
	}
	at := strings.LastIndex(value, "@")
	if at < 1 || at == len(value)-1 {
		return false
	}
	return strings.Contains(value[at+1:], ".")
}
