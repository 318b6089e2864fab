package factory

import (
	"fmt"

	"store-assistant-be/pkg/llm"
	"store-assistant-be/pkg/llm/ollama"
	"store-assistant-be/pkg/llm/openai"
)

// NewLLMProvider selects a completion backend from config values.
func NewLLMProvider(providerName, modelName, ollamaBaseURL, openaiBaseURL, openaiAPIKey string) (llm.LLMProvider, error) {
	switch providerName {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "openai":
		if openaiAPIKey == "" {
			return nil, fmt.Errorf("openai provider selected but OPENAI_API_KEY is empty")
		}
		return openai.NewOpenAIProvider(openaiBaseURL, openaiAPIKey, modelName), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", providerName)
	}
}
