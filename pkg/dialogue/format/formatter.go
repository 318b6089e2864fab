// Package format is the response formatter: a post-processing pass that
// paraphrases a chosen raw answer through the completion capability,
// preserving information while adapting tone.
package format

import (
	"context"

	"store-assistant-be/internal/pkg/logger"
	"store-assistant-be/pkg/dialogue/prompt"
	"store-assistant-be/pkg/llm"
)

type Formatter struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewFormatter(llmProvider llm.LLMProvider, logger logger.ILogger) *Formatter {
	return &Formatter{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Stream paraphrases message and yields it as incremental fragments. The
// returned channel always produces at least the original message: if the
// formatting call cannot be set up, the raw message is emitted unchanged as
// a single fragment. Channel closure is the terminal signal.
func (f *Formatter) Stream(ctx context.Context, message, history string) <-chan string {
	fragments, err := f.llmProvider.ChatStream(ctx, []llm.Message{
		{Role: "system", Content: prompt.BuildSystemPrompt(prompt.ResponseFormatter, history)},
		{Role: "user", Content: "Please rephrase this message: " + message},
	})
	if err != nil {
		f.logger.Warn("format", "formatter stream failed, passing message through", map[string]interface{}{
			"error": err.Error(),
		})
		out := make(chan string, 1)
		out <- message
		close(out)
		return out
	}
	return fragments
}

// Format is the synchronous variant, for one-shot internal uses where the
// caller needs the whole paraphrase at once.
func (f *Formatter) Format(ctx context.Context, message, history string) string {
	response, err := f.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: prompt.BuildSystemPrompt(prompt.ResponseFormatter, history)},
		{Role: "user", Content: "Please rephrase this message: " + message},
	})
	if err != nil || response == "" {
		return message
	}
	return response
}
