package llm

import (
	"context"
	"errors"
)

var (
	ErrMissingAPIKey = errors.New("llm api key is empty")
	ErrEmptyReply    = errors.New("no choices returned by model")
)

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Completion is a model reply together with how sure the model was about it.
type Completion struct {
	Text         string
	Model        string
	FinishReason string
	// Confidence is in [0, 1].
	Confidence float64
}

// ScoredModel is a ChatModel that also reports a confidence for its reply.
type ScoredModel interface {
	ChatModel
	Name() string
	Complete(ctx context.Context, systemPrompt, userPrompt string) (Completion, error)
}
