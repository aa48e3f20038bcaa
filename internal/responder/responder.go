// Package responder turns a user's chat message into the assistant's reply.
//
// Two implementations exist: GenerativeResponder forwards the message to an
// OpenAI-compatible chat completions API, and RuleResponder answers from a
// fixed keyword table. Both satisfy Responder, so the chat flow does not care
// which one is configured.
package responder

import (
	"context"

	"github.com/dom/taskchat-backend/internal/config"
)

// Responder produces a reply for a single user message. Implementations
// never fail: upstream problems are folded into the returned text.
type Responder interface {
	Respond(ctx context.Context, message string) string
}

// Named is implemented by responders that report a stable name for
// bookkeeping (conversation metadata, metrics).
type Named interface {
	Name() string
}

// NameOf returns r's name, or "custom" when r does not report one.
func NameOf(r Responder) string {
	if n, ok := r.(Named); ok {
		return n.Name()
	}
	return "custom"
}

// New builds the responder selected by cfg.Responder.
func New(cfg *config.Config) Responder {
	if cfg.Responder == config.ResponderRules {
		return NewRuleResponder()
	}
	return NewGenerativeResponder(GenerativeConfig{
		APIKey:      cfg.GoogleAPIKey,
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
	})
}
