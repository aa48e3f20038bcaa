package responder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dom/taskchat-backend/internal/metrics"
	"github.com/sashabaranov/go-openai"
)

const (
	missingKeyReply = "AI service not available (missing API key)."
	errorReplyFmt   = "Sorry, I encountered an error: %v"
)

var errNoChoices = errors.New("model returned no choices")

type GenerativeConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
}

// GenerativeResponder asks a hosted model for the reply. Any failure
// (missing key, transport, provider error) becomes an apologetic reply
// carrying the error text.
type GenerativeResponder struct {
	client *openai.Client
	cfg    GenerativeConfig
}

func NewGenerativeResponder(cfg GenerativeConfig) *GenerativeResponder {
	r := &GenerativeResponder{cfg: cfg}
	if cfg.APIKey == "" {
		return r
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	r.client = openai.NewClientWithConfig(clientCfg)
	return r
}

func (r *GenerativeResponder) Name() string {
	return "generative"
}

func (r *GenerativeResponder) Respond(ctx context.Context, message string) string {
	if r.client == nil {
		log.Printf("WARN [responder.Generative] no API key configured")
		metrics.ResponderReplies.WithLabelValues(r.Name(), "degraded").Inc()
		return missingKeyReply
	}

	reply, err := r.complete(ctx, message)
	if err != nil {
		log.Printf("ERROR [responder.Generative] completion failed: %v", err)
		metrics.ResponderReplies.WithLabelValues(r.Name(), "degraded").Inc()
		return fmt.Sprintf(errorReplyFmt, err)
	}

	metrics.ResponderReplies.WithLabelValues(r.Name(), "ok").Inc()
	return reply
}

func (r *GenerativeResponder) complete(ctx context.Context, message string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: r.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: Prompt(message)},
		},
		Temperature: r.cfg.Temperature,
		MaxTokens:   r.cfg.MaxTokens,
	}

	resp, err := r.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// Prompt wraps the user's text in the assistant instructions.
func Prompt(message string) string {
	return fmt.Sprintf("You are a helpful assistant. User message: %s. Respond in a friendly way.", message)
}
