// Package llm provides the OpenAI chat completion adapter.
// Adapter implementing ports.ChatService.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/docuchat/docuchat-go/internal/domain/entities"
	"github.com/docuchat/docuchat-go/internal/domain/ports"
)

// OpenAIChatAdapter implements ports.ChatService using the OpenAI streaming
// chat completions API. The credential arrives per call.
type OpenAIChatAdapter struct {
	baseURL string
}

// NewOpenAIChatAdapter creates a new chat adapter. An empty baseURL uses the
// OpenAI default endpoint.
func NewOpenAIChatAdapter(baseURL string) *OpenAIChatAdapter {
	return &OpenAIChatAdapter{baseURL: baseURL}
}

// StreamChat issues a streaming completion request and forwards incremental
// text fragments on the returned channel. End-of-stream yields a Done token;
// a mid-stream failure yields an Error token. The channel always closes, and
// the producer stops promptly when ctx is cancelled.
func (a *OpenAIChatAdapter) StreamChat(ctx context.Context, messages []entities.ChatMessage, model, apiKey string) (<-chan ports.StreamToken, error) {
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}

	reqMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		reqMessages[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	cfg := openai.DefaultConfig(apiKey)
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	stream, err := client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: reqMessages,
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating completion stream: %w", err)
	}

	ch := make(chan ports.StreamToken, 100)

	go func() {
		defer close(ch)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				select {
				case ch <- ports.StreamToken{Done: true}:
				case <-ctx.Done():
				}
				return
			}
			if err != nil {
				select {
				case ch <- ports.StreamToken{Done: true, Error: err}:
				case <-ctx.Done():
				}
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			delta := resp.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			select {
			case ch <- ports.StreamToken{Content: delta}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
