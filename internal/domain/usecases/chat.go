package usecases

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docuchat/docuchat-go/internal/domain/entities"
	"github.com/docuchat/docuchat-go/internal/domain/ports"
)

const (
	// genericSystemPrompt is used whenever no document context is available.
	genericSystemPrompt = "You are a helpful AI assistant."

	// groundedPromptTemplate takes the document name and the joined context
	// chunks. The refusal phrase is part of the instructions so the model has
	// a fixed answer for out-of-context questions.
	groundedPromptTemplate = `You are a helpful AI assistant. Answer questions based ONLY on the provided context from the document '%s'.

Context from document:
%s

Instructions:
- Only answer questions using information from the provided context
- If the question cannot be answered from the context, say "I cannot answer this question based on the provided document"
- Be accurate and cite specific information from the document when possible`
)

// ChatUseCase builds a system prompt - grounded in the active document when
// retrieval succeeds, generic otherwise - and streams a completion.
type ChatUseCase struct {
	retriever    *RetrieveUseCase
	llm          ports.ChatService
	registry     *DocumentRegistry
	topK         int
	defaultModel string
	logger       *zap.Logger
}

// NewChatUseCase creates a ChatUseCase with injected dependencies.
func NewChatUseCase(
	retriever *RetrieveUseCase,
	llm ports.ChatService,
	registry *DocumentRegistry,
	topK int,
	defaultModel string,
	logger *zap.Logger,
) *ChatUseCase {
	if topK <= 0 {
		topK = 3
	}
	if defaultModel == "" {
		defaultModel = "gpt-4o-mini"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatUseCase{
		retriever:    retriever,
		llm:          llm,
		registry:     registry,
		topK:         topK,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// Converse answers a chat turn as a stream of text fragments. The channel is
// finite and closes on completion. Failures before the stream starts return
// an error; once fragments are flowing, a mid-stream failure becomes one
// final human-readable "Error: ..." fragment so output already delivered to
// the caller is preserved.
func (uc *ChatUseCase) Converse(ctx context.Context, turn entities.ChatTurn) (<-chan string, error) {
	model := turn.Model
	if model == "" {
		model = uc.defaultModel
	}

	system := genericSystemPrompt
	if turn.UseRAG {
		if doc := uc.registry.Current(); doc != nil {
			chunks, err := uc.retriever.Retrieve(ctx, turn.UserMessage, uc.topK, turn.APIKey)
			switch {
			case err != nil:
				// Best-effort augmentation: fall back to ungrounded chat.
				uc.logger.Warn("retrieval failed, answering without document context",
					zap.String("document", doc.Name),
					zap.Error(err))
			case len(chunks) > 0:
				system = fmt.Sprintf(groundedPromptTemplate, doc.Name, strings.Join(chunks, "\n\n"))
			}
		}
	}

	messages := []entities.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: turn.UserMessage},
	}

	tokens, err := uc.llm.StreamChat(ctx, messages, model, turn.APIKey)
	if err != nil {
		return nil, fmt.Errorf("starting completion stream: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for token := range tokens {
			if token.Error != nil {
				uc.logger.Warn("completion stream interrupted", zap.Error(token.Error))
				select {
				case out <- "Error: " + token.Error.Error():
				case <-ctx.Done():
				}
				return
			}
			if token.Content != "" {
				select {
				case out <- token.Content:
				case <-ctx.Done():
					return
				}
			}
			if token.Done {
				return
			}
		}
	}()
	return out, nil
}
