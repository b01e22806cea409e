package services

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vamap91/carglass-assistente/internal/models"
)

// Responder answers a free-text question for an identified customer.
// Implementations must return an error rather than a user-facing
// message when the upstream fails; the composer picks the canned
// fallback in that case.
type Responder interface {
	Answer(ctx context.Context, question string, client *models.ClientRecord) (string, error)
}

// OpenAIResponder delegates unmatched questions to the OpenAI chat
// completion API with the customer's record embedded in the system
// prompt.
type OpenAIResponder struct {
	client *openai.Client
	model  string
}

// NewOpenAIResponder creates a responder for the given API key and model.
func NewOpenAIResponder(apiKey, model string) *OpenAIResponder {
	return &OpenAIResponder{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Answer implements Responder.
func (r *OpenAIResponder) Answer(ctx context.Context, question string, client *models.ClientRecord) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(client)},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		MaxTokens:   150,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func systemPrompt(client *models.ClientRecord) string {
	name, status, serviceType := "Cliente", "N/A", "N/A"
	if client != nil {
		if client.Name != "" {
			name = client.Name
		}
		if client.Status != "" {
			status = client.Status
		}
		if client.ServiceType != "" {
			serviceType = client.ServiceType
		}
	}
	return fmt.Sprintf(
		"Você é Clara, assistente virtual da CarGlass. Cliente: %s\n"+
			"Status: %s\n"+
			"Serviço: %s\n\n"+
			"Seja simpática e objetiva. Central: %s",
		name, status, serviceType, centralPhone)
}
