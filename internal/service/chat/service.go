package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/openai"
)

// Completer is the completion endpoint the assistant forwards to.
type Completer interface {
	ChatCompletion(ctx context.Context, req openai.ChatRequest) (string, error)
}

type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

type service struct {
	client Completer
	opts   Options
}

func NewChatService(client Completer, opts Options) chat.Service {
	if opts.Model == "" {
		opts.Model = "gpt-4o"
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 1000
	}
	return &service{client: client, opts: opts}
}

func (s *service) Complete(ctx context.Context, req chat.Request) (chat.Response, error) {
	messages := buildMessages(req)
	slog.Info("Processing chat request", "messages", len(req.Messages), "files", len(req.Files))

	text, err := s.client.ChatCompletion(ctx, openai.ChatRequest{
		Model:       s.opts.Model,
		Messages:    messages,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return chat.Response{}, fmt.Errorf("chat completion failed: %w", err)
	}
	return chat.Response{GeneratedText: text}, nil
}

// buildMessages prepends the system prompt and turns image attachments into
// image_url parts. Request-level files belong to the last user message.
func buildMessages(req chat.Request) []openai.Message {
	lastUser := -1
	for i, m := range req.Messages {
		if m.Role == "user" {
			lastUser = i
		}
	}

	out := make([]openai.Message, 0, len(req.Messages)+1)
	out = append(out, openai.Message{Role: "system", Content: chat.SystemPrompt})
	for i, m := range req.Messages {
		files := m.Files
		if i == lastUser && len(req.Files) > 0 {
			files = append(append([]chat.File{}, files...), req.Files...)
		}

		var images []openai.ContentPart
		for _, f := range files {
			if f.IsImage() {
				images = append(images, openai.ImagePart(f.Data))
			}
		}
		if len(images) == 0 {
			out = append(out, openai.Message{Role: m.Role, Content: m.Content})
			continue
		}

		parts := append([]openai.ContentPart{openai.TextPart(m.Content)}, images...)
		out = append(out, openai.Message{Role: m.Role, Content: parts})
	}
	return out
}
