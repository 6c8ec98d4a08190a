package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	got   openai.ChatRequest
	reply string
	err   error
}

func (f *fakeCompleter) ChatCompletion(_ context.Context, req openai.ChatRequest) (string, error) {
	f.got = req
	return f.reply, f.err
}

func TestComplete_PrependsSystemPrompt(t *testing.T) {
	client := &fakeCompleter{reply: "Hi there"}
	svc := NewChatService(client, Options{Temperature: 0.7})

	resp, err := svc.Complete(context.Background(), chat.Request{
		Messages: []chat.Message{{Role: "user", Content: "Hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", resp.GeneratedText)

	assert.Equal(t, "gpt-4o", client.got.Model)
	assert.Equal(t, 1000, client.got.MaxTokens)
	assert.Equal(t, 0.7, client.got.Temperature)
	require.Len(t, client.got.Messages, 2)
	assert.Equal(t, "system", client.got.Messages[0].Role)
	assert.Equal(t, chat.SystemPrompt, client.got.Messages[0].Content)
	assert.Equal(t, "Hello", client.got.Messages[1].Content)
}

func TestComplete_ImagesBecomeParts(t *testing.T) {
	client := &fakeCompleter{reply: "A cat"}
	svc := NewChatService(client, Options{})

	_, err := svc.Complete(context.Background(), chat.Request{
		Messages: []chat.Message{
			{Role: "user", Content: "first"},
			{Role: "assistant", Content: "ok"},
			{Role: "user", Content: "What is this?"},
		},
		Files: []chat.File{
			{Name: "cat.png", Type: "image/png", Data: "data:image/png;base64,AAA"},
			{Name: "notes.txt", Type: "text/plain", Data: "data:text/plain;base64,BBB"},
		},
	})
	require.NoError(t, err)

	msgs := client.got.Messages
	require.Len(t, msgs, 4)
	assert.Equal(t, "first", msgs[1].Content)

	parts, ok := msgs[3].Content.([]openai.ContentPart)
	require.True(t, ok)
	require.Len(t, parts, 2)
	assert.Equal(t, openai.TextPart("What is this?"), parts[0])
	assert.Equal(t, "image_url", parts[1].Type)
	assert.Equal(t, "data:image/png;base64,AAA", parts[1].ImageURL.URL)
}

func TestComplete_UpstreamError(t *testing.T) {
	svc := NewChatService(&fakeCompleter{err: &openai.APIError{StatusCode: 429}}, Options{})

	_, err := svc.Complete(context.Background(), chat.Request{Messages: []chat.Message{{Role: "user", Content: "x"}}})
	require.Error(t, err)
	var apiErr *openai.APIError
	assert.True(t, errors.As(err, &apiErr))
}
