package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletion(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Hello there"}}]}`))
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL+"/", time.Second)
	text, err := c.ChatCompletion(context.Background(), ChatRequest{
		Model: "gpt-4o",
		Messages: []Message{
			{Role: "user", Content: []ContentPart{TextPart("hi"), ImagePart("data:image/png;base64,AAA")}},
		},
		MaxTokens:   1000,
		Temperature: 0.7,
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)
	assert.Equal(t, "gpt-4o", got["model"])
	assert.Equal(t, float64(1000), got["max_tokens"])

	msgs := got["messages"].([]interface{})
	parts := msgs[0].(map[string]interface{})["content"].([]interface{})
	assert.Equal(t, "image_url", parts[1].(map[string]interface{})["type"])
}

func TestChatCompletion_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	_, err := NewClient("key", srv.URL, time.Second).ChatCompletion(context.Background(), ChatRequest{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "OpenAI API error: 429", err.Error())
}

func TestChatCompletion_MissingKey(t *testing.T) {
	_, err := NewClient("", "", 0).ChatCompletion(context.Background(), ChatRequest{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestChatCompletion_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient("key", srv.URL, time.Second).ChatCompletion(context.Background(), ChatRequest{})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
