package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompleteSendsUserMessage(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`))
	}))
	defer srv.Close()

	c := NewChatClient(ClientConfig{BaseURL: srv.URL, APIKey: "sk-test", Model: "gpt-4o-mini"})
	answer, err := c.Complete(context.Background(), "say hello")
	require.NoError(t, err)

	assert.Equal(t, "hello there", answer)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])

	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "say hello", msg["content"])
}

func TestChatCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewChatClient(ClientConfig{BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion failed")
}

func TestChatCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewChatClient(ClientConfig{BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "hi")
	assert.Error(t, err)
}

func TestImageGenerateFetchesURL(t *testing.T) {
	imageBytes := []byte{0x89, 'P', 'N', 'G'}
	var gotBody map[string]any

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/images/generations", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": srv.URL + "/generated.png"}},
		})
	})
	mux.HandleFunc("/generated.png", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(imageBytes)
	})

	c := NewImageClient(ClientConfig{BaseURL: srv.URL, APIKey: "sk-test"})
	img, err := c.Generate(context.Background(), "a widget on a white background")
	require.NoError(t, err)

	assert.Equal(t, imageBytes, img)
	assert.Equal(t, "dall-e-3", gotBody["model"])
	assert.Equal(t, float64(1), gotBody["n"])
	assert.Equal(t, "1024x1024", gotBody["size"])
	assert.Equal(t, "standard", gotBody["quality"])
	assert.Equal(t, "url", gotBody["response_format"])
}

func TestImageGenerateNoURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewImageClient(ClientConfig{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no url")
}

func TestImageGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewImageClient(ClientConfig{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image generation failed")
}
