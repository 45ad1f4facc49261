package gemini_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mrmateussiilva/petstory/config"
	"github.com/mrmateussiilva/petstory/internal/clients/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(url string) *gemini.Client {
	return gemini.NewClient(config.Gemini{
		APIKey:      "test-key",
		APIURL:      url,
		Model:       "gemini-2.5-flash-image",
		Temperature: 0.4,
		Timeout:     time.Second,
	})
}

func TestGenerate_ReturnsInlineImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash-image:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "contents")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[
			{"text":"here you go"},
			{"inlineData":{"mimeType":"image/png","data":"` + base64.StdEncoding.EncodeToString([]byte("art")) + `"}}
		]}}]}`))
	}))
	defer server.Close()

	data, err := newClient(server.URL).Generate(context.Background(), []byte("photo"), gemini.StyleDirective)

	require.NoError(t, err)
	assert.Equal(t, []byte("art"), data)
}

func TestGenerate_NoImageInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"sorry"}]},"finishReason":"SAFETY"}]}`))
	}))
	defer server.Close()

	_, err := newClient(server.URL).Generate(context.Background(), []byte("photo"), gemini.StyleDirective)

	assert.ErrorContains(t, err, "SAFETY")
}

func TestGenerate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota"}}`))
	}))
	defer server.Close()

	_, err := newClient(server.URL).Generate(context.Background(), []byte("photo"), gemini.StyleDirective)

	assert.ErrorContains(t, err, "status 429")
}

func TestGenerate_MissingKey(t *testing.T) {
	client := gemini.NewClient(config.Gemini{})

	_, err := client.Generate(context.Background(), []byte("photo"), gemini.StyleDirective)

	assert.Error(t, err)
}
