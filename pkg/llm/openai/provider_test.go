package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"student-coach-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(ts *httptest.Server) *OpenAIProvider {
	p := NewOpenAIProvider("test-key", "gpt-3.5-turbo")
	p.BaseURL = ts.URL
	return p
}

func completionBody(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"role": "assistant", "content": content}},
		},
	}
}

func TestChatSendsOptionsAndAuth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "gpt-3.5-turbo", payload["model"])
		assert.Equal(t, 0.5, payload["temperature"])
		assert.Equal(t, float64(700), payload["max_tokens"])
		format, ok := payload["response_format"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "json_object", format["type"])

		json.NewEncoder(w).Encode(completionBody(`{"student_overview_summary":"ok"}`))
	}))
	defer ts.Close()

	content, err := newTestProvider(ts).Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "hello"}},
		llm.WithTemperature(0.5), llm.WithMaxTokens(700), llm.WithJSONMode())
	require.NoError(t, err)
	assert.Equal(t, `{"student_overview_summary":"ok"}`, content)
}

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Messages, 2)
		assert.Equal(t, "assistant", payload.Messages[1].Role)
		json.NewEncoder(w).Encode(completionBody("ok"))
	}))
	defer ts.Close()

	_, err := newTestProvider(ts).Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "earlier reply"},
	})
	require.NoError(t, err)
}

func TestChatRetriesOnRateLimit(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(completionBody("recovered"))
	}))
	defer ts.Close()

	content, err := newTestProvider(ts).Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, "recovered", content)
	assert.Equal(t, 2, calls)
}

func TestChatDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := newTestProvider(ts).Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "hello"}})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestChatSurfacesAPIErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "model overloaded", "type": "server_error"},
		})
	}))
	defer ts.Close()

	_, err := newTestProvider(ts).Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "hello"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}
