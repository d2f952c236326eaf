package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIAdapter_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req.Model)
		assert.Equal(t, []string{"hello world"}, req.Input)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": []float32{0.1, 0.2, 0.3}},
			},
			"model": "text-embedding-3-small",
		})
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter(server.URL+"/v1", "")
	emb, err := adapter.Embed(context.Background(), "hello world", "sk-test")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, emb)
}

func TestOpenAIAdapter_MissingAPIKey(t *testing.T) {
	adapter := NewOpenAIAdapter("http://localhost:1", "")
	_, err := adapter.Embed(context.Background(), "text", "")
	assert.Error(t, err)
}

func TestOpenAIAdapter_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "invalid api key", "type": "invalid_request_error"},
		})
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter(server.URL+"/v1", "")
	_, err := adapter.Embed(context.Background(), "text", "sk-bad")
	assert.Error(t, err)
}

func TestOpenAIAdapter_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"data":   []map[string]interface{}{},
		})
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter(server.URL+"/v1", "")
	_, err := adapter.Embed(context.Background(), "text", "sk-test")
	assert.ErrorContains(t, err, "empty")
}

func TestOpenAIAdapter_DefaultModel(t *testing.T) {
	adapter := NewOpenAIAdapter("", "")
	assert.Equal(t, "text-embedding-3-small", adapter.model)
	assert.Empty(t, adapter.baseURL)
}
