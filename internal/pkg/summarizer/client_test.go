package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Run("returns the completion content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req completionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req.Model)
			require.Len(t, req.Messages, 1)
			assert.Contains(t, req.Messages[0].Content, "monthly report")

			json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"content": "Headcount grew by two."}},
				},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key", "test-model", 5*time.Second)
		summary, err := client.Summarize(context.Background(), "monthly report", map[string]int{"headcount": 42})
		require.NoError(t, err)
		assert.Equal(t, "Headcount grew by two.", summary)
	})

	t.Run("missing api key", func(t *testing.T) {
		client := NewClient("http://localhost", "", "test-model", time.Second)
		_, err := client.Summarize(context.Background(), "monthly report", nil)
		require.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key", "test-model", time.Second)
		_, err := client.Summarize(context.Background(), "monthly report", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key", "test-model", time.Second)
		_, err := client.Summarize(context.Background(), "monthly report", nil)
		require.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := NewClient(server.URL, "test-key", "test-model", time.Second)
		_, err := client.Summarize(ctx, "monthly report", nil)
		require.Error(t, err)
	})
}
