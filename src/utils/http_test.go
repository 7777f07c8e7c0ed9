package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	t.Run("applies configured headers", func(t *testing.T) {
		var gotUA string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		client := NewClient(5*time.Second, 100, HTMLHeaders())

		body, err := client.Get(context.Background(), server.URL)
		require.NoError(t, err)

		assert.Equal(t, "ok", string(body))
		assert.Contains(t, gotUA, "Mozilla/5.0")
	})

	t.Run("error status is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer server.Close()

		client := NewClient(5*time.Second, 100, nil)

		_, err := client.Get(context.Background(), server.URL)
		assert.Error(t, err)
	})

	t.Run("post round trips json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"echo":"hi"}`))
		}))
		defer server.Close()

		client := NewClient(5*time.Second, 100, APIHeaders())

		var out struct {
			Echo string `json:"echo"`
		}

		err := client.PostJSON(context.Background(), server.URL, map[string]string{"msg": "hi"}, &out)
		require.NoError(t, err)

		assert.Equal(t, "hi", out.Echo)
	})

	t.Run("get json decodes body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"value": 42}`))
		}))
		defer server.Close()

		client := NewClient(5*time.Second, 100, nil)

		var out struct {
			Value int `json:"value"`
		}

		require.NoError(t, client.GetJSON(context.Background(), server.URL, &out))
		assert.Equal(t, 42, out.Value)
	})
}
