package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantpulse/option-snapshot/src/utils"
)

func newTestResolver(serverURL string) *SearchResolver {
	resolver := NewSearchResolver(utils.NewClient(5*time.Second, 1000, utils.APIHeaders()))
	resolver.URL = serverURL

	return resolver
}

func TestNormalizeSearchText(t *testing.T) {
	assert.Equal(t, "nifty24350ce26jan26", normalizeSearchText("NIFTY 24350 CE 26 JAN 26"))
	assert.Equal(t, "abc123", normalizeSearchText("a-b/c 1.2.3!"))
	assert.Equal(t, "", normalizeSearchText("  --  "))
}

func TestScoreCandidate(t *testing.T) {
	queryNorm := normalizeSearchText("NIFTY 24350 CE 26 JAN 26")

	t.Run("substring match scores highest", func(t *testing.T) {
		assert.Equal(t, 120, scoreCandidate(queryNorm, "nifty-24350-ce-26-jan-26 Nifty 24350 Call"))
	})

	t.Run("call keyword bonus for call queries", func(t *testing.T) {
		assert.Equal(t, 20, scoreCandidate(queryNorm, "Nifty 25000 Call"))
	})

	t.Run("put keyword does not score for call queries", func(t *testing.T) {
		assert.Equal(t, 0, scoreCandidate(queryNorm, "Nifty 25000 Put"))
	})

	t.Run("put bonus is symmetric", func(t *testing.T) {
		putNorm := normalizeSearchText("NIFTY 24350 PE 26 JAN 26")
		assert.Equal(t, 20, scoreCandidate(putNorm, "Nifty 25000 Put"))
	})
}

func TestResolve(t *testing.T) {
	t.Run("picks the highest scoring candidate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "NIFTY 24350 CE 26 JAN 26", r.URL.Query().Get("query"))

			w.Write([]byte(`{"data":{"content":[
				{"id":"id-put","search_id":"nifty-24350-pe","title":"Nifty 24350 Put"},
				{"id":"id-call","search_id":"nifty-24350-ce-26-jan-26","title":"Nifty 24350 Call"}
			]}}`))
		}))
		defer server.Close()

		venue, err := newTestResolver(server.URL).Resolve(context.Background(), "NIFTY 24350 CE 26 JAN 26")
		require.NoError(t, err)
		require.NotNil(t, venue)

		assert.Equal(t, "id-call", venue.ID)
		assert.Equal(t, "Nifty 24350 Call", venue.Title)
	})

	t.Run("tie is broken by first-seen order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"content":[
				{"id":"first","search_id":"reliance","title":"Reliance Industries"},
				{"id":"second","search_id":"reliance-power","title":"Reliance Power"}
			]}}`))
		}))
		defer server.Close()

		venue, err := newTestResolver(server.URL).Resolve(context.Background(), "TATA")
		require.NoError(t, err)
		require.NotNil(t, venue)

		assert.Equal(t, "first", venue.ID)
	})

	t.Run("empty result set resolves to absent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"content":[]}}`))
		}))
		defer server.Close()

		venue, err := newTestResolver(server.URL).Resolve(context.Background(), "NIFTY 24350 CE 26 JAN 26")
		require.NoError(t, err)

		assert.Nil(t, venue)
	})

	t.Run("transport failure is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := newTestResolver(server.URL).Resolve(context.Background(), "NIFTY 24350 CE 26 JAN 26")
		assert.Error(t, err)
	})
}
