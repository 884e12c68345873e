package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algotutor-core/server/internal/agent/model"
	errx "github.com/algotutor-core/server/internal/core/error"
)

func TestAvailable(t *testing.T) {
	assert.False(t, New(model.SearchConfig{}).Available())
	assert.True(t, New(model.SearchConfig{APIKey: "key"}).Available())

	var nilClient *Client
	assert.False(t, nilClient.Available())
}

func TestSearchWithoutKeyReportsUnavailable(t *testing.T) {
	c := New(model.SearchConfig{})
	_, err := c.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.KindConfigUnavailable))
}

func TestSearchSendsTokenAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-token", r.Header.Get("X-Subscription-Token"))
		assert.Equal(t, "merge sort", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("count"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"web":{"results":[
			{"title":"Merge sort","description":"A stable divide and conquer sort."},
			{"title":"Sorting algorithms","description":"Overview of common sorts."}
		]}}`))
	}))
	defer srv.Close()

	c := New(model.SearchConfig{APIKey: "secret-token", Endpoint: srv.URL, MaxResults: 3})
	results, err := c.Search(context.Background(), "merge sort")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Merge sort", results[0].Title)
	assert.Equal(t, "A stable divide and conquer sort.", results[0].Description)
}

func TestSearchNon200IsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(model.SearchConfig{APIKey: "key", Endpoint: srv.URL})
	_, err := c.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.KindProviderError))
}

func TestSearchTimeoutMapsToTimeoutKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(model.SearchConfig{APIKey: "key", Endpoint: srv.URL})
	c.httpc.Timeout = 20 * time.Millisecond

	_, err := c.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.KindProviderTimeout))
}

func TestSearchMalformedBodyIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(model.SearchConfig{APIKey: "key", Endpoint: srv.URL})
	_, err := c.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.KindProviderError))
}
