package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/algotutor-core/server/internal/agent/model"
	errx "github.com/algotutor-core/server/internal/core/error"
	logx "github.com/algotutor-core/server/pkg/logger"
)

// Result is one ranked web search hit.
type Result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Client queries the Brave web search API. The zero-value client is not
// usable; construct with New. A client without an API key reports
// Available() == false so callers can degrade to a sentinel answer.
type Client struct {
	apiKey     string
	endpoint   string
	maxResults int
	httpc      *http.Client
}

func New(cfg model.SearchConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}
	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
		maxResults: maxResults,
		httpc:      &http.Client{Timeout: timeout},
	}
}

// Available reports whether the provider is configured.
func (c *Client) Available() bool {
	return c != nil && c.apiKey != ""
}

type braveResponse struct {
	Web struct {
		Results []Result `json:"results"`
	} `json:"web"`
}

// Search returns the top-ranked results for topic. Timeouts map to
// errx.KindProviderTimeout, other faults to errx.KindProviderError; the tool
// boundary turns both into text so a search can never hang or fail a turn.
func (c *Client) Search(ctx context.Context, topic string) ([]Result, error) {
	if !c.Available() {
		return nil, errx.NewKind(nil, errx.KindConfigUnavailable, http.StatusServiceUnavailable, "web search api key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, errx.NewKind(err, errx.KindProviderError, http.StatusBadGateway, "build web search request")
	}
	q := url.Values{}
	q.Set("q", topic)
	q.Set("count", strconv.Itoa(c.maxResults))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-Subscription-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			logx.Warn().Err(err).Str("topic", topic).Msg("web search timed out")
			return nil, errx.NewKind(err, errx.KindProviderTimeout, http.StatusGatewayTimeout, "web search timed out")
		}
		logx.Error().Err(err).Str("topic", topic).Msg("web search request failed")
		return nil, errx.NewKind(err, errx.KindProviderError, http.StatusBadGateway, "web search request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		logx.Error().Err(err).Str("topic", topic).Msg("web search provider error")
		return nil, errx.NewKind(err, errx.KindProviderError, http.StatusBadGateway, "web search provider error")
	}

	var body braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errx.NewKind(err, errx.KindProviderError, http.StatusBadGateway, "decode web search response")
	}
	return body.Web.Results, nil
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	for e := err; e != nil; {
		if t, ok := e.(timeouter); ok && t.Timeout() {
			return true
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		e = u.Unwrap()
	}
	return false
}
