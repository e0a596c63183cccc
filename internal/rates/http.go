package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"gstrecon/internal/domain"
)

// HTTPLookup queries a remote rate service with GET <baseURL>?keyword=<k>.
// Requests are throttled by a token bucket shared across callers.
type HTTPLookup struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPLookup creates an HTTPLookup allowing rps requests per second with
// the given burst.
func NewHTTPLookup(baseURL string, client *http.Client, rps float64, burst int) *HTTPLookup {
	if client == nil {
		client = http.DefaultClient
	}
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 1
	}
	return &HTTPLookup{
		baseURL: baseURL,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Lookup implements port.RateLookup.
func (h *HTTPLookup) Lookup(ctx context.Context, keyword string) (string, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rates.HTTPLookup: waiting for limiter: %w", err)
	}

	u, err := url.Parse(h.baseURL)
	if err != nil {
		return "", fmt.Errorf("rates.HTTPLookup: parsing base url: %w", err)
	}
	q := u.Query()
	q.Set("keyword", keyword)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("rates.HTTPLookup: building request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("rates.HTTPLookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return "", domain.ErrRateNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("rates.HTTPLookup: status %d: %s", resp.StatusCode, string(body))
	}

	var out commandOutput
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("rates.HTTPLookup: decoding response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("rates.HTTPLookup: %s", out.Error)
	}
	return rawRate(out.Rate)
}
