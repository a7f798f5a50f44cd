package webprobe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Prober answers whether a submitted website responds over HTTP.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// NewProber builds a prober with its own bounded client.
func NewProber(timeout time.Duration) *Prober {
	return &Prober{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Check issues a HEAD request and falls back to GET for servers that reject
// HEAD. Any status below 500 counts as reachable.
func (p *Prober) Check(ctx context.Context, rawURL string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status, err := p.request(ctx, http.MethodHead, rawURL)
	if err != nil || status == http.StatusMethodNotAllowed {
		status, err = p.request(ctx, http.MethodGet, rawURL)
	}
	if err != nil {
		return fmt.Errorf("website unreachable: %w", err)
	}
	if status >= http.StatusInternalServerError {
		return fmt.Errorf("website returned status %d", status)
	}
	return nil
}

func (p *Prober) request(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
