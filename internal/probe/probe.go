// Package probe implements the engine's reachability oracle over HTTP.
package probe

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/berlinonline/mqa/internal/mqa/indicator"
)

// DefaultTimeout bounds a single probe when the caller gives none.
const DefaultTimeout = 5 * time.Second

// HTTP probes URLs with HEAD requests. A URL counts as reachable when it
// answers with a status below 400 within the timeout. One attempt per
// URL; retrying is the caller's business.
type HTTP struct {
	client *resty.Client
}

// NewHTTP returns a prober that follows up to five redirects.
func NewHTTP() *HTTP {
	client := resty.New().
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", "mqa-probe/1.0")
	return &HTTP{client: client}
}

// Check implements indicator.Prober. It never returns a Go error: probe
// failures come back as a ProbeResult with the reason in Err.
func (p *HTTP) Check(ctx context.Context, rawURL string, timeout time.Duration) indicator.ProbeResult {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.R().SetContext(ctx).Head(rawURL)
	if err != nil {
		return indicator.ProbeResult{Err: err.Error()}
	}
	status := resp.StatusCode()
	return indicator.ProbeResult{Reachable: status < 400, Status: status}
}
