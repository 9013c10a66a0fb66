package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/noah-isme/adminui-api/internal/models"
)

// HTTPMemberSource downloads the members list with a single GET.
type HTTPMemberSource struct {
	url    string
	client *http.Client
}

// NewHTTPMemberSource builds a source for url. A nil client gets a default one
// bounded by timeout.
func NewHTTPMemberSource(url string, client *http.Client, timeout time.Duration) *HTTPMemberSource {
	if client == nil {
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPMemberSource{url: url, client: client}
}

// Name identifies the source in logs and metrics.
func (s *HTTPMemberSource) Name() string { return "http" }

// Fetch performs the GET and decodes the body. Non-2xx responses fail.
func (s *HTTPMemberSource) Fetch(ctx context.Context) ([]models.Member, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build members request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get %s: unexpected status %d", s.url, resp.StatusCode)
	}
	return decodeMembers(resp.Body)
}
