package dhl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPPoster is the production implementation of XMLPoster using net/http.
type HTTPPoster struct {
	url        string
	httpClient *http.Client
}

// HTTPPosterConfig holds configuration for the HTTP poster.
type HTTPPosterConfig struct {
	URL     string
	Timeout time.Duration
}

// NewHTTPPoster creates a new HTTP-based poster for production use.
func NewHTTPPoster(cfg HTTPPosterConfig) *HTTPPoster {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPPoster{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PostXML posts the document to the XML-PI servlet. The response body is
// returned even for non-2xx statuses so carrier error documents survive.
func (p *HTTPPoster) PostXML(ctx context.Context, body []byte) (*XMLResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &XMLResponse{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}

var _ XMLPoster = (*HTTPPoster)(nil)
