package guideline

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/leofalp/campaignlens/internal/utils"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the default User-Agent header value.
	DefaultUserAgent = "campaignlens-guideline/1.0"
	// MaxBodySize is the maximum response body size (10MB).
	MaxBodySize = 10 * 1024 * 1024
	// DialTimeout is the maximum time to wait for a TCP connection.
	DialTimeout = 10 * time.Second
)

// ErrEmptyURL is returned by [Fetch] for a blank URL.
var ErrEmptyURL = errors.New("guideline: URL cannot be empty")

// FetchOptions configures [Fetch].
type FetchOptions struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) func(*FetchOptions) {
	return func(o *FetchOptions) {
		o.HTTPClient = client
	}
}

// WithTimeout overrides [DefaultTimeout].
func WithTimeout(timeout time.Duration) func(*FetchOptions) {
	return func(o *FetchOptions) {
		o.Timeout = timeout
	}
}

// WithUserAgent overrides [DefaultUserAgent].
func WithUserAgent(userAgent string) func(*FetchOptions) {
	return func(o *FetchOptions) {
		o.UserAgent = userAgent
	}
}

// Fetch downloads the guideline page at rawURL and returns it prepared for
// analysis. Partial URLs such as "example.com/campaign" get an https://
// prefix. Bodies larger than [MaxBodySize] are rejected.
func Fetch(ctx context.Context, rawURL string, opts ...func(*FetchOptions)) (string, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return "", ErrEmptyURL
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	options := FetchOptions{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.HTTPClient == nil {
		options.HTTPClient = defaultClient(options.Timeout)
	}

	ctx, cancel := context.WithTimeout(ctx, options.Timeout)
	defer cancel()

	// One byte past the limit tells an oversized body apart from an exact fit.
	body, contentType, err := utils.DoGet(ctx, options.HTTPClient, url, options.UserAgent, MaxBodySize+1)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request timeout or canceled: %w", err)
		}
		return "", fmt.Errorf("failed to fetch guideline: %w", err)
	}
	if len(body) > MaxBodySize {
		return "", fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	if strings.Contains(strings.ToLower(contentType), "html") || IsHTML(body) {
		return FromHTML(body)
	}
	text := strings.TrimSpace(body)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func defaultClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects (>10)")
			}
			return nil
		},
	}
}
