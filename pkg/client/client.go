// Package client posts submissions to a running lead sink over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akeren/bizguard-leads/pkg/circuitbreaker"
	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
)

const (
	submitPath     = "/api/submit"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

type Config struct {
	// BaseURL is the sink's origin, e.g. http://localhost:8080.
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	// Breaker guards every call. Nil builds one with default thresholds
	// that only trips on transport errors and 5xx responses.
	Breaker circuitbreaker.CircuitBreaker
}

type Client struct {
	endpoint string
	http     *http.Client
	breaker  circuitbreaker.CircuitBreaker
}

// SubmitError is a non-success answer from the sink.
type SubmitError struct {
	StatusCode int
	Message    string
}

func (e *SubmitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("submit: sink answered %d", e.StatusCode)
	}
	return fmt.Sprintf("submit: sink answered %d: %s", e.StatusCode, e.Message)
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func New(cfg *Config) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("client: base URL is required")
	}

	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: base URL must be http or https, got %q", base.Scheme)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	breaker := cfg.Breaker
	if breaker == nil {
		breakerCfg := circuitbreaker.DefaultConfig()
		breakerCfg.IsFailure = IsSinkFailure
		breaker = circuitbreaker.NewCircuitBreaker(breakerCfg)
	}

	return &Client{
		endpoint: base.String() + submitPath,
		http:     httpClient,
		breaker:  breaker,
	}, nil
}

// Submit posts payload and returns nil only when the sink confirms the save.
func (c *Client) Submit(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("submit: encode payload: %w", err)
	}

	err = c.breaker.Call(func() error {
		return c.post(ctx, body)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return apperrors.NewSinkUnavailableError("lead sink is temporarily unavailable", err)
	}
	return err
}

// Ping reports the breaker, not the sink: it fails while the circuit is open
// and the recovery timeout has not passed.
func (c *Client) Ping(context.Context) error {
	m := c.breaker.Metrics()
	if m.State == circuitbreaker.Open && time.Now().Before(m.NextAttempt) {
		return apperrors.NewSinkUnavailableError("lead sink circuit is open", circuitbreaker.ErrCircuitOpen)
	}
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("submit: read response: %w", err)
	}

	var decoded submitResponse
	_ = json.Unmarshal(raw, &decoded)

	if resp.StatusCode != http.StatusOK {
		message := decoded.Error
		if message == "" {
			message = strings.TrimSpace(string(raw))
		}
		return &SubmitError{StatusCode: resp.StatusCode, Message: message}
	}

	if !decoded.Success {
		return &SubmitError{StatusCode: resp.StatusCode, Message: "sink did not confirm the submission"}
	}

	return nil
}

// IsSinkFailure reports whether err means the sink itself is unhealthy:
// transport errors and 5xx answers. Caller cancellation and 4xx do not count.
func IsSinkFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var submitErr *SubmitError
	if errors.As(err, &submitErr) {
		return submitErr.StatusCode >= http.StatusInternalServerError
	}

	return true
}
