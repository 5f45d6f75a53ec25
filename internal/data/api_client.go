package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"parts-storefront/internal/config"
	"parts-storefront/internal/logger"

	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// ErrUpstream marks every failure to obtain a usable answer from the backend API:
// transport errors, non-2xx statuses and envelopes with success=false.
var ErrUpstream = errors.New("backend request failed")

// envelope is the common response wrapper of the backend API.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// APIClient performs read-only JSON requests against the backend REST API.
type APIClient struct {
	http    *resty.Client
	limiter ratelimit.Limiter
	log     logger.Logger
}

// NewAPIClient creates a client for the backend rooted at cfg.BaseURL + "/api/v1".
// No retries are configured: a failed call is reported to the caller at once.
func NewAPIClient(cfg config.BackendConfig, log logger.Logger) *APIClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL+"/api/v1").
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)

	limiter := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &APIClient{
		http:    client,
		limiter: limiter,
		log:     log,
	}
}

// Close releases the underlying HTTP resources.
func (c *APIClient) Close() error {
	return c.http.Close()
}

// Get performs a GET request and decodes the envelope's data field into out.
func (c *APIClient) Get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	c.limiter.Take()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: GET %s: request cancelled: %w", ErrUpstream, path, ctx.Err())
		}
		return fmt.Errorf("%w: GET %s: %w", ErrUpstream, path, err)
	}

	var env envelope
	if decodeErr := json.Unmarshal([]byte(resp.String()), &env); decodeErr != nil {
		if resp.IsError() {
			return fmt.Errorf("%w: GET %s: status %d", ErrUpstream, path, resp.StatusCode())
		}
		return fmt.Errorf("%w: GET %s: decode envelope: %w", ErrUpstream, path, decodeErr)
	}

	if resp.IsError() || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = "unsuccessful response"
		}
		return fmt.Errorf("%w: GET %s: status %d: %s", ErrUpstream, path, resp.StatusCode(), msg)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: GET %s: response has no data", ErrUpstream, path)
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: GET %s: decode data: %w", ErrUpstream, path, err)
	}
	c.log.Debug(fmt.Sprintf("backend GET %s -> %d", path, resp.StatusCode()))
	return nil
}
