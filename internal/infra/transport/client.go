package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"moducare/config"
	deliverycontext "moducare/internal/delivery/context"
	"moducare/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Client is the shared JSON client for the moducare backend. Every request
// is stamped with the current header registry snapshot, so the session
// scheduler's Authorization header reaches all endpoints without them
// knowing about authentication.
type Client struct {
	baseURL    string
	httpClient *http.Client
	registry   service.HeaderRegistry
	logger     *slog.Logger
}

// StatusError reports a non-success HTTP status from the backend.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return "backend returned status " + http.StatusText(e.StatusCode)
}

// NewClient creates the backend client from configuration.
func NewClient(cfg *config.Config, registry service.HeaderRegistry, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		registry: registry,
		logger:   logger,
	}
}

// do issues one JSON request. body and out may be nil. extraHeaders override
// registry headers for this request only.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, extraHeaders map[string]string) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.WithStack(err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.WithStack(err)
	}

	for name, value := range c.registry.Headers() {
		req.Header.Set(name, value)
	}
	for name, value := range extraHeaders {
		req.Header.Set(name, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := deliverycontext.GetRequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	req.Header.Set(deliverycontext.HeaderXRequestID, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return errors.WithStack(&StatusError{StatusCode: resp.StatusCode, Body: string(raw)})
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode backend response")
	}

	return nil
}
