package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/boostlane/panel/internal/domain/model"
)

// ErrOrderRejected indicates the provider refused the order permanently.
var ErrOrderRejected = errors.New("order rejected by provider")

// TooManyRequestsError represents a rate limiting signal from the provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client places orders with the upstream SMM provider.
type Client interface {
	Place(ctx context.Context, order model.Order) (string, error)
}

// HTTPClient implements Client via the provider HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// request mirrors the JSON payload the provider expects per order.
type request struct {
	Service  int64  `json:"service"`
	Link     string `json:"link"`
	Quantity int    `json:"quantity"`
}

// response mirrors the provider's order placement reply.
type response struct {
	Order string `json:"order"`
}

// NewHTTPClient creates an HTTP provider client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse provider url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("provider url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Place submits one order and returns the provider-side order id.
func (c *HTTPClient) Place(ctx context.Context, order model.Order) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/orders")

	payload, err := json.Marshal(request{Service: order.ServiceID, Link: order.Link, Quantity: order.Quantity})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return "", err
		}
		if data.Order == "" {
			return "", fmt.Errorf("provider response missing order id")
		}
		return data.Order, nil
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return "", ErrOrderRejected
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return "", TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("provider request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("provider error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
