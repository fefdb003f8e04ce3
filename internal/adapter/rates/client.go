package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/domain/model"
)

// Client exposes the currency-rate source consumed per validation pass.
type Client interface {
	Fetch(ctx context.Context) (model.RateTable, error)
}

// HTTPClient implements Client against the rate source HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the JSON payload of the rate source.
type response struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// NewHTTPClient creates an HTTP rate client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse rates url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("rates url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch retrieves the current rate table. Callers hand the table to the
// validation pipeline; nothing is cached here so every pass prices against
// fresh quotes.
func (c *HTTPClient) Fetch(ctx context.Context) (model.RateTable, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/rates")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return model.RateTable{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.RateTable{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("rates request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return model.RateTable{}, fmt.Errorf("rates error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.RateTable{}, err
	}
	var data response
	if err := json.Unmarshal(body, &data); err != nil {
		return model.RateTable{}, err
	}
	if data.Base == "" {
		return model.RateTable{}, fmt.Errorf("rates response missing base currency")
	}

	return model.RateTable{Base: data.Base, Rates: data.Rates}, nil
}
