package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"chargerate/internal/models"
)

// A single bounded attempt per request; callers fall back rather than retry.
const requestTimeout = 2 * time.Second

// ExchangeClient fetches conversion quotes from the external exchange-rate
// provider.
type ExchangeClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewExchangeClient returns an HTTP client wrapper for the provider.
func NewExchangeClient(baseURL string, logger *zap.Logger) *ExchangeClient {
	return &ExchangeClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// Convert requests a conversion of amount from one currency to another. Any
// network failure, timeout or response without a numeric result field is
// reported as an error; the provider is then treated as unavailable.
func (c *ExchangeClient) Convert(ctx context.Context, from, to models.Currency, amount float64) (models.Quote, error) {
	query := url.Values{}
	query.Set("from", string(from))
	query.Set("to", string(to))
	query.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/convert?%s", c.baseURL, query.Encode()), nil)
	if err != nil {
		return models.Quote{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.logger.Warn("exchange provider returned non-success", zap.Int("status", resp.StatusCode))
		return models.Quote{}, fmt.Errorf("exchange provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Quote{}, err
	}

	result := gjson.GetBytes(body, "result")
	if !result.Exists() || result.Type != gjson.Number {
		return models.Quote{}, fmt.Errorf("exchange provider response has no result field")
	}

	return models.Quote{
		Rate: gjson.GetBytes(body, "info.rate").Float(),
		Raw:  body,
	}, nil
}
