package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Config struct {
	Host      string `envconfig:"CURRENCY_API_HOST" default:"http://api.currencylayer.com"`
	AccessKey string `envconfig:"CURRENCY_API_KEY"`
	Base      string `envconfig:"CURRENCY_BASE" default:"USD"`
}

type Client struct {
	log    *zap.Logger
	client *http.Client
	cfg    Config
}

func NewClient(log *zap.Logger, cfg Config) *Client {
	return &Client{
		log:    log.Named("currency"),
		client: &http.Client{Timeout: time.Minute},
		cfg:    cfg,
	}
}

type quotesResponse struct {
	Success bool                       `json:"success"`
	Quotes  map[string]decimal.Decimal `json:"quotes"`
	Error   struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// GetQuotes fetches the live quote table for the requested currency.
// Keys are base+target code pairs, e.g. "USDEUR". No caching: every
// call hits the exchange API.
func (c *Client) GetQuotes(ctx context.Context, currency string) (map[string]decimal.Decimal, error) {
	v := url.Values{}
	v.Set("access_key", c.cfg.AccessKey)
	v.Set("source", c.cfg.Base)
	v.Set("currencies", currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/live?%s", c.cfg.Host, v.Encode()), http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "currency api")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("currency api: status %d", resp.StatusCode)
	}
	var qr quotesResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, errors.Wrap(err, "currency api decode")
	}
	if !qr.Success {
		return nil, errors.Errorf("currency api: %s", qr.Error.Info)
	}
	return qr.Quotes, nil
}
