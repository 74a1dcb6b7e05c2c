// REST CLIENT FOR A HOSTED (POSTGREST-STYLE) TRADES STORE
// RESTY ONLY + INTERNAL RETRY
package connectors

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

const (
	// Default retry configuration
	defaultRetryAttempts   = 5
	defaultRetryBaseDelay  = 500 * time.Millisecond
	defaultRetryMaxBackoff = 8 * time.Second
)

// HostedStoreClient persists trade batches to a hosted PostgREST-style API
// (Supabase and friends) instead of a directly-managed database. The journal
// treats it as an opaque sink: one bulk insert per reconciled batch.
type HostedStoreClient struct {
	apiKey  string
	baseURL string
	http    *resty.Client
}

func isRetryableResp(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}

	if r == nil {
		return false
	}

	code := r.StatusCode()

	if code >= 500 && code <= 599 {
		return true
	}
	if code == 429 {
		return true
	}
	if code == 408 {
		return true
	}
	return false
}

func NewHostedStoreClient(apiKey, baseURL string) *HostedStoreClient {
	retryCount := defaultRetryAttempts - 1

	if baseURL == "" {
		baseURL = "http://localhost:3000"
		logger.Warnf("No hosted store URL provided, using default: %s", baseURL)
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(retryCount).
		SetRetryWaitTime(defaultRetryBaseDelay).
		SetRetryMaxWaitTime(defaultRetryMaxBackoff).
		AddRetryCondition(isRetryableResp)

	return &HostedStoreClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    httpClient,
	}
}

// SaveTrades bulk-inserts a reconciled batch. PostgREST accepts a JSON array
// on the table endpoint; Prefer: return=minimal skips echoing rows back.
func (c *HostedStoreClient) SaveTrades(ctx context.Context, trades []model.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	logger.WithFields(map[string]interface{}{
		"connector": "HostedStoreClient",
		"op":        "SaveTrades",
		"trades":    len(trades),
	}).Debug("Pushing trade batch to hosted store")

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.apiKey).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal").
		SetBody(trades).
		Post("/rest/v1/trades")

	if err != nil {
		logger.WithField("connector", "HostedStoreClient").
			WithError(err).Error("Hosted store request failed")
		return err
	}

	if resp.StatusCode()/100 != 2 {
		err := fmt.Errorf("hosted store returned status %d: %s", resp.StatusCode(), resp.String())
		logger.WithField("connector", "HostedStoreClient").
			WithError(err).Error("Hosted store rejected trade batch")
		return err
	}

	logger.WithFields(map[string]interface{}{
		"connector": "HostedStoreClient",
		"op":        "SaveTrades",
		"trades":    len(trades),
		"status":    resp.StatusCode(),
	}).Info("Trade batch stored")

	return nil
}
