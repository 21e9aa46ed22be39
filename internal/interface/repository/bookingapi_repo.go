package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"bookingflow-service/internal/domain/entity"
	"bookingflow-service/internal/domain/repository"
	"bookingflow-service/internal/infrastructure/config"
	"bookingflow-service/pkg/logger"
	"bookingflow-service/pkg/metrics"
)

// maxErrorBody bounds how much of an upstream error body is kept
const maxErrorBody = 512

// UpstreamError is a non-2xx response from the booking backend. 5xx
// responses are retryable, 4xx are terminal.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("booking backend returned status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Retryable() bool {
	return e.StatusCode >= 500
}

// BookingAPIClient talks to the opaque booking backend over HTTP JSON
type BookingAPIClient struct {
	logger         logger.Logger
	metrics        *metrics.Metrics
	baseURL        string
	securityHeader string
	maxRetries     int
	backoff        time.Duration
	client         *http.Client
}

// NewBookingAPIClient creates a new booking backend client
func NewBookingAPIClient(cfg *config.Config, log logger.Logger, m *metrics.Metrics) repository.BookingAPIRepository {
	return &BookingAPIClient{
		logger:         log,
		metrics:        m,
		baseURL:        cfg.APIBaseURL,
		securityHeader: cfg.SecurityHeader,
		maxRetries:     cfg.APIMaxRetries,
		backoff:        cfg.RetryBackoff,
		client:         &http.Client{Timeout: cfg.APITimeout},
	}
}

// PriceDetails fetches the pricing document for the given offers
func (c *BookingAPIClient) PriceDetails(ctx context.Context, offers []entity.OfferLeg, currency string, includeSeats bool) (interface{}, error) {
	offerRefs := make([]map[string]string, 0, len(offers))
	for _, offer := range offers {
		offerRefs = append(offerRefs, map[string]string{
			"journeyKey":    offer.JourneyKey,
			"fareKey":       offer.FareKey,
			"securityToken": offer.SecurityToken,
		})
	}
	body := map[string]interface{}{
		"offers":       offerRefs,
		"currency":     currency,
		"includeSeats": includeSeats,
	}

	var response interface{}
	if err := c.postJSON(ctx, "pricedetails", "/pricedetails", securityTokenOf(offers), body, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// SeatMap fetches the seat-map document for the given legs
func (c *BookingAPIClient) SeatMap(ctx context.Context, legs []entity.OfferLeg) (interface{}, error) {
	body := make([]map[string]string, 0, len(legs))
	for _, leg := range legs {
		body = append(body, map[string]string{
			"fareKey":    leg.FareKey,
			"journeyKey": leg.JourneyKey,
		})
	}

	var response interface{}
	if err := c.postJSON(ctx, "seat-map", "/seat-map", securityTokenOf(legs), body, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// SubmitHoldBooking submits the assembled booking payload
func (c *BookingAPIClient) SubmitHoldBooking(ctx context.Context, payload *entity.BookingPayload) (*entity.HoldBookingResponse, error) {
	var response entity.HoldBookingResponse
	if err := c.postJSON(ctx, "submit-hold-booking", "/submit-hold-booking", "", payload, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// postJSON posts the body and decodes a 2xx response into dest. Network
// failures and 5xx responses are retried up to maxRetries times with
// backoff; 4xx responses fail immediately with a truncated body.
func (c *BookingAPIClient) postJSON(ctx context.Context, operation, path, securityToken string, body interface{}, dest interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	url := c.baseURL + path
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if c.metrics != nil {
				c.metrics.BackendRetries.Inc()
			}
			c.logger.Warn("Retrying backend request", "operation", operation, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}

		lastErr = c.doOnce(ctx, operation, url, securityToken, jsonData, dest)
		if lastErr == nil {
			return nil
		}

		var upstream *UpstreamError
		if errors.As(lastErr, &upstream) && !upstream.Retryable() {
			return lastErr
		}
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}
	}
	return lastErr
}

func (c *BookingAPIClient) doOnce(ctx context.Context, operation, url, securityToken string, jsonData []byte, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if securityToken != "" {
		req.Header.Set(c.securityHeader, securityToken)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if c.metrics != nil {
		c.metrics.BackendDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.countRequest(operation, "network_error")
		return fmt.Errorf("failed to send %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.countRequest(operation, "upstream_error")
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		c.countRequest(operation, "decode_error")
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}

	c.countRequest(operation, "success")
	return nil
}

func (c *BookingAPIClient) countRequest(operation, outcome string) {
	if c.metrics != nil {
		c.metrics.BackendRequests.WithLabelValues(operation, outcome).Inc()
	}
}

// securityTokenOf returns the first non-empty security token among the legs
func securityTokenOf(legs []entity.OfferLeg) string {
	for _, leg := range legs {
		if leg.SecurityToken != "" {
			return leg.SecurityToken
		}
	}
	return ""
}
