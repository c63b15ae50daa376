package backend

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kapu/reeltalk-go/internal/constants"
	"github.com/kapu/reeltalk-go/pkg/errors"
)

// Requester performs one logical API call, retries included.
type Requester interface {
	DoRequest(ctx context.Context, method, path string, params url.Values, reqBody any) ([]byte, error)
}

type ClientConfig struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	MaxAttempts   int
	BaseDelay     time.Duration
	Jitter        time.Duration
}

func (cfg ClientConfig) withDefaults() ClientConfig {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.APIConfig.DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.APIConfig.Timeout
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = constants.APIConfig.RatePerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = constants.APIConfig.Burst
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = constants.RetryConfig.MaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = constants.RetryConfig.BaseDelay
	}
	if cfg.Jitter < 0 {
		cfg.Jitter = 0
	}
	return cfg
}

// Client talks to the ReelTalk REST API.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *zap.Logger
}

func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	cfg = cfg.withDefaults()

	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		logger:  logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "reeltalk-api",
		MaxRequests: constants.CircuitBreakerConfig.HalfOpenRequests,
		Timeout:     constants.CircuitBreakerConfig.ResetTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= constants.CircuitBreakerConfig.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: countsAsSuccess,
	})

	return c
}

// countsAsSuccess keeps client-side mistakes (bad page, 404, 401) from
// tripping the breaker; only transport failures, 429 and 5xx do.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if stderrors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		return !apiErr.Retryable()
	}
	return false
}

func (c *Client) DoRequest(ctx context.Context, method, path string, params url.Values, reqBody any) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doWithRetry(ctx, method, path, params, reqBody)
	})
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("Circuit breaker is open", zap.String("path", path))
		return nil, errors.NewCircuitOpenError(map[string]any{
			"path": path,
		}).WithCause(err)
	}
	return body, err
}

// CircuitState reports the breaker state for diagnostics.
func (c *Client) CircuitState() string {
	return c.breaker.State().String()
}

func (c *Client) doWithRetry(ctx context.Context, method, path string, params url.Values, reqBody any) ([]byte, error) {
	reqURL := c.cfg.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var payload []byte
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return nil, errors.NewAPIError("failed to marshal request", 400, map[string]any{
				"url": reqURL,
			}).WithCause(err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.send(ctx, method, reqURL, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var apiErr *errors.APIError
		if stderrors.As(err, &apiErr) && !apiErr.Retryable() {
			return nil, err
		}

		if attempt < c.cfg.MaxAttempts-1 {
			delay := c.computeDelay(attempt)
			c.logger.Warn("Request failed, retrying",
				zap.String("url", reqURL),
				zap.Error(err),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			if err := sleepContext(ctx, delay); err != nil {
				return nil, err
			}
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("reeltalk request failed: %s", reqURL)
}

func (c *Client) send(ctx context.Context, method, reqURL string, payload []byte) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, errors.NewAPIError("failed to create request", 400, map[string]any{
			"url": reqURL,
		}).WithCause(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// Read body and close immediately (called in a loop)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errors.NewAPIError("Unauthorized", resp.StatusCode, map[string]any{
			"url": reqURL,
		})
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.NewAPIError("Rate limited", resp.StatusCode, map[string]any{
			"url": reqURL,
		})
	case resp.StatusCode >= 500:
		return nil, errors.NewAPIError(fmt.Sprintf("Server error: %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"url": reqURL,
		})
	case resp.StatusCode >= 400:
		return nil, errors.NewAPIError(fmt.Sprintf("Client error: %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"url":  reqURL,
			"body": string(body),
		})
	}

	return body, nil
}

func (c *Client) computeDelay(attempt int) time.Duration {
	base := c.cfg.BaseDelay * time.Duration(math.Pow(2, float64(attempt)))
	if c.cfg.Jitter <= 0 {
		return base
	}
	jitter := time.Duration(rand.Float64() * float64(c.cfg.Jitter))
	return base + jitter
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
