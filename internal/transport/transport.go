// Package transport performs the network round trip for the gateway. It owns
// the bounded exponential-backoff retry loop and the one-shot classification
// of HTTP error statuses. Only failures to complete a round trip at all
// (connection errors, attempt timeouts) are retried; any response the server
// actually returned is terminal.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/quillworks/aigate/internal/utils"
	"github.com/quillworks/aigate/providers/ai"
)

// Config holds the retry tuning parameters. Zero values are replaced with the
// defaults documented on each field.
type Config struct {
	// MaxAttempts is the total number of tries, first attempt included.
	// Default: 5.
	MaxAttempts int

	// AttemptTimeout bounds each individual round trip. Default: 60s.
	AttemptTimeout time.Duration

	// MaxElapsed bounds the cumulative time spent across attempts and
	// backoffs. Whichever of MaxAttempts and MaxElapsed is reached first ends
	// the loop. Default: 60s.
	MaxElapsed time.Duration

	// InitialBackoff is the wait before the second attempt. Default: 1s.
	InitialBackoff time.Duration

	// BackoffMultiplier is the exponential growth factor between attempts.
	// Default: 2.0.
	BackoffMultiplier float64

	// JitterFraction adds random noise in [0, JitterFraction*backoff] to each
	// backoff. Default: 0.1.
	JitterFraction float64
}

func (c *Config) applyDefaults() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
	if c.AttemptTimeout == 0 {
		c.AttemptTimeout = 60 * time.Second
	}
	if c.MaxElapsed == 0 {
		c.MaxElapsed = 60 * time.Second
	}
	if c.InitialBackoff == 0 {
		c.InitialBackoff = time.Second
	}
	if c.BackoffMultiplier == 0 {
		c.BackoffMultiplier = 2.0
	}
	if c.JitterFraction == 0 {
		c.JitterFraction = 0.1
	}
}

// Executor sends formatted requests. Safe for concurrent use.
type Executor struct {
	client *http.Client
	cfg    Config
	logger *slog.Logger
}

// New builds an executor around client. A nil client gets a fresh
// http.Client; cfg zero values take the package defaults.
func New(client *http.Client, cfg Config, logger *slog.Logger) *Executor {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.applyDefaults()
	return &Executor{client: client, cfg: cfg, logger: logger}
}

// Post marshals payload as JSON and POSTs it to url with the given headers,
// retrying transient round-trip failures within the configured bounds. On a
// received response the status is classified exactly once: 2xx returns the
// body, anything else returns the mapped *ai.Error without retrying.
func (e *Executor) Post(ctx context.Context, provider ai.Provider, url string, headers []ai.Header, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, ai.NewError(ai.KindRequest, provider, "marshal request body", err)
	}

	start := time.Now()
	var lastErr error

	for attempt := 1; attempt <= e.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			backoff := e.backoff(attempt - 2)
			select {
			case <-ctx.Done():
				return nil, ai.NewError(ai.KindRequest, provider, "request abandoned", context.Cause(ctx))
			case <-time.After(backoff):
			}
			if time.Since(start) > e.cfg.MaxElapsed {
				break
			}
		}

		respBody, aiErr, transient := e.attempt(ctx, provider, url, headers, body)
		if transient == nil && aiErr == nil {
			return respBody, nil
		}
		if aiErr != nil {
			// The server answered; classification is final.
			return nil, aiErr
		}

		lastErr = transient
		e.logger.Debug("attempt failed",
			"provider", provider, "url", url, "attempt", attempt, "error", transient)

		// A canceled caller context is not transient.
		if ctx.Err() != nil {
			return nil, ai.NewError(ai.KindRequest, provider, "request abandoned", context.Cause(ctx))
		}
	}

	return nil, ai.NewError(ai.KindRequest, provider,
		fmt.Sprintf("retries exhausted after %s", time.Since(start).Round(time.Millisecond)), lastErr)
}

// attempt performs one round trip. It returns exactly one of: a body (2xx), a
// classified *ai.Error (received non-2xx), or a transient error (no response).
func (e *Executor) attempt(ctx context.Context, provider ai.Provider, url string, headers []ai.Header, body []byte) ([]byte, *ai.Error, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	res, err := e.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			e.logger.Warn("failed to close response body", "url", url, "error", closeErr)
		}
	}()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, ai.ClassifyStatus(res.StatusCode, provider, utils.TruncateString(string(respBody), 500)), nil
	}

	return respBody, nil, nil
}

// backoff computes the wait before a retry (attempt is 0-indexed over
// retries): min(initial * multiplier^attempt, remaining budget) plus jitter.
func (e *Executor) backoff(attempt int) time.Duration {
	base := float64(e.cfg.InitialBackoff) * math.Pow(e.cfg.BackoffMultiplier, float64(attempt))
	if base > float64(e.cfg.MaxElapsed) {
		base = float64(e.cfg.MaxElapsed)
	}
	jitter := base * e.cfg.JitterFraction * rand.Float64() //nolint:gosec // non-cryptographic jitter is intentional
	return time.Duration(base + jitter)
}

// Close releases the underlying connection pool.
func (e *Executor) Close() {
	e.client.CloseIdleConnections()
}
