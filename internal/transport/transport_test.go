package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/quillworks/aigate/providers/ai"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newExecutor(rt roundTripFunc, cfg Config) *Executor {
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = time.Millisecond
	}
	client := &http.Client{Transport: rt}
	return New(client, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func TestTransientFailuresThenSuccess(t *testing.T) {
	calls := 0
	exec := newExecutor(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls <= 2 {
			return nil, errors.New("connection refused")
		}
		return jsonResponse(200, `{"ok":true}`), nil
	}, Config{MaxAttempts: 5})

	body, err := exec.Post(context.Background(), ai.ProviderOpenAI, "http://example.test/v1/chat/completions", nil, map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("unexpected body %q", body)
	}
	if calls != 3 {
		t.Errorf("expected exactly 3 attempts (2 failures + 1 success), got %d", calls)
	}
}

func TestAlwaysFailingExhaustsAttempts(t *testing.T) {
	calls := 0
	exec := newExecutor(func(r *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("connection refused")
	}, Config{MaxAttempts: 3})

	_, err := exec.Post(context.Background(), ai.ProviderOpenAI, "http://example.test/", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !ai.IsKind(err, ai.KindRequest) {
		t.Errorf("expected request error kind, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", calls)
	}
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		kind   ai.ErrorKind
	}{
		{401, ai.KindAPIKey},
		{429, ai.KindQuotaExceeded},
		{404, ai.KindModelNotAvailable},
		{500, ai.KindRequest},
		{400, ai.KindRequest},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("status_%d", tc.status), func(t *testing.T) {
			calls := 0
			exec := newExecutor(func(r *http.Request) (*http.Response, error) {
				calls++
				return jsonResponse(tc.status, `{"error":"nope"}`), nil
			}, Config{MaxAttempts: 5})

			_, err := exec.Post(context.Background(), ai.ProviderOpenAI, "http://example.test/", nil, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !ai.IsKind(err, tc.kind) {
				t.Errorf("expected kind %s, got %v", tc.kind, err)
			}
			if calls != 1 {
				t.Errorf("received error responses must not be retried; transport invoked %d times", calls)
			}

			var aiErr *ai.Error
			if errors.As(err, &aiErr) {
				if aiErr.StatusCode != tc.status {
					t.Errorf("expected status %d recorded, got %d", tc.status, aiErr.StatusCode)
				}
				if aiErr.Retryable() {
					t.Error("a received error response must never be retryable")
				}
			}
		})
	}
}

func TestHeadersAndContentType(t *testing.T) {
	exec := newExecutor(func(r *http.Request) (*http.Response, error) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected JSON content type, got %q", got)
		}
		if got := r.Header.Get("x-api-key"); got != "secret" {
			t.Errorf("expected provider header to pass through, got %q", got)
		}
		return jsonResponse(200, `{}`), nil
	}, Config{})

	_, err := exec.Post(context.Background(), ai.ProviderAnthropic, "http://example.test/",
		[]ai.Header{{Key: "x-api-key", Value: "secret"}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCancelledContextAbandonsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	exec := newExecutor(func(r *http.Request) (*http.Response, error) {
		calls++
		cancel()
		return nil, errors.New("connection reset")
	}, Config{MaxAttempts: 5, InitialBackoff: time.Hour})

	start := time.Now()
	_, err := exec.Post(ctx, ai.ProviderOpenAI, "http://example.test/", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !ai.IsKind(err, ai.KindRequest) {
		t.Errorf("expected request error kind, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected abandonment after 1 attempt, got %d", calls)
	}
	if time.Since(start) > time.Second {
		t.Error("cancellation should end the call promptly, not wait out the backoff")
	}
}
