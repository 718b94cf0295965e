// Package gateway is the public surface of aigate: one Client that gives
// callers a canonical generate/chat/embedding/image API over OpenAI,
// Anthropic, Google, local inference servers, and custom OpenAI-compatible
// endpoints. The Client resolves models, paces requests per provider,
// formats and parses wire payloads through per-provider codecs, retries
// transient transport failures, and keeps a token/cost ledger — callers never
// see which provider is active.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quillworks/aigate/core/catalog"
	"github.com/quillworks/aigate/core/config"
	"github.com/quillworks/aigate/core/credentials"
	"github.com/quillworks/aigate/core/ratelimit"
	"github.com/quillworks/aigate/core/usage"
	"github.com/quillworks/aigate/internal/transport"
	"github.com/quillworks/aigate/providers/ai"
	"github.com/quillworks/aigate/providers/ai/anthropic"
	"github.com/quillworks/aigate/providers/ai/google"
	"github.com/quillworks/aigate/providers/ai/local"
	"github.com/quillworks/aigate/providers/ai/openai"
)

// Client is the gateway facade.
//
// Thread safety: Client is safe for concurrent use. Multiple requests may be
// in flight at once; only the per-provider rate limiter and the network round
// trip suspend a caller, and neither blocks requests to other providers.
type Client struct {
	mu       sync.RWMutex // guards provider
	provider ai.Provider

	cfg     *config.Config
	catalog *catalog.Catalog
	creds   *credentials.Store
	limiter *ratelimit.Limiter
	tracker *usage.Tracker
	exec    *transport.Executor
	codecs  map[ai.Provider]ai.Codec
	logger  *slog.Logger
}

// New builds a Client. With no options it uses the stock catalog, an
// unbacked default configuration, environment credentials, and the "openai"
// provider.
func New(opts ...Option) (*Client, error) {
	s := &settings{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	cfg := s.cfg
	if cfg == nil && s.configPath != "" {
		loaded, err := config.Load(s.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cfg == nil {
		cfg = config.Default()
	}

	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}

	provider := cfg.Provider()
	if s.provider != "" {
		provider = s.provider
	}
	if !provider.Valid() {
		return nil, ai.NewError(ai.KindService, provider, "unknown provider", nil)
	}

	cat := catalog.Default()
	creds := credentials.New(cfg, logger)
	for p, key := range s.apiKeys {
		creds.Set(p, key)
	}

	rates := make(map[ai.Provider]float64)
	for _, p := range ai.Providers() {
		if r, ok := cfg.RateLimit(p); ok {
			rates[p] = r
		}
	}

	c := &Client{
		provider: provider,
		cfg:      cfg,
		catalog:  cat,
		creds:    creds,
		limiter:  ratelimit.New(rates),
		tracker:  usage.New(),
		exec:     transport.New(s.httpClient, s.retry, logger),
		logger:   logger,
	}
	c.codecs = map[ai.Provider]ai.Codec{
		ai.ProviderOpenAI:    openai.NewCompatible(ai.ProviderOpenAI, c.baseURL(ai.ProviderOpenAI), cat),
		ai.ProviderAnthropic: anthropic.New(c.baseURL(ai.ProviderAnthropic), cat),
		ai.ProviderGoogle:    google.New(c.baseURL(ai.ProviderGoogle), cat),
		ai.ProviderLocal:     local.New(c.baseURL(ai.ProviderLocal), cat),
		ai.ProviderCustom:    openai.NewCompatible(ai.ProviderCustom, c.baseURL(ai.ProviderCustom), cat),
	}
	return c, nil
}

// baseURL resolves a provider's endpoint base: configuration override first,
// catalog default otherwise.
func (c *Client) baseURL(p ai.Provider) string {
	if url := c.cfg.BaseURL(p); url != "" {
		return url
	}
	return c.catalog.BaseURL(p)
}

// Provider returns the active provider.
func (c *Client) Provider() ai.Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.provider
}

// codec returns the strategy for a provider. Unknown providers get the
// OpenAI-shaped custom codec so OpenAI-compatible endpoints keep working by
// default instead of failing.
func (c *Client) codec(p ai.Provider) ai.Codec {
	if codec, ok := c.codecs[p]; ok {
		return codec
	}
	return c.codecs[ai.ProviderCustom]
}

// resolveModel applies the model precedence: explicit request override, then
// the configured ai.models.{provider}.{operation} entry, then the catalog
// default.
func (c *Client) resolveModel(p ai.Provider, req ai.Request) (string, error) {
	if req.Model != "" {
		return req.Model, nil
	}
	if m := c.cfg.Model(p, req.Operation); m != "" {
		return m, nil
	}
	if m := c.catalog.DefaultModel(p, req.Operation); m != "" {
		return m, nil
	}
	return "", ai.NewError(ai.KindModelNotAvailable, p,
		fmt.Sprintf("no model available for operation %q", req.Operation), nil)
}

// do runs one canonical request through the full pipeline: resolve, rate
// limit, credentials, format, execute, parse, record.
func (c *Client) do(ctx context.Context, req ai.Request) (*ai.Response, error) {
	ctx = ensureRequestID(ctx)
	provider := c.Provider()
	start := time.Now()

	model, err := c.resolveModel(provider, req)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx, provider); err != nil {
		return nil, ai.NewError(ai.KindRequest, provider, "request abandoned while rate limited", err)
	}

	apiKey, err := c.resolveKey(provider)
	if err != nil {
		return nil, err
	}

	codec := c.codec(provider)

	url, err := codec.Endpoint(req.Operation, model)
	if err != nil {
		return nil, err
	}

	normalized := req.Normalize()
	payload, err := codec.FormatRequest(req.Operation, model, normalized)
	if err != nil {
		return nil, err
	}

	body, err := c.exec.Post(ctx, provider, url, codec.BuildHeaders(apiKey), payload)
	if err != nil {
		c.logger.Warn("request failed",
			"request_id", RequestIDFromContext(ctx),
			"provider", provider, "model", model, "operation", req.Operation,
			"duration", time.Since(start), "error", err)
		return nil, err
	}

	resp, err := codec.ParseResponse(req.Operation, body)
	if err != nil {
		return nil, err
	}

	c.tracker.Record(provider, model, resp.Usage)

	c.logger.Debug("request completed",
		"request_id", RequestIDFromContext(ctx),
		"provider", provider, "model", model, "operation", req.Operation,
		"duration", time.Since(start), "total_tokens", resp.Usage.TotalTokens)

	return resp, nil
}

// resolveKey fetches the provider credential. Local servers typically run
// unauthenticated, so a missing key is only fatal for the hosted providers.
func (c *Client) resolveKey(provider ai.Provider) (string, error) {
	if provider == ai.ProviderLocal {
		return c.creds.Lookup(provider), nil
	}
	return c.creds.Resolve(provider)
}

// Close releases the transport's underlying connection pool. The Client must
// not be used afterwards.
func (c *Client) Close() {
	c.exec.Close()
}
