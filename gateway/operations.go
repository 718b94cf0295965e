package gateway

import (
	"context"

	"github.com/quillworks/aigate/core/usage"
	"github.com/quillworks/aigate/providers/ai"
)

// GenerateText generates a completion for a bare prompt and returns the text.
func (c *Client) GenerateText(ctx context.Context, prompt string, opts ...ai.RequestOption) (string, error) {
	req := ai.Request{Operation: ai.OpCompletion, Prompt: prompt}
	applyOptions(&req, opts)

	resp, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// ChatCompletion sends an ordered conversation and returns the assistant's
// reply text.
func (c *Client) ChatCompletion(ctx context.Context, messages []ai.Message, opts ...ai.RequestOption) (string, error) {
	req := ai.Request{Operation: ai.OpChat, Messages: messages}
	applyOptions(&req, opts)

	resp, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// GenerateEmbedding returns the embedding vector for text.
func (c *Client) GenerateEmbedding(ctx context.Context, text string, opts ...ai.RequestOption) ([]float64, error) {
	req := ai.Request{Operation: ai.OpEmbedding, Input: text}
	applyOptions(&req, opts)

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Embedding, nil
}

// GenerateImage generates images for a prompt and returns them as URLs or
// base64 payloads depending on the provider and response format.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...ai.RequestOption) ([]string, error) {
	req := ai.Request{Operation: ai.OpImage, Prompt: prompt}
	applyOptions(&req, opts)

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Images, nil
}

func applyOptions(req *ai.Request, opts []ai.RequestOption) {
	for _, opt := range opts {
		opt(req)
	}
}

// SetProvider switches the active provider for subsequent calls. In-flight
// calls keep the provider they started with.
func (c *Client) SetProvider(p ai.Provider) error {
	if !p.Valid() {
		return ai.NewError(ai.KindService, p, "unknown provider", nil)
	}
	c.mu.Lock()
	c.provider = p
	c.mu.Unlock()

	c.cfg.SetProvider(p)
	if err := c.cfg.Save(); err != nil {
		c.logger.Warn("failed to persist provider", "provider", p, "error", err)
	}
	return nil
}

// SetAPIKey replaces a provider's credential and persists it to the
// configuration. Persistence failures are logged, not returned.
func (c *Client) SetAPIKey(p ai.Provider, key string) {
	c.creds.Set(p, key)
}

// Model reports which model the active provider would use for an operation
// right now, applying the configured-override-then-default precedence.
func (c *Client) Model(op ai.Operation) (string, error) {
	return c.resolveModel(c.Provider(), ai.Request{Operation: op})
}

// SetModel configures the model the active provider uses for an operation
// and persists the change.
func (c *Client) SetModel(op ai.Operation, model string) {
	p := c.Provider()
	c.cfg.SetModel(p, op, model)
	if err := c.cfg.Save(); err != nil {
		c.logger.Warn("failed to persist model", "provider", p, "operation", op, "error", err)
	}
}

// UsageStatistics returns a snapshot of the cumulative token, request, and
// cost ledger.
func (c *Client) UsageStatistics() usage.Snapshot {
	return c.tracker.Snapshot()
}

// ResetUsageStatistics zeroes the ledger.
func (c *Client) ResetUsageStatistics() {
	c.tracker.Reset()
}
