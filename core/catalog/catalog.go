// Package catalog holds the static table of per-provider defaults: which
// model each operation uses when the caller configures nothing, and which
// endpoint path serves it. The catalog is built once at startup, passed by
// reference into the provider codecs, and never mutated at call time.
package catalog

import (
	"strings"

	"github.com/quillworks/aigate/providers/ai"
)

// Entry describes one (provider, operation) cell. A zero Entry (no default
// model and no endpoint) means the operation is unsupported for that provider;
// Anthropic has no embedding or image endpoint, for example.
type Entry struct {
	// DefaultModel is used when neither the call nor the configuration names
	// a model. Empty means no default exists.
	DefaultModel string

	// Endpoint is the URL path template for the operation, relative to the
	// provider's base URL. It may contain a {model} placeholder which is
	// substituted at formatting time; Google encodes the model in the path
	// rather than the body.
	Endpoint string
}

// Supported reports whether the provider serves this operation at all.
func (e Entry) Supported() bool {
	return e.Endpoint != ""
}

type key struct {
	provider  ai.Provider
	operation ai.Operation
}

// Catalog is the immutable lookup table. Construct with Default and share
// freely; all methods are safe for concurrent use.
type Catalog struct {
	entries  map[key]Entry
	baseURLs map[ai.Provider]string
}

// Base URLs for the hosted providers. Local points at an Ollama-style
// OpenAI-compatible server; custom has no default and must be configured.
const (
	openAIBaseURL    = "https://api.openai.com/v1"
	anthropicBaseURL = "https://api.anthropic.com/v1"
	googleBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	localBaseURL     = "http://localhost:11434/v1"
)

// Default builds the catalog with the stock model and endpoint table.
func Default() *Catalog {
	c := &Catalog{
		entries: make(map[key]Entry),
		baseURLs: map[ai.Provider]string{
			ai.ProviderOpenAI:    openAIBaseURL,
			ai.ProviderAnthropic: anthropicBaseURL,
			ai.ProviderGoogle:    googleBaseURL,
			ai.ProviderLocal:     localBaseURL,
		},
	}

	c.set(ai.ProviderOpenAI, ai.OpCompletion, "gpt-4o-mini", "/chat/completions")
	c.set(ai.ProviderOpenAI, ai.OpChat, "gpt-4o-mini", "/chat/completions")
	c.set(ai.ProviderOpenAI, ai.OpEmbedding, "text-embedding-3-small", "/embeddings")
	c.set(ai.ProviderOpenAI, ai.OpImage, "dall-e-3", "/images/generations")

	c.set(ai.ProviderAnthropic, ai.OpCompletion, "claude-3-5-sonnet-20241022", "/messages")
	c.set(ai.ProviderAnthropic, ai.OpChat, "claude-3-5-sonnet-20241022", "/messages")
	// Anthropic exposes no embedding or image endpoint: entries stay absent so
	// model resolution fails with a model-not-available error.

	c.set(ai.ProviderGoogle, ai.OpCompletion, "gemini-2.0-flash-lite", "/models/{model}:generateContent")
	c.set(ai.ProviderGoogle, ai.OpChat, "gemini-2.0-flash-lite", "/models/{model}:generateContent")
	c.set(ai.ProviderGoogle, ai.OpEmbedding, "text-embedding-004", "/models/{model}:embedContent")
	c.set(ai.ProviderGoogle, ai.OpImage, "imagen-3.0-generate-002", "/models/{model}:predict")

	c.set(ai.ProviderLocal, ai.OpCompletion, "llama3.2", "/chat/completions")
	c.set(ai.ProviderLocal, ai.OpChat, "llama3.2", "/chat/completions")
	c.set(ai.ProviderLocal, ai.OpEmbedding, "nomic-embed-text", "/embeddings")

	// Custom providers follow the OpenAI wire shape but carry no defaults;
	// the caller must configure both a base URL and a model.
	c.set(ai.ProviderCustom, ai.OpCompletion, "", "/chat/completions")
	c.set(ai.ProviderCustom, ai.OpChat, "", "/chat/completions")
	c.set(ai.ProviderCustom, ai.OpEmbedding, "", "/embeddings")
	c.set(ai.ProviderCustom, ai.OpImage, "", "/images/generations")

	return c
}

func (c *Catalog) set(p ai.Provider, op ai.Operation, model, endpoint string) {
	c.entries[key{p, op}] = Entry{DefaultModel: model, Endpoint: endpoint}
}

// Lookup returns the entry for (provider, operation). The second return is
// false when the combination is unsupported.
func (c *Catalog) Lookup(p ai.Provider, op ai.Operation) (Entry, bool) {
	e, ok := c.entries[key{p, op}]
	return e, ok
}

// DefaultModel returns the stock model for (provider, operation), or "" when
// none exists.
func (c *Catalog) DefaultModel(p ai.Provider, op ai.Operation) string {
	return c.entries[key{p, op}].DefaultModel
}

// BaseURL returns the provider's default base URL, or "" when the provider
// has none (custom).
func (c *Catalog) BaseURL(p ai.Provider) string {
	return c.baseURLs[p]
}

// ExpandModel substitutes the {model} placeholder in an endpoint template.
func ExpandModel(template, model string) string {
	return strings.ReplaceAll(template, "{model}", model)
}
