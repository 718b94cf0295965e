// Package anthropic implements the codec for Anthropic's Messages API.
// Anthropic serves chat and completion only; embedding and image lookups fail
// during model resolution before a codec is ever consulted.
package anthropic

import (
	"fmt"

	"github.com/quillworks/aigate/core/catalog"
	"github.com/quillworks/aigate/providers/ai"
)

// anthropicVersion is the required anthropic-version header value. Anthropic
// uses it to version-lock response formats independently of the URL.
const anthropicVersion = "2023-06-01"

// Codec translates canonical requests to and from the Anthropic Messages
// wire format.
type Codec struct {
	baseURL string
	catalog *catalog.Catalog
}

// New returns the Anthropic codec. An empty baseURL falls back to the
// catalog default.
func New(baseURL string, cat *catalog.Catalog) *Codec {
	if baseURL == "" {
		baseURL = cat.BaseURL(ai.ProviderAnthropic)
	}
	return &Codec{baseURL: baseURL, catalog: cat}
}

// Endpoint implements [ai.Codec].
func (c *Codec) Endpoint(op ai.Operation, model string) (string, error) {
	entry, ok := c.catalog.Lookup(ai.ProviderAnthropic, op)
	if !ok || !entry.Supported() {
		return "", ai.NewError(ai.KindModelNotAvailable, ai.ProviderAnthropic,
			fmt.Sprintf("operation %q is not supported", op), nil)
	}
	return c.baseURL + catalog.ExpandModel(entry.Endpoint, model), nil
}

// BuildHeaders implements [ai.Codec]. The credential travels in x-api-key
// (Anthropic does not use Bearer tokens) and anthropic-version pins the wire
// format.
func (c *Codec) BuildHeaders(apiKey string) []ai.Header {
	return []ai.Header{
		{Key: "x-api-key", Value: apiKey},
		{Key: "anthropic-version", Value: anthropicVersion},
	}
}
