// Package google implements the codec for the Google generative-language API.
// Google encodes the model in the URL path, so the endpoint template's
// {model} placeholder is substituted at formatting time.
package google

import (
	"fmt"

	"github.com/quillworks/aigate/core/catalog"
	"github.com/quillworks/aigate/providers/ai"
)

// Codec translates canonical requests to and from Google's generateContent,
// embedContent and predict wire formats.
type Codec struct {
	baseURL string
	catalog *catalog.Catalog
}

// New returns the Google codec. An empty baseURL falls back to the catalog
// default.
func New(baseURL string, cat *catalog.Catalog) *Codec {
	if baseURL == "" {
		baseURL = cat.BaseURL(ai.ProviderGoogle)
	}
	return &Codec{baseURL: baseURL, catalog: cat}
}

// Endpoint implements [ai.Codec].
func (c *Codec) Endpoint(op ai.Operation, model string) (string, error) {
	entry, ok := c.catalog.Lookup(ai.ProviderGoogle, op)
	if !ok || !entry.Supported() {
		return "", ai.NewError(ai.KindModelNotAvailable, ai.ProviderGoogle,
			fmt.Sprintf("operation %q is not supported", op), nil)
	}
	return c.baseURL + catalog.ExpandModel(entry.Endpoint, model), nil
}

// BuildHeaders implements [ai.Codec].
func (c *Codec) BuildHeaders(apiKey string) []ai.Header {
	if apiKey == "" {
		return nil
	}
	return []ai.Header{{Key: "Authorization", Value: "Bearer " + apiKey}}
}
