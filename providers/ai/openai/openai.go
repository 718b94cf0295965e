// Package openai implements the OpenAI wire codec. The same codec also serves
// the local and custom providers, which speak an OpenAI-compatible protocol
// and differ only in base URL and authentication requirements.
package openai

import (
	"fmt"

	"github.com/quillworks/aigate/core/catalog"
	"github.com/quillworks/aigate/providers/ai"
)

// Codec translates canonical requests to and from the OpenAI wire format.
// Construct with New for the hosted API or NewCompatible for OpenAI-compatible
// endpoints; the zero value is not usable.
type Codec struct {
	provider ai.Provider
	baseURL  string
	catalog  *catalog.Catalog
}

// New returns the codec for the hosted OpenAI API.
func New(cat *catalog.Catalog) *Codec {
	return NewCompatible(ai.ProviderOpenAI, cat.BaseURL(ai.ProviderOpenAI), cat)
}

// NewCompatible returns a codec for an OpenAI-compatible endpoint under a
// different provider identity (local inference servers, custom gateways).
// Catalog lookups use the given provider so its own endpoint table applies.
func NewCompatible(provider ai.Provider, baseURL string, cat *catalog.Catalog) *Codec {
	return &Codec{provider: provider, baseURL: baseURL, catalog: cat}
}

// Endpoint implements [ai.Codec].
func (c *Codec) Endpoint(op ai.Operation, model string) (string, error) {
	entry, ok := c.catalog.Lookup(c.provider, op)
	if !ok || !entry.Supported() {
		return "", ai.NewError(ai.KindModelNotAvailable, c.provider,
			fmt.Sprintf("operation %q is not supported", op), nil)
	}
	if c.baseURL == "" {
		return "", ai.NewError(ai.KindRequest, c.provider, "no base URL configured", nil)
	}
	return c.baseURL + catalog.ExpandModel(entry.Endpoint, model), nil
}

// BuildHeaders implements [ai.Codec]. OpenAI authenticates with a Bearer
// token; an empty key yields no Authorization header, which local servers
// accept.
func (c *Codec) BuildHeaders(apiKey string) []ai.Header {
	if apiKey == "" {
		return nil
	}
	return []ai.Header{{Key: "Authorization", Value: "Bearer " + apiKey}}
}
