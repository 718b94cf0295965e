// Package local wires local OpenAI-compatible inference servers (Ollama,
// llama.cpp server, vLLM) into the gateway. The wire protocol is OpenAI's, so
// the codec is the OpenAI one under the local provider identity; only the
// base URL and the relaxed credential requirement differ.
package local

import (
	"github.com/quillworks/aigate/core/catalog"
	"github.com/quillworks/aigate/providers/ai"
	"github.com/quillworks/aigate/providers/ai/openai"
)

// New returns the codec for a local inference server. An empty baseURL falls
// back to the catalog default (an Ollama-style endpoint on localhost).
func New(baseURL string, cat *catalog.Catalog) ai.Codec {
	if baseURL == "" {
		baseURL = cat.BaseURL(ai.ProviderLocal)
	}
	return openai.NewCompatible(ai.ProviderLocal, baseURL, cat)
}
