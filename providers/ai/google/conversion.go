package google

import (
	"fmt"

	"github.com/quillworks/aigate/internal/utils"
	"github.com/quillworks/aigate/providers/ai"
)

/*
	##### WIRE TYPES #####
*/

type part struct {
	Text string `json:"text,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
	StopSequences   []string `json:"stopSequences,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type embedRequest struct {
	Content content `json:"content"`
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount int `json:"sampleCount,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

type embedResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

/*
	##### CONVERSION #####
*/

// FormatRequest implements [ai.Codec]. Role mapping: user stays "user",
// assistant becomes "model", and system messages are carried as user turns
// since the contents array accepts no system role.
func (c *Codec) FormatRequest(op ai.Operation, model string, req ai.Request) (any, error) {
	switch op {
	case ai.OpChat, ai.OpCompletion:
		out := generateRequest{
			GenerationConfig: &generationConfig{
				Temperature:     req.Temperature,
				TopP:            req.TopP,
				MaxOutputTokens: req.MaxTokens,
				StopSequences:   req.Stop,
			},
		}
		for _, m := range req.Messages {
			role := "user"
			if m.Role == ai.RoleAssistant {
				role = "model"
			}
			out.Contents = append(out.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
		}
		return out, nil

	case ai.OpEmbedding:
		return embedRequest{Content: content{Parts: []part{{Text: req.Input}}}}, nil

	case ai.OpImage:
		return predictRequest{
			Instances:  []predictInstance{{Prompt: req.Prompt}},
			Parameters: predictParameters{SampleCount: req.N},
		}, nil
	}

	return nil, ai.NewError(ai.KindRequest, ai.ProviderGoogle, fmt.Sprintf("unknown operation %q", op), nil)
}

// ParseResponse implements [ai.Codec]. Image predictions are returned as
// inline base64 payloads, collected in provider order.
func (c *Codec) ParseResponse(op ai.Operation, body []byte) (*ai.Response, error) {
	switch op {
	case ai.OpChat, ai.OpCompletion:
		var resp generateResponse
		if err := utils.DecodeLoose(body, &resp); err != nil {
			return &ai.Response{Raw: string(body)}, nil
		}
		out := &ai.Response{Usage: ai.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}}
		if out.Usage.TotalTokens == 0 {
			out.Usage.TotalTokens = out.Usage.PromptTokens + out.Usage.CompletionTokens
		}
		if len(resp.Candidates) > 0 {
			cand := resp.Candidates[0]
			out.FinishReason = cand.FinishReason
			for _, p := range cand.Content.Parts {
				out.Text += p.Text
			}
		}
		return out, nil

	case ai.OpEmbedding:
		var resp embedResponse
		if err := utils.DecodeLoose(body, &resp); err != nil {
			return &ai.Response{Raw: string(body)}, nil
		}
		return &ai.Response{Embedding: resp.Embedding.Values}, nil

	case ai.OpImage:
		var resp predictResponse
		if err := utils.DecodeLoose(body, &resp); err != nil {
			return &ai.Response{Raw: string(body)}, nil
		}
		out := &ai.Response{}
		for _, p := range resp.Predictions {
			if p.BytesBase64Encoded != "" {
				out.Images = append(out.Images, p.BytesBase64Encoded)
			}
		}
		return out, nil
	}

	return nil, ai.NewError(ai.KindResponse, ai.ProviderGoogle, fmt.Sprintf("unknown operation %q", op), nil)
}
