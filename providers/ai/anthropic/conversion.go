package anthropic

import (
	"fmt"

	"github.com/quillworks/aigate/internal/utils"
	"github.com/quillworks/aigate/providers/ai"
)

/*
	##### WIRE TYPES #####
*/

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model string `json:"model"`
	// MaxTokens is required on every Messages request.
	MaxTokens     int                `json:"max_tokens"`
	Messages      []anthropicMessage `json:"messages"`
	Temperature   *float64           `json:"temperature,omitempty"`
	TopP          *float64           `json:"top_p,omitempty"`
	StopSequences []string           `json:"stop_sequences,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

/*
	##### CONVERSION #####
*/

// FormatRequest implements [ai.Codec]. Anthropic accepts only user and
// assistant roles in the message array, so system-role messages are dropped
// here; callers needing system behavior prepend it themselves.
func (c *Codec) FormatRequest(op ai.Operation, model string, req ai.Request) (any, error) {
	switch op {
	case ai.OpChat, ai.OpCompletion:
	default:
		return nil, ai.NewError(ai.KindModelNotAvailable, ai.ProviderAnthropic,
			fmt.Sprintf("operation %q is not supported", op), nil)
	}

	out := anthropicRequest{
		Model:         model,
		MaxTokens:     ai.DefaultMaxTokens,
		Temperature:   req.Temperature,
		TopP:          req.TopP,
		StopSequences: req.Stop,
	}
	if req.MaxTokens != nil {
		out.MaxTokens = *req.MaxTokens
	}

	for _, m := range req.Messages {
		switch m.Role {
		case ai.RoleUser, ai.RoleAssistant:
			out.Messages = append(out.Messages, anthropicMessage{Role: string(m.Role), Content: m.Content})
		}
	}

	return out, nil
}

// ParseResponse implements [ai.Codec]. Anthropic reports input and output
// tokens only; the total is computed as their sum, never read. Text blocks
// are concatenated in provider order.
func (c *Codec) ParseResponse(op ai.Operation, body []byte) (*ai.Response, error) {
	var resp anthropicResponse
	if err := utils.DecodeLoose(body, &resp); err != nil {
		return &ai.Response{Raw: string(body)}, nil
	}

	out := &ai.Response{
		FinishReason: resp.StopReason,
		Usage: ai.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}
	for _, block := range resp.Content {
		if block.Type == "" || block.Type == "text" {
			out.Text += block.Text
		}
	}
	return out, nil
}
