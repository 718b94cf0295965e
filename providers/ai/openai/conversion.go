package openai

import (
	"fmt"

	"github.com/quillworks/aigate/internal/utils"
	"github.com/quillworks/aigate/providers/ai"
)

/*
	##### WIRE TYPES #####
*/

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      *float64      `json:"temperature,omitempty"`
	MaxTokens        *int          `json:"max_tokens,omitempty"`
	TopP             *float64      `json:"top_p,omitempty"`
	FrequencyPenalty *float64      `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64      `json:"presence_penalty,omitempty"`
	Stop             []string      `json:"stop,omitempty"`
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n,omitempty"`
	Size           string `json:"size,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type wireUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		// Legacy completions carry the text at the choice level.
		Text         string `json:"text"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage wireUsage `json:"usage"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Usage wireUsage `json:"usage"`
}

type imageResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

/*
	##### CONVERSION #####
*/

// FormatRequest implements [ai.Codec]. The request is expected to be
// normalized; both chat and completion operations use the chat-completions
// payload since a bare prompt has already been lifted into a user message.
func (c *Codec) FormatRequest(op ai.Operation, model string, req ai.Request) (any, error) {
	switch op {
	case ai.OpChat, ai.OpCompletion:
		out := chatRequest{
			Model:            model,
			Messages:         make([]chatMessage, 0, len(req.Messages)),
			Temperature:      req.Temperature,
			MaxTokens:        req.MaxTokens,
			TopP:             req.TopP,
			FrequencyPenalty: req.FrequencyPenalty,
			PresencePenalty:  req.PresencePenalty,
			Stop:             req.Stop,
		}
		for _, m := range req.Messages {
			out.Messages = append(out.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
		}
		return out, nil

	case ai.OpEmbedding:
		return embeddingRequest{Model: model, Input: req.Input}, nil

	case ai.OpImage:
		return imageRequest{
			Model:          model,
			Prompt:         req.Prompt,
			N:              req.N,
			Size:           req.Size,
			ResponseFormat: req.ResponseFormat,
		}, nil
	}

	return nil, ai.NewError(ai.KindRequest, c.provider, fmt.Sprintf("unknown operation %q", op), nil)
}

// ParseResponse implements [ai.Codec]. Missing fields degrade to zero values;
// an undecodable body degrades to a Response carrying the raw text.
func (c *Codec) ParseResponse(op ai.Operation, body []byte) (*ai.Response, error) {
	switch op {
	case ai.OpChat, ai.OpCompletion:
		var resp chatResponse
		if err := utils.DecodeLoose(body, &resp); err != nil {
			return rawResponse(body), nil
		}
		out := &ai.Response{Usage: normalizeUsage(resp.Usage)}
		if len(resp.Choices) > 0 {
			choice := resp.Choices[0]
			out.Text = choice.Message.Content
			if out.Text == "" {
				out.Text = choice.Text
			}
			out.FinishReason = choice.FinishReason
		}
		return out, nil

	case ai.OpEmbedding:
		var resp embeddingResponse
		if err := utils.DecodeLoose(body, &resp); err != nil {
			return rawResponse(body), nil
		}
		out := &ai.Response{Usage: normalizeUsage(resp.Usage)}
		if len(resp.Data) > 0 {
			out.Embedding = resp.Data[0].Embedding
		}
		return out, nil

	case ai.OpImage:
		var resp imageResponse
		if err := utils.DecodeLoose(body, &resp); err != nil {
			return rawResponse(body), nil
		}
		out := &ai.Response{}
		for _, d := range resp.Data {
			if d.URL != "" {
				out.Images = append(out.Images, d.URL)
			} else if d.B64JSON != "" {
				out.Images = append(out.Images, d.B64JSON)
			}
		}
		return out, nil
	}

	return nil, ai.NewError(ai.KindResponse, c.provider, fmt.Sprintf("unknown operation %q", op), nil)
}

func normalizeUsage(u wireUsage) ai.Usage {
	total := u.TotalTokens
	if total == 0 {
		total = u.PromptTokens + u.CompletionTokens
	}
	return ai.Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      total,
	}
}

func rawResponse(body []byte) *ai.Response {
	return &ai.Response{Raw: string(body)}
}
