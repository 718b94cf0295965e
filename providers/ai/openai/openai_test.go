package openai

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/quillworks/aigate/core/catalog"
	"github.com/quillworks/aigate/providers/ai"
)

func newTestCodec() *Codec {
	return New(catalog.Default())
}

func TestEndpointPerOperation(t *testing.T) {
	c := newTestCodec()

	cases := map[ai.Operation]string{
		ai.OpChat:       "/chat/completions",
		ai.OpCompletion: "/chat/completions",
		ai.OpEmbedding:  "/embeddings",
		ai.OpImage:      "/images/generations",
	}
	for op, suffix := range cases {
		url, err := c.Endpoint(op, "gpt-4o-mini")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", op, err)
		}
		if !strings.HasSuffix(url, suffix) {
			t.Errorf("%s: expected suffix %q, got %q", op, suffix, url)
		}
	}
}

func TestBuildHeaders(t *testing.T) {
	c := newTestCodec()

	headers := c.BuildHeaders("sk-test")
	if len(headers) != 1 || headers[0].Key != "Authorization" || headers[0].Value != "Bearer sk-test" {
		t.Errorf("unexpected headers %+v", headers)
	}

	if headers := c.BuildHeaders(""); len(headers) != 0 {
		t.Errorf("empty key must produce no auth header, got %+v", headers)
	}
}

func TestFormatChatRequest(t *testing.T) {
	c := newTestCodec()
	req := ai.Request{
		Operation: ai.OpChat,
		Messages:  []ai.Message{{Role: ai.RoleUser, Content: "Hello"}},
		Stop:      []string{"\n\n"},
	}.Normalize()

	payload, err := c.FormatRequest(ai.OpChat, "gpt-4o-mini", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body["model"] != "gpt-4o-mini" {
		t.Errorf("unexpected model %v", body["model"])
	}
	if body["temperature"] != ai.DefaultTemperature {
		t.Errorf("expected default temperature, got %v", body["temperature"])
	}
	if body["max_tokens"] != float64(ai.DefaultMaxTokens) {
		t.Errorf("expected default max_tokens, got %v", body["max_tokens"])
	}
	msgs, ok := body["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("unexpected messages %v", body["messages"])
	}
}

func TestFormatDoesNotMutateRequest(t *testing.T) {
	c := newTestCodec()
	req := ai.Request{Operation: ai.OpChat, Prompt: "Hello"}

	if _, err := c.FormatRequest(ai.OpChat, "gpt-4o-mini", req.Normalize()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Temperature != nil || len(req.Messages) != 0 {
		t.Errorf("formatting mutated the caller's request: %+v", req)
	}
}

func TestParseChatResponse(t *testing.T) {
	c := newTestCodec()
	body := `{"choices":[{"message":{"content":"Hi there"},"finish_reason":"stop"}],"usage":{"prompt_tokens":5,"completion_tokens":3,"total_tokens":8}}`

	resp, err := c.ParseResponse(ai.OpChat, []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Hi there" {
		t.Errorf("expected text 'Hi there', got %q", resp.Text)
	}
	if resp.FinishReason != "stop" {
		t.Errorf("expected finish reason 'stop', got %q", resp.FinishReason)
	}
	if resp.Usage.PromptTokens != 5 || resp.Usage.CompletionTokens != 3 || resp.Usage.TotalTokens != 8 {
		t.Errorf("unexpected usage %+v", resp.Usage)
	}
}

func TestParseLegacyCompletionText(t *testing.T) {
	c := newTestCodec()
	body := `{"choices":[{"text":"Once upon a time","finish_reason":"length"}]}`

	resp, err := c.ParseResponse(ai.OpCompletion, []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Once upon a time" {
		t.Errorf("expected legacy text field, got %q", resp.Text)
	}
}

func TestParseEmbeddingResponse(t *testing.T) {
	c := newTestCodec()
	body := `{"data":[{"embedding":[0.1,0.2,0.3]}],"usage":{"prompt_tokens":4,"total_tokens":4}}`

	resp, err := c.ParseResponse(ai.OpEmbedding, []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Embedding) != 3 || resp.Embedding[1] != 0.2 {
		t.Errorf("unexpected embedding %v", resp.Embedding)
	}
	if resp.Usage.TotalTokens != 4 {
		t.Errorf("unexpected usage %+v", resp.Usage)
	}
}

func TestParseImageResponse(t *testing.T) {
	c := newTestCodec()
	body := `{"data":[{"url":"https://img.example/1.png"},{"b64_json":"aGVsbG8="}]}`

	resp, err := c.ParseResponse(ai.OpImage, []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://img.example/1.png", "aGVsbG8="}
	if len(resp.Images) != 2 || resp.Images[0] != want[0] || resp.Images[1] != want[1] {
		t.Errorf("expected %v, got %v", want, resp.Images)
	}
}

func TestParseComputesTotalWhenMissing(t *testing.T) {
	c := newTestCodec()
	body := `{"choices":[{"message":{"content":"ok"}}],"usage":{"prompt_tokens":7,"completion_tokens":2}}`

	resp, err := c.ParseResponse(ai.OpChat, []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 9 {
		t.Errorf("expected computed total 9, got %d", resp.Usage.TotalTokens)
	}
}

func TestParseUndecodableBodyDegradesToRaw(t *testing.T) {
	c := newTestCodec()
	body := `this is not json at all <<<>>>`

	resp, err := c.ParseResponse(ai.OpChat, []byte(body))
	if err != nil {
		t.Fatalf("best-effort parse must not error, got %v", err)
	}
	if resp.Raw != body {
		t.Errorf("expected raw body preserved, got %q", resp.Raw)
	}
	if resp.Text != "" {
		t.Errorf("expected empty text on degraded parse, got %q", resp.Text)
	}
}
