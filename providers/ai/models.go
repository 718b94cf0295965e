package ai

/*
	##### PROVIDERS & OPERATIONS #####
*/

// Provider identifies which upstream service handles a request and therefore
// which wire format, header set, and endpoint rules apply. The set is closed;
// ProviderCustom exists for OpenAI-compatible endpoints that are none of the
// hosted services.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
	ProviderLocal     Provider = "local"    // OpenAI-compatible local inference server
	ProviderCustom    Provider = "custom"   // user-supplied OpenAI-compatible endpoint
)

// Providers lists every supported provider in a stable order. Used for
// configuration enumeration and environment variable discovery.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderLocal, ProviderCustom}
}

// Valid reports whether p is one of the supported providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderLocal, ProviderCustom:
		return true
	}
	return false
}

func (p Provider) String() string { return string(p) }

// Operation is the category of AI call being made. It selects the default
// model and endpoint within a provider.
type Operation string

const (
	OpCompletion Operation = "completion"
	OpChat       Operation = "chat"
	OpEmbedding  Operation = "embedding"
	OpImage      Operation = "image"
)

// Operations lists every operation kind in a stable order.
func Operations() []Operation {
	return []Operation{OpCompletion, OpChat, OpEmbedding, OpImage}
}

func (o Operation) String() string { return string(o) }

/*
	##### CANONICAL REQUEST #####
*/

// MessageRole represents the role of a message; compatible with string.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// Generation parameter defaults applied by Request.Normalize when the caller
// leaves a field unset.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
	DefaultTopP        = 1.0
	DefaultImageCount  = 1
	DefaultImageSize   = "1024x1024"
	DefaultImageFormat = "url"
)

// Request is the provider-agnostic representation of a single AI call. Codecs
// translate it into each provider's wire payload; callers never see provider
// shapes. A Request is a per-call value object: once handed to the gateway it
// is not mutated, and codecs operate on a normalized copy.
type Request struct {
	Operation Operation `json:"operation"`

	// Prompt is a bare single-turn prompt. Messages take precedence when both
	// are supplied; Normalize lifts a bare prompt into a single user message.
	Prompt   string    `json:"prompt,omitempty"`
	Messages []Message `json:"messages,omitempty"`

	// Model overrides both the configured model and the catalog default.
	Model string `json:"model,omitempty"`

	// Generation parameters. Pointers distinguish "unset" from an explicit
	// zero so that Normalize can apply defaults without clobbering intent.
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxTokens        *int     `json:"max_tokens,omitempty"`
	TopP             *float64 `json:"top_p,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`
	Stop             []string `json:"stop,omitempty"`

	// Embedding input text.
	Input string `json:"input,omitempty"`

	// Image generation fields.
	N              int    `json:"n,omitempty"`
	Size           string `json:"size,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
}

// Normalize returns a copy of the request with defaults filled in and a bare
// prompt converted to a single user message. The receiver is never modified;
// codecs format the returned copy so concurrent calls can share a Request.
func (r Request) Normalize() Request {
	out := r

	if out.Temperature == nil {
		out.Temperature = Float64(DefaultTemperature)
	}
	if out.MaxTokens == nil {
		out.MaxTokens = Int(DefaultMaxTokens)
	}
	if out.TopP == nil {
		out.TopP = Float64(DefaultTopP)
	}
	if out.FrequencyPenalty == nil {
		out.FrequencyPenalty = Float64(0)
	}
	if out.PresencePenalty == nil {
		out.PresencePenalty = Float64(0)
	}

	// Messages are authoritative; a bare prompt becomes a single user turn.
	if len(out.Messages) == 0 && out.Prompt != "" {
		out.Messages = []Message{{Role: RoleUser, Content: out.Prompt}}
	} else if len(out.Messages) > 0 {
		out.Messages = append([]Message(nil), out.Messages...)
	}

	if out.Operation == OpImage {
		if out.N <= 0 {
			out.N = DefaultImageCount
		}
		if out.Size == "" {
			out.Size = DefaultImageSize
		}
		if out.ResponseFormat == "" {
			out.ResponseFormat = DefaultImageFormat
		}
	}

	return out
}

// Float64 returns a pointer to v. Convenience for request literals.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v. Convenience for request literals.
func Int(v int) *int { return &v }

/*
	##### CANONICAL RESPONSE #####
*/

// Usage reports token consumption for a single call. TotalTokens always
// equals PromptTokens+CompletionTokens when the provider reports the two
// separately; for providers that omit a total it is computed, not read.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the normalized result of any operation. Fields that do not
// apply to the operation are left at their zero values.
type Response struct {
	Text         string    `json:"text,omitempty"`
	FinishReason string    `json:"finish_reason,omitempty"`
	Usage        Usage     `json:"usage"`
	Embedding    []float64 `json:"embedding,omitempty"`
	Images       []string  `json:"images,omitempty"`

	// Raw carries the unparsed body when the provider returned a 2xx response
	// whose JSON could not be decoded even after repair. Callers showing
	// partial results to a user get the raw text instead of a hard failure.
	Raw string `json:"raw,omitempty"`
}

// Header is a single HTTP header emitted by a codec's BuildHeaders.
type Header struct {
	Key   string
	Value string
}
