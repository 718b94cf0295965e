package ai

// RequestOption adjusts a single canonical request. The gateway's public
// operations accept these so callers can tweak generation parameters without
// building a Request by hand.
type RequestOption func(*Request)

// WithModel overrides the model for this call, taking precedence over both
// the configured model and the catalog default.
func WithModel(model string) RequestOption {
	return func(r *Request) { r.Model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) RequestOption {
	return func(r *Request) { r.Temperature = Float64(t) }
}

// WithMaxTokens caps the number of tokens generated.
func WithMaxTokens(n int) RequestOption {
	return func(r *Request) { r.MaxTokens = Int(n) }
}

// WithTopP sets the nucleus sampling threshold.
func WithTopP(p float64) RequestOption {
	return func(r *Request) { r.TopP = Float64(p) }
}

// WithFrequencyPenalty sets the frequency penalty.
func WithFrequencyPenalty(p float64) RequestOption {
	return func(r *Request) { r.FrequencyPenalty = Float64(p) }
}

// WithPresencePenalty sets the presence penalty.
func WithPresencePenalty(p float64) RequestOption {
	return func(r *Request) { r.PresencePenalty = Float64(p) }
}

// WithStop sets the stop sequences.
func WithStop(stop ...string) RequestOption {
	return func(r *Request) { r.Stop = stop }
}

// WithImageCount sets how many images to generate.
func WithImageCount(n int) RequestOption {
	return func(r *Request) { r.N = n }
}

// WithImageSize sets the generated image dimensions, e.g. "1024x1024".
func WithImageSize(size string) RequestOption {
	return func(r *Request) { r.Size = size }
}

// WithResponseFormat selects "url" or "b64_json" image delivery.
func WithResponseFormat(format string) RequestOption {
	return func(r *Request) { r.ResponseFormat = format }
}
