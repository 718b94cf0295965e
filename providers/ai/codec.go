package ai

// Codec is the per-provider strategy that translates between the canonical
// model and one provider's wire protocol. Implementations are pure: they hold
// only immutable configuration (base URL, catalog reference) captured at
// construction, perform no I/O, and never mutate the Request they are given.
//
// The gateway selects one Codec per call and drives it in sequence:
// Endpoint → BuildHeaders → FormatRequest before the network round trip,
// ParseResponse after it.
type Codec interface {
	// Endpoint returns the full URL for the given operation, substituting the
	// resolved model into the path where the provider encodes it there.
	// Returns a model-not-available error when the provider does not support
	// the operation at all.
	Endpoint(op Operation, model string) (string, error)

	// BuildHeaders returns the HTTP headers the provider requires, carrying
	// apiKey in whatever scheme the provider uses. An empty apiKey yields no
	// authentication header; whether that is acceptable is decided upstream
	// by the credential store.
	BuildHeaders(apiKey string) []Header

	// FormatRequest maps a normalized canonical request into the provider's
	// wire payload for the given operation. The returned value is marshaled
	// to JSON by the transport.
	FormatRequest(op Operation, model string, req Request) (any, error)

	// ParseResponse maps a provider wire response into the canonical form.
	// Parsing is defensive: absent fields become zero values, and a body that
	// cannot be decoded degrades to a Response with Raw set rather than an
	// error, because upstream schemas drift.
	ParseResponse(op Operation, body []byte) (*Response, error)
}
