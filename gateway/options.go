package gateway

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/quillworks/aigate/core/config"
	"github.com/quillworks/aigate/internal/transport"
	"github.com/quillworks/aigate/providers/ai"
)

// settings collects construction-time configuration before the Client is built.
type settings struct {
	cfg        *config.Config
	configPath string
	provider   ai.Provider
	apiKeys    map[ai.Provider]string
	httpClient *http.Client
	logger     *slog.Logger
	retry      transport.Config
}

// Option is a functional option for New.
type Option func(*settings) error

// WithConfig supplies an already-loaded configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *settings) error {
		if cfg == nil {
			return fmt.Errorf("config is required")
		}
		s.cfg = cfg
		return nil
	}
}

// WithConfigFile loads configuration from a YAML file at construction.
// Ignored when WithConfig is also given.
func WithConfigFile(path string) Option {
	return func(s *settings) error {
		if path == "" {
			return fmt.Errorf("config path is required")
		}
		s.configPath = path
		return nil
	}
}

// WithProvider selects the active provider, overriding the configured one.
func WithProvider(p ai.Provider) Option {
	return func(s *settings) error {
		if !p.Valid() {
			return fmt.Errorf("unknown provider %q", p)
		}
		s.provider = p
		return nil
	}
}

// WithAPIKey sets a provider credential at construction, taking precedence
// over both configuration and environment.
func WithAPIKey(p ai.Provider, key string) Option {
	return func(s *settings) error {
		if key == "" {
			return fmt.Errorf("API key is required for provider %s", p)
		}
		if s.apiKeys == nil {
			s.apiKeys = make(map[ai.Provider]string)
		}
		s.apiKeys[p] = key
		return nil
	}
}

// WithHTTPClient injects a custom HTTP client, e.g. for tests or custom
// transports.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) error {
		if client == nil {
			return fmt.Errorf("http client is required")
		}
		s.httpClient = client
		return nil
	}
}

// WithLogger routes the gateway's structured logs through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			return fmt.Errorf("logger is required")
		}
		s.logger = logger
		return nil
	}
}

// WithRetry tunes the transport's retry behavior. Zero-valued fields keep
// their defaults.
func WithRetry(cfg transport.Config) Option {
	return func(s *settings) error {
		s.retry = cfg
		return nil
	}
}
