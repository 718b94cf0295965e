// Package credentials resolves API keys per provider. Keys come from the
// configuration file, are overlaid by {PROVIDER}_API_KEY environment variables
// captured once at construction, and can be replaced at runtime via Set. A
// missing key is not an error until a request actually needs it.
package credentials

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/quillworks/aigate/core/config"
	"github.com/quillworks/aigate/providers/ai"
)

// Store holds the credential map for all providers. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	overlay map[ai.Provider]string // explicit Set calls, highest precedence
	env     map[ai.Provider]string // environment capture from construction time
	cfg     *config.Config
	logger  *slog.Logger
}

// New builds a store backed by cfg, capturing the {PROVIDER}_API_KEY
// environment variables as it goes.
func New(cfg *config.Config, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		overlay: make(map[ai.Provider]string),
		env:     make(map[ai.Provider]string),
		cfg:     cfg,
		logger:  logger,
	}
	for _, p := range ai.Providers() {
		if v := os.Getenv(EnvVar(p)); v != "" {
			s.env[p] = v
		}
	}
	return s
}

// EnvVar returns the environment variable name holding a provider's key,
// e.g. OPENAI_API_KEY.
func EnvVar(p ai.Provider) string {
	return strings.ToUpper(string(p)) + "_API_KEY"
}

// Lookup returns the key for a provider without treating absence as an error.
// Resolution order: explicit Set overlay, then environment capture, then
// configuration.
func (s *Store) Lookup(p ai.Provider) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.overlay[p]; ok {
		return v
	}
	if v, ok := s.env[p]; ok {
		return v
	}
	return s.cfg.APIKey(p)
}

// Resolve returns the key for a provider, failing with an api_key error when
// none is available.
func (s *Store) Resolve(p ai.Provider) (string, error) {
	if key := s.Lookup(p); key != "" {
		return key, nil
	}
	return "", ai.NewError(ai.KindAPIKey, p,
		fmt.Sprintf("no API key configured (set %s or ai.api_keys.%s)", EnvVar(p), p), nil)
}

// Set replaces a provider's key and asks the owning configuration to persist
// the change. Persistence failures are logged, never raised: the in-memory
// key is already in effect and blocking the caller on disk state would be
// worse than a stale file.
func (s *Store) Set(p ai.Provider, key string) {
	s.mu.Lock()
	s.overlay[p] = key
	s.mu.Unlock()

	s.cfg.SetAPIKey(p, key)
	if err := s.cfg.Save(); err != nil {
		s.logger.Warn("failed to persist API key", "provider", p, "error", err)
	}
}
