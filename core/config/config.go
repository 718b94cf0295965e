// Package config loads and persists the gateway's YAML configuration. The
// recognized surface is the `ai:` block: active provider, per-provider API
// keys, per-provider per-operation model overrides, per-provider rate limits,
// and base URL overrides for local/custom endpoints.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/quillworks/aigate/providers/ai"
)

// AISettings is the `ai:` block of the configuration file.
type AISettings struct {
	// Provider is the active provider name. Defaults to "openai".
	Provider string `yaml:"provider"`

	// APIKeys maps provider name to secret. Values here are overlaid by
	// {PROVIDER}_API_KEY environment variables at credential-store build time.
	APIKeys map[string]string `yaml:"api_keys"`

	// Models maps provider name to operation name to model override.
	Models map[string]map[string]string `yaml:"models"`

	// RateLimits maps provider name to requests per second. Unset providers
	// default to 1.0; zero or negative disables limiting.
	RateLimits map[string]float64 `yaml:"rate_limits"`

	// BaseURLs overrides the endpoint base per provider. Required for custom,
	// optional for local.
	BaseURLs map[string]string `yaml:"base_urls"`
}

// Config is the root configuration. Reads and writes are synchronized so the
// gateway's setters can update it while calls are in flight.
type Config struct {
	mu   sync.RWMutex
	ai   AISettings
	path string
}

// Default returns a configuration with the stock defaults and no file backing.
// Save on a pathless config is a no-op.
func Default() *Config {
	return &Config{ai: AISettings{Provider: string(ai.ProviderOpenAI)}}
}

// Load reads YAML configuration from disk. A missing file is not an error:
// the defaults are returned with the path remembered, so a later Save creates
// the file.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	cfg := Default()
	cfg.path = absPath

	data, err := os.ReadFile(absPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", absPath, err)
	}

	var file struct {
		AI AISettings `yaml:"ai"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", absPath, err)
	}

	cfg.ai = file.AI
	if cfg.ai.Provider == "" {
		cfg.ai.Provider = string(ai.ProviderOpenAI)
	}
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from. Configs
// built with Default have no backing file and Save does nothing.
func (c *Config) Save() error {
	c.mu.RLock()
	path := c.path
	file := struct {
		AI AISettings `yaml:"ai"`
	}{AI: c.snapshotLocked()}
	c.mu.RUnlock()

	if path == "" {
		return nil
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file %q: %w", path, err)
	}
	return nil
}

// snapshotLocked deep-copies the AI settings. Caller holds at least a read lock.
func (c *Config) snapshotLocked() AISettings {
	out := AISettings{
		Provider:   c.ai.Provider,
		APIKeys:    make(map[string]string, len(c.ai.APIKeys)),
		Models:     make(map[string]map[string]string, len(c.ai.Models)),
		RateLimits: make(map[string]float64, len(c.ai.RateLimits)),
		BaseURLs:   make(map[string]string, len(c.ai.BaseURLs)),
	}
	for k, v := range c.ai.APIKeys {
		out.APIKeys[k] = v
	}
	for p, ops := range c.ai.Models {
		m := make(map[string]string, len(ops))
		for op, model := range ops {
			m[op] = model
		}
		out.Models[p] = m
	}
	for k, v := range c.ai.RateLimits {
		out.RateLimits[k] = v
	}
	for k, v := range c.ai.BaseURLs {
		out.BaseURLs[k] = v
	}
	return out
}

// Provider returns the configured active provider.
func (c *Config) Provider() ai.Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ai.Provider(c.ai.Provider)
}

// SetProvider records the active provider.
func (c *Config) SetProvider(p ai.Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ai.Provider = string(p)
}

// APIKey returns the configured key for a provider, or "".
func (c *Config) APIKey(p ai.Provider) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ai.APIKeys[string(p)]
}

// SetAPIKey records a provider key. Persistence is the caller's concern.
func (c *Config) SetAPIKey(p ai.Provider, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ai.APIKeys == nil {
		c.ai.APIKeys = make(map[string]string)
	}
	c.ai.APIKeys[string(p)] = key
}

// Model returns the configured model override for (provider, operation), or "".
func (c *Config) Model(p ai.Provider, op ai.Operation) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ai.Models[string(p)][string(op)]
}

// SetModel records a model override for (provider, operation).
func (c *Config) SetModel(p ai.Provider, op ai.Operation, model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ai.Models == nil {
		c.ai.Models = make(map[string]map[string]string)
	}
	if c.ai.Models[string(p)] == nil {
		c.ai.Models[string(p)] = make(map[string]string)
	}
	c.ai.Models[string(p)][string(op)] = model
}

// RateLimit returns the configured requests-per-second for a provider. The
// second return is false when the provider is unconfigured.
func (c *Config) RateLimit(p ai.Provider) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.ai.RateLimits[string(p)]
	return v, ok
}

// BaseURL returns the configured base URL override for a provider, or "".
func (c *Config) BaseURL(p ai.Provider) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ai.BaseURLs[string(p)]
}
