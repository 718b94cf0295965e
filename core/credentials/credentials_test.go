package credentials

import (
	"io"
	"log/slog"
	"testing"

	"github.com/quillworks/aigate/core/config"
	"github.com/quillworks/aigate/providers/ai"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveFromConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := config.Default()
	cfg.SetAPIKey(ai.ProviderOpenAI, "sk-from-config")
	store := New(cfg, discard())

	key, err := store.Resolve(ai.ProviderOpenAI)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "sk-from-config" {
		t.Errorf("expected config key, got %q", key)
	}
}

func TestEnvironmentOverlaysConfig(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-from-env")

	cfg := config.Default()
	cfg.SetAPIKey(ai.ProviderAnthropic, "sk-from-config")
	store := New(cfg, discard())

	key, err := store.Resolve(ai.ProviderAnthropic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "sk-from-env" {
		t.Errorf("expected env key to win, got %q", key)
	}
}

func TestSetOverlaysEverything(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "sk-from-env")

	cfg := config.Default()
	cfg.SetAPIKey(ai.ProviderGoogle, "sk-from-config")
	store := New(cfg, discard())

	store.Set(ai.ProviderGoogle, "sk-explicit")

	key, err := store.Resolve(ai.ProviderGoogle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "sk-explicit" {
		t.Errorf("expected explicit key to win, got %q", key)
	}
}

func TestSetPersistsToConfig(t *testing.T) {
	cfg := config.Default()
	store := New(cfg, discard())

	store.Set(ai.ProviderOpenAI, "sk-new")

	if got := cfg.APIKey(ai.ProviderOpenAI); got != "sk-new" {
		t.Errorf("expected key written through to config, got %q", got)
	}
}

func TestResolveMissingKeyFailsWithAPIKeyKind(t *testing.T) {
	t.Setenv("CUSTOM_API_KEY", "")

	store := New(config.Default(), discard())

	_, err := store.Resolve(ai.ProviderCustom)
	if err == nil {
		t.Fatal("expected error for missing key")
	}
	if !ai.IsKind(err, ai.KindAPIKey) {
		t.Errorf("expected api_key error kind, got %v", err)
	}
}

func TestEnvironmentCapturedAtConstruction(t *testing.T) {
	t.Setenv("LOCAL_API_KEY", "captured")
	store := New(config.Default(), discard())

	// Later environment changes are invisible to an existing store.
	t.Setenv("LOCAL_API_KEY", "changed")

	if got := store.Lookup(ai.ProviderLocal); got != "captured" {
		t.Errorf("expected construction-time capture, got %q", got)
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar(ai.ProviderOpenAI); got != "OPENAI_API_KEY" {
		t.Errorf("unexpected env var name %q", got)
	}
}
