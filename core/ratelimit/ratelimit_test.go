package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/quillworks/aigate/providers/ai"
)

func TestCallsAreSpacedAtConfiguredRate(t *testing.T) {
	// 20 rps => 50ms between requests; 3 calls need at least 100ms.
	l := New(map[ai.Provider]float64{ai.ProviderOpenAI: 20})

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(context.Background(), ai.ProviderOpenAI); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 100*time.Millisecond {
		t.Errorf("3 calls at 20 rps finished in %v, want >= 100ms", elapsed)
	}
}

func TestProvidersDoNotBlockEachOther(t *testing.T) {
	l := New(map[ai.Provider]float64{
		ai.ProviderOpenAI:    5, // 200ms spacing
		ai.ProviderAnthropic: 5,
	})

	// Consume openai's first slot so its next wait is a full interval.
	if err := l.Wait(context.Background(), ai.ProviderOpenAI); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Wait(context.Background(), ai.ProviderOpenAI)
	}()

	// Anthropic's first request must pass immediately even while openai waits.
	start := time.Now()
	if err := l.Wait(context.Background(), ai.ProviderAnthropic); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("anthropic wait took %v while openai was limited", elapsed)
	}

	wg.Wait()
}

func TestZeroRateMeansUnlimited(t *testing.T) {
	l := New(map[ai.Provider]float64{ai.ProviderLocal: 0})

	start := time.Now()
	for i := 0; i < 50; i++ {
		if err := l.Wait(context.Background(), ai.ProviderLocal); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("unlimited provider took %v for 50 calls", elapsed)
	}
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	l := New(map[ai.Provider]float64{ai.ProviderOpenAI: 0.1}) // 10s spacing

	if err := l.Wait(context.Background(), ai.ProviderOpenAI); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := l.Wait(ctx, ai.ProviderOpenAI)
	if err == nil {
		t.Fatal("expected context error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancelled wait took %v", elapsed)
	}
}
