package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(1, 2)

	if !limiter.Allow("openai") {
		t.Error("expected first request to be allowed")
	}
	if !limiter.Allow("openai") {
		t.Error("expected second request within burst to be allowed")
	}
	if limiter.Allow("openai") {
		t.Error("expected third request to exceed burst")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("openai") {
		t.Error("expected openai request to be allowed")
	}
	if !limiter.Allow("ollama") {
		t.Error("expected ollama to have its own budget")
	}
	if limiter.Allow("openai") {
		t.Error("expected openai budget to be spent")
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx, "openai"); err != nil {
			t.Fatalf("wait %d failed: %v", i, err)
		}
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.Allow("openai") // spend the burst

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "openai"); err == nil {
		t.Error("expected wait to fail once the context expires")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetRate("ollama", 1, 5)

	allowed := 0
	for i := 0; i < 5; i++ {
		if limiter.Allow("ollama") {
			allowed++
		}
	}
	if allowed != 5 {
		t.Errorf("expected 5 requests within custom burst, got %d", allowed)
	}
}

func TestLimiter_BurstClamped(t *testing.T) {
	limiter := NewLimiter(1, 0)

	if !limiter.Allow("openai") {
		t.Error("expected burst to be clamped to 1, not 0")
	}
}
