package ratelimit

import (
	"testing"
	"time"
)

func TestAllow_ConsumesBurst(t *testing.T) {
	l := New(1, 2)

	if !l.Allow() {
		t.Error("first request should be allowed")
	}
	if !l.Allow() {
		t.Error("second request should be allowed")
	}
	if l.Allow() {
		t.Error("third request should be denied, burst exhausted")
	}
}

func TestAllow_Refills(t *testing.T) {
	l := New(100, 1)

	if !l.Allow() {
		t.Fatal("first request should be allowed")
	}
	if l.Allow() {
		t.Fatal("bucket should be empty")
	}

	// At 100 tokens/s a short sleep restores at least one token.
	time.Sleep(50 * time.Millisecond)

	if !l.Allow() {
		t.Error("expected token after refill")
	}
}

func TestTokens_CappedAtBurst(t *testing.T) {
	l := New(1000, 5)

	time.Sleep(20 * time.Millisecond)

	if got := l.Tokens(); got > 5 {
		t.Errorf("tokens must not exceed burst capacity, got %f", got)
	}
}

func TestAllow_Concurrent(t *testing.T) {
	l := New(0, 10)

	allowed := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		go func() {
			allowed <- l.Allow()
		}()
	}

	count := 0
	for i := 0; i < 20; i++ {
		if <-allowed {
			count++
		}
	}
	if count != 10 {
		t.Errorf("expected exactly 10 allowed, got %d", count)
	}
}
