package agent

import "testing"

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, 5)
	for i := 0; i < 100; i++ {
		if !rl.Allow("anyone") {
			t.Fatal("disabled limiter must always allow")
		}
	}
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	if !rl.Allow("k") || !rl.Allow("k") {
		t.Fatal("burst runs should pass")
	}
	if rl.Allow("k") {
		t.Error("run beyond burst should be rejected")
	}
}

func TestRateLimiter_PerKeyIsolation(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	if !rl.Allow("a") {
		t.Fatal("first run for a should pass")
	}
	if !rl.Allow("b") {
		t.Error("b must have its own bucket")
	}
}
