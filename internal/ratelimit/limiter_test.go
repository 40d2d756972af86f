package ratelimit

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fixedClock returns a limiter whose clock is controlled by the returned
// advance function.
func fixedClock(l *Limiter) func(time.Duration) {
	now := time.Now()
	l.nowFunc = func() time.Time { return now }
	return func(d time.Duration) { now = now.Add(d) }
}

func TestNewLimiter_StartsFull(t *testing.T) {
	l := NewLimiter(10.0, 5)
	fixedClock(l)
	if got := l.Available(); got != 5 {
		t.Errorf("Available() = %f, want 5", got)
	}
}

func TestAllow_WithinCapacity(t *testing.T) {
	l := NewLimiter(1.0, 3)
	fixedClock(l)

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Errorf("request %d should be allowed (within capacity)", i+1)
		}
	}
	if l.Allow() {
		t.Error("request after capacity exhaustion should be rejected")
	}
}

func TestAllowN_WeightedCost(t *testing.T) {
	l := NewLimiter(1.0, 10)
	fixedClock(l)

	if !l.AllowN(7) {
		t.Fatal("cost 7 should fit in capacity 10")
	}
	if l.AllowN(4) {
		t.Error("cost 4 should not fit in the remaining 3 units")
	}
	if !l.AllowN(3) {
		t.Error("cost 3 should fit exactly")
	}
}

func TestAllowN_CostAboveCapacityNeedsFullBucket(t *testing.T) {
	l := NewLimiter(1.0, 10)
	advance := fixedClock(l)

	if !l.AllowN(1000) {
		t.Fatal("oversized request should be allowed on a full bucket")
	}
	if l.Allow() {
		t.Error("oversized request should drain the bucket")
	}

	advance(5 * time.Second)
	if l.AllowN(1000) {
		t.Error("oversized request should need a full bucket")
	}
	advance(5 * time.Second)
	if !l.AllowN(1000) {
		t.Error("oversized request should be allowed once the bucket refills")
	}
}

func TestAllow_RefillCappedAtCapacity(t *testing.T) {
	l := NewLimiter(100.0, 3)
	advance := fixedClock(l)

	for i := 0; i < 3; i++ {
		l.Allow()
	}
	advance(10 * time.Second)

	if got := l.Available(); got != 3 {
		t.Errorf("Available() = %f, want 3 after refill cap", got)
	}
}

func TestAllow_PartialRefill(t *testing.T) {
	l := NewLimiter(2.0, 5)
	advance := fixedClock(l)

	l.AllowN(5)
	advance(250 * time.Millisecond)
	if l.Allow() {
		t.Error("0.5 units should not cover a request")
	}
	advance(250 * time.Millisecond)
	if !l.Allow() {
		t.Error("1 unit should cover a request")
	}
}

func TestAllow_ZeroRate(t *testing.T) {
	l := NewLimiter(0.0, 2)
	advance := fixedClock(l)

	l.Allow()
	l.Allow()
	advance(time.Hour)
	if l.Allow() {
		t.Error("should be rejected with zero rate")
	}
}

func TestAllow_ConcurrentAccess(t *testing.T) {
	l := NewLimiter(0, 100)
	fixedClock(l)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 100 {
		t.Errorf("allowed %d requests, want 100", allowed)
	}
}

func TestSimulationCost(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		steps int
		want  float64
	}{
		{"tiny run costs one unit", 3, 10, 1},
		{"zero steps costs one unit", 100, 0, 1},
		{"hundred by hundred for 200 steps", 100, 200, 2},
		{"max grid for 100 steps", 512, 100, 26.2144},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimulationCost(tt.size, tt.steps); got != tt.want {
				t.Errorf("SimulationCost(%d, %d) = %f, want %f", tt.size, tt.steps, got, tt.want)
			}
		})
	}
}

func TestToolLimiters_Check(t *testing.T) {
	tl := ToolLimiters{"trustgrid_simulate": NewLimiter(0, 2)}
	fixedClock(tl["trustgrid_simulate"])

	if err := tl.Check("trustgrid_simulate", 2); err != nil {
		t.Fatalf("first check: %v", err)
	}
	err := tl.Check("trustgrid_simulate", 1)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Check() error = %v, want ErrRateLimited", err)
	}
	if err := tl.Check("unknown_tool", 1000); err != nil {
		t.Errorf("unconfigured tool should be allowed, got %v", err)
	}
}

func TestNewToolLimiters(t *testing.T) {
	tl := NewToolLimiters()
	for _, name := range []string{"trustgrid_simulate", "trustgrid_grade"} {
		if tl[name] == nil {
			t.Errorf("missing limiter for %s", name)
		}
	}
}
