// Package ratelimit meters the simulation work MCP tools may perform.
//
// Each tool owns a token bucket measured in work units. A request spends
// units proportional to the cells it will update, so one large simulation
// costs as much as many small ones.
package ratelimit

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// ErrRateLimited is returned when a tool's budget cannot cover a request.
var ErrRateLimited = errors.New("rate limit exceeded")

// CellStepsPerUnit is the number of single-cell updates one work unit buys.
const CellStepsPerUnit = 1_000_000

// Limiter is a token bucket holding fractional work units. It is safe for
// concurrent use.
type Limiter struct {
	mu       sync.Mutex
	tokens   float64
	last     time.Time
	rate     float64          // units refilled per second
	capacity float64          // max units held (also initial units)
	nowFunc  func() time.Time // injectable clock for testing
}

// NewLimiter creates a full limiter refilling rate units per second up to
// capacity.
func NewLimiter(rate, capacity float64) *Limiter {
	return &Limiter{
		tokens:   capacity,
		rate:     rate,
		capacity: capacity,
		nowFunc:  time.Now,
	}
}

func (l *Limiter) refill() {
	now := l.nowFunc()
	if l.last.IsZero() {
		l.last = now
		return
	}
	if elapsed := now.Sub(l.last).Seconds(); elapsed > 0 {
		l.tokens = math.Min(l.capacity, l.tokens+l.rate*elapsed)
		l.last = now
	}
}

// AllowN spends cost units if available. A cost above capacity is charged
// as the full capacity, so oversized requests need a full bucket.
func (l *Limiter) AllowN(cost float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	cost = math.Min(math.Max(cost, 0), l.capacity)
	if l.tokens < cost {
		return false
	}
	l.tokens -= cost
	return true
}

// Allow spends a single unit.
func (l *Limiter) Allow() bool { return l.AllowN(1) }

// Available returns the units currently in the bucket.
func (l *Limiter) Available() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens
}

// SimulationCost returns the work units of advancing a size×size grid for
// steps generations. Every request costs at least one unit.
func SimulationCost(size, steps int) float64 {
	cells := float64(size) * float64(size) * float64(max(steps, 1))
	return math.Max(1, cells/CellStepsPerUnit)
}

// ToolLimiters maps tool names to their limiters.
type ToolLimiters map[string]*Limiter

// NewToolLimiters creates the default limiters for the trustgrid tools.
func NewToolLimiters() ToolLimiters {
	return ToolLimiters{
		"trustgrid_simulate": NewLimiter(5, 200), // 200 units burst, 5 units/sec
		"trustgrid_grade":    NewLimiter(2, 20),  // 120/minute, burst 20
	}
}

// Check charges cost units to the named tool's limiter. Tools without a
// configured limiter are always allowed.
func (tl ToolLimiters) Check(tool string, cost float64) error {
	l, ok := tl[tool]
	if !ok {
		return nil
	}
	if !l.AllowN(cost) {
		return fmt.Errorf("%s needs %.1f work units, %.1f available: %w", tool, cost, l.Available(), ErrRateLimited)
	}
	return nil
}
