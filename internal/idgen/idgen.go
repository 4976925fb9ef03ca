// Package idgen hands out record identifiers derived from the millisecond
// clock. Identifiers from one Generator are strictly increasing, so two
// records created within the same millisecond never collide.
package idgen

import (
	"strconv"
	"sync"
	"time"
)

type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock is used by tests to pin the clock
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns max(now in ms, previous + 1)
func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return ms
}

// NextString returns Next formatted in base 10 with an optional prefix
func (g *Generator) NextString(prefix string) string {
	return prefix + strconv.FormatInt(g.Next(), 10)
}
