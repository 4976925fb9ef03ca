package idgen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_MonotonicWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000123)
	g := NewWithClock(func() time.Time { return fixed })

	first := g.Next()
	second := g.Next()
	third := g.Next()

	assert.Equal(t, int64(1700000000123), first)
	assert.Equal(t, first+1, second)
	assert.Equal(t, second+1, third)
}

func TestGenerator_FollowsClockForward(t *testing.T) {
	now := time.UnixMilli(1000)
	g := NewWithClock(func() time.Time { return now })

	assert.Equal(t, int64(1000), g.Next())
	now = time.UnixMilli(5000)
	assert.Equal(t, int64(5000), g.Next())
}

func TestGenerator_NextStringPrefix(t *testing.T) {
	g := NewWithClock(func() time.Time { return time.UnixMilli(42) })

	id := g.NextString("BK")
	assert.True(t, strings.HasPrefix(id, "BK"))
	assert.Equal(t, "BK42", id)
	assert.Equal(t, "43", g.NextString(""))
}
