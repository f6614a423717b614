package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_ElapsedGrowsAfterStart(t *testing.T) {
	c := NewClock()
	c.Start()
	time.Sleep(20 * time.Millisecond)
	c.Update()

	elapsed := c.Elapsed()
	assert.Greater(t, elapsed, 0.01)
	assert.Less(t, elapsed, 5.0)
}

func TestClock_UpdateWithoutStartIsNoop(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Equal(t, 0.0, c.Elapsed())
}

func TestClock_StopFreezesElapsed(t *testing.T) {
	c := NewClock()
	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	c.Stop()

	frozen := c.Elapsed()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	assert.Equal(t, frozen, c.Elapsed())
}
