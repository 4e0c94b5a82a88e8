package util

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopwatch(t *testing.T) {
	sw := &Stopwatch{}
	assert.Zero(t, sw.Elapsed())

	sw.Start()
	time.Sleep(10 * time.Millisecond)
	sw.Start() // no-op while running
	sw.Stop()
	first := sw.Elapsed()
	assert.GreaterOrEqual(t, first, 10*time.Millisecond)
	assert.False(t, sw.Running())

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, first, sw.Elapsed(), "elapsed must not grow while stopped")

	sw.Start()
	time.Sleep(5 * time.Millisecond)
	sw.Stop()
	assert.Greater(t, sw.Elapsed(), first)

	sw.Start()
	sw.Reset()
	assert.Zero(t, sw.Elapsed())
	assert.False(t, sw.Running())
}

func TestStopwatchConcurrentAccess(t *testing.T) {
	sw := &Stopwatch{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sw.Start()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sw.Stop()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = sw.Elapsed()
			}
		}()
	}
	wg.Wait()
}
