package agent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLocks_SerializesSameKey(t *testing.T) {
	locks := newKeyedLocks()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		current int
		max     int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.Acquire("t1|555")
			defer release()

			mu.Lock()
			current++
			if current > max {
				max = current
			}
			mu.Unlock()

			mu.Lock()
			current--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, max)
}

func TestKeyedLocks_IndependentKeysDoNotBlock(t *testing.T) {
	locks := newKeyedLocks()

	releaseA := locks.Acquire("a")
	releaseB := locks.Acquire("b")
	releaseB()
	releaseA()
}

func TestKeyedLocks_EntriesAreReleased(t *testing.T) {
	locks := newKeyedLocks()

	release := locks.Acquire("a")
	release()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks)
}
