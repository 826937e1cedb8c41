package lock_test

import (
	"sync"
	"testing"
	"venuedesk/shared/lock"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := lock.NewKeyedMutex()

	const workers = 50

	counter := 0

	var wg sync.WaitGroup

	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()

			km.Lock("booking-1")
			defer km.Unlock("booking-1")

			counter++
		}()
	}

	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	km := lock.NewKeyedMutex()

	km.Lock("a")

	done := make(chan struct{})

	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	// A held lock on "a" must not block "b".
	<-done

	km.Unlock("a")
}

func TestKeyedMutex_UnlockUnheldPanics(t *testing.T) {
	km := lock.NewKeyedMutex()

	assert.Panics(t, func() {
		km.Unlock("never-locked")
	})
}
