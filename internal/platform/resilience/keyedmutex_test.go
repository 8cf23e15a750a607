package resilience

import (
	"sync"
	"testing"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	var m KeyedMutex
	var counter int

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock("division:season")
			defer m.Unlock("division:season")
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter: got %d, want 50", counter)
	}
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	var m KeyedMutex

	m.Lock("a")
	done := make(chan struct{})
	go func() {
		m.Lock("b")
		m.Unlock("b")
		close(done)
	}()
	<-done
	m.Unlock("a")
}

func TestKeyedMutex_DropsIdleEntries(t *testing.T) {
	var m KeyedMutex

	m.Lock("k")
	m.Unlock("k")

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.locks) != 0 {
		t.Fatalf("expected idle entries to be dropped, found %d", len(m.locks))
	}
}

func TestKeyedMutex_UnlockUnknownKeyIsNoop(t *testing.T) {
	var m KeyedMutex
	m.Unlock("never-locked")
}
