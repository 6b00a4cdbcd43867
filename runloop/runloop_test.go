package runloop

import (
	"sync"
	"testing"
	"time"
)

func TestDispatchRunsOnNextTick(t *testing.T) {
	l := New()
	done := make(chan struct{})
	l.Dispatch(func() { close(done) })

	go l.Run(func() bool { return false })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatched thunk never ran")
	}
	l.Stop()
}

func TestScheduleOnceFiresAfterDelay(t *testing.T) {
	l := New()
	fired := make(chan struct{})
	l.ScheduleOnce(10, func() { close(fired) })

	go l.Run(func() bool { return true })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("one-shot timer never fired")
	}
	l.Stop()
}

func TestScheduleRepeatingFiresMultipleTimes(t *testing.T) {
	l := New()
	var mu sync.Mutex
	count := 0
	h := l.ScheduleRepeating(5, func() {
		mu.Lock()
		count++
		mu.Unlock()
	})

	go l.Run(func() bool { return true })

	time.Sleep(60 * time.Millisecond)
	l.Cancel(h)

	mu.Lock()
	got := count
	mu.Unlock()
	if got < 2 {
		t.Fatalf("expected the repeating timer to fire at least twice, got %d", got)
	}
	l.Stop()
}

func TestCancelPreventsFurtherFiring(t *testing.T) {
	l := New()
	var mu sync.Mutex
	count := 0
	h := l.ScheduleRepeating(5, func() {
		mu.Lock()
		count++
		mu.Unlock()
	})
	l.Cancel(h)

	go l.Run(func() bool { return true })
	time.Sleep(30 * time.Millisecond)
	l.Stop()

	mu.Lock()
	got := count
	mu.Unlock()
	if got != 0 {
		t.Fatalf("expected a cancelled timer never to fire, fired %d times", got)
	}
}

func TestStopEndsRun(t *testing.T) {
	l := New()
	returned := make(chan struct{})
	go func() {
		l.Run(nil)
		close(returned)
	}()
	l.Stop()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
