package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestWorkerSerializesJobs(t *testing.T) {
	w := newWorker("test")
	defer w.stop()

	var mu sync.Mutex
	active, maxActive := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.do(context.Background(), func() error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Fatalf("expected jobs to run one at a time, saw %d concurrently", maxActive)
	}
}

func TestWorkerRecoversPanics(t *testing.T) {
	w := newWorker("test")
	defer w.stop()

	err := w.do(context.Background(), func() error {
		panic("malformed page")
	})
	if err == nil {
		t.Fatal("expected panic to surface as error")
	}

	if err := w.do(context.Background(), func() error { return nil }); err != nil {
		t.Fatalf("worker should survive a panic, got %v", err)
	}
}

func TestWorkerStopped(t *testing.T) {
	w := newWorker("test")
	w.stop()
	w.stop()

	if err := w.do(context.Background(), func() error { return nil }); !errors.Is(err, ErrWorkerClosed) {
		t.Fatalf("expected ErrWorkerClosed, got %v", err)
	}
}
