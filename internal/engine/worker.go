package engine

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var ErrWorkerClosed = errors.New("engine worker closed")

// worker serializes access to the PDF reader, which is not safe for
// concurrent use.
type worker struct {
	src   string
	jobs  chan func()
	quit  chan struct{}
	close sync.Once
}

func newWorker(src string) *worker {
	w := &worker{
		src:  src,
		jobs: make(chan func()),
		quit: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *worker) run() {
	for {
		select {
		case job := <-w.jobs:
			job()
		case <-w.quit:
			return
		}
	}
}

// do runs fn on the worker and waits for it. A panic inside fn is returned
// as an error. If ctx ends first, do returns without waiting and fn's
// result is discarded.
func (w *worker) do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	job := func() {
		defer func() {
			if r := recover(); r != nil {
				result <- errors.Errorf("engine: %v", r)
			}
		}()
		result <- fn()
	}

	select {
	case <-w.quit:
		return ErrWorkerClosed
	default:
	}

	select {
	case w.jobs <- job:
	case <-w.quit:
		return ErrWorkerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *worker) stop() {
	w.close.Do(func() { close(w.quit) })
}
