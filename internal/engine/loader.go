package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
)

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Factory builds the engine once its worker location is known.
type Factory func(ctx context.Context, worker WorkerOptions) (Engine, error)

// Prober checks whether a worker resource exists.
type Prober interface {
	Head(ctx context.Context, path string) (bool, error)
}

// Loader acquires the engine exactly once, in the background.
type Loader struct {
	factory   Factory
	prober    Prober
	preferred string
	fallback  string

	once sync.Once
	done chan struct{}

	mu        sync.RWMutex
	state     State
	engine    Engine
	err       error
	workerSrc string
	listeners []func(State)
}

func NewLoader(factory Factory, prober Prober, preferred, fallback string) *Loader {
	return &Loader{
		factory:   factory,
		prober:    prober,
		preferred: preferred,
		fallback:  fallback,
		done:      make(chan struct{}),
	}
}

// OnStateChange registers fn to be called after every transition. fn runs on
// the loader goroutine and must not block.
func (l *Loader) OnStateChange(fn func(State)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// Start begins acquisition. Only the first call has any effect.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		l.transition(StateLoading, nil, nil)
		go l.load(ctx)
	})
}

func (l *Loader) load(ctx context.Context) {
	defer close(l.done)

	defer func() {
		if r := recover(); r != nil {
			l.transition(StateFailed, nil, errors.Errorf("engine panicked during init: %v", r))
		}
	}()

	src := l.resolveWorker(ctx)

	l.mu.Lock()
	l.workerSrc = src
	l.mu.Unlock()

	eng, err := l.factory(ctx, WorkerOptions{Src: src})
	if err != nil {
		slog.ErrorContext(ctx, "could not initialize document engine", slog.Any("error", errors.WithStack(err)))
		l.transition(StateFailed, nil, errors.WithStack(err))
		return
	}

	slog.DebugContext(ctx, "document engine ready", slog.String("worker", src))
	l.transition(StateReady, eng, nil)
}

// resolveWorker prefers the primary location and silently falls back on a
// miss or on any probe failure.
func (l *Loader) resolveWorker(ctx context.Context) string {
	if l.prober == nil || l.preferred == "" {
		return l.fallback
	}

	ok, err := l.prober.Head(ctx, l.preferred)
	if err != nil {
		slog.DebugContext(ctx, "worker probe failed", slog.String("path", l.preferred), slog.Any("error", err))
		return l.fallback
	}
	if !ok {
		return l.fallback
	}
	return l.preferred
}

func (l *Loader) transition(state State, eng Engine, err error) {
	l.mu.Lock()
	l.state = state
	l.engine = eng
	l.err = err
	listeners := append([]func(State){}, l.listeners...)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Wait blocks until the engine is ready or failed, or ctx is done.
func (l *Loader) Wait(ctx context.Context) (Engine, error) {
	if l.State() == StateUninitialized {
		return nil, errors.New("engine loader not started")
	}

	select {
	case <-l.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.engine, l.err
}

func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Engine returns the engine when ready, nil otherwise.
func (l *Loader) Engine() Engine {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.engine
}

func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

func (l *Loader) WorkerSrc() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.workerSrc
}
