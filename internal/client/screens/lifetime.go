package screens

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// Lifetime scopes the asynchronous work of one mounted screen.
type Lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger logging.Logger

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

func NewLifetime(parent context.Context, logger logging.Logger) *Lifetime {
	if logger == nil {
		logger = logging.Discard()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Lifetime{ctx: ctx, cancel: cancel, logger: logger}
}

func (l *Lifetime) Context() context.Context {
	return l.ctx
}

func (l *Lifetime) Alive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed
}

// Close cancels outstanding work and waits for it to return. Results that
// arrive afterwards are dropped. Close is idempotent.
func (l *Lifetime) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	l.cancel()
	l.wg.Wait()
}

// Task is a handle on work started by Launch.
type Task struct {
	done chan struct{}
}

func doneTask() *Task {
	t := &Task{done: make(chan struct{})}
	close(t.done)
	return t
}

func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the work has finished and its result was applied or
// dropped.
func (t *Task) Wait() { <-t.done }

// Launch runs work in its own goroutine with the lifetime's context and
// hands the result to apply, unless the lifetime was closed in the
// meantime. apply calls are serialised with Close.
func Launch[T any](l *Lifetime, name string, work func(ctx context.Context) (T, error), apply func(T, error)) *Task {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.logger.Debug(l.ctx, "task not started after teardown", "task", name)
		return doneTask()
	}
	l.wg.Add(1)
	l.mu.Unlock()

	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer l.wg.Done()

		v, err := work(l.ctx)

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			l.logger.Debug(context.Background(), "task result discarded after teardown", "task", name, "error", err)
			return
		}
		apply(v, err)
	}()
	return t
}
