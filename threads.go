package sketch5

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Threads runs named background goroutines on behalf of a sketch. Each
// thread gets its own context, cancelled by Stop. The first thread to fail
// cancels every other thread, and its error is reported by Err so the
// sketch can stop.
type Threads struct {
	base context.Context

	mu      sync.Mutex
	group   *errgroup.Group
	ctx     context.Context
	threads map[string]*thread
	seq     int
	err     error
}

type thread struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewThreads returns a manager whose threads stop when parent is done.
func NewThreads(parent context.Context) *Threads {
	m := &Threads{base: parent, threads: make(map[string]*thread)}
	m.group, m.ctx = errgroup.WithContext(parent)
	return m
}

// Launch runs f in a new thread and returns its name. An empty name gets a
// generated one. Launching under the name of a running thread stops that
// thread first and waits for it.
func (m *Threads) Launch(name string, f func(ctx context.Context) error) string {
	return m.launch(name, f)
}

// LaunchRepeating calls f over and over, starting a call at most every
// delay, until the thread is stopped or f fails.
func (m *Threads) LaunchRepeating(name string, delay time.Duration, f func(ctx context.Context) error) string {
	return m.launch(name, func(ctx context.Context) error {
		for {
			start := time.Now()
			if err := f(ctx); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(max(0, delay-time.Since(start))):
			}
		}
	})
}

// Promise holds the result of a thread started with LaunchPromise.
type Promise[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// IsReady reports whether the thread has finished.
func (p *Promise[T]) IsReady() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Result returns the thread's result. Before the thread finishes it returns
// the zero value and a nil error.
func (p *Promise[T]) Result() (T, error) {
	if !p.IsReady() {
		var zero T
		return zero, nil
	}
	return p.val, p.err
}

// Wait blocks until the thread finishes or ctx is done.
func (p *Promise[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// LaunchPromise runs f in a new thread and returns a Promise for its result.
func LaunchPromise[T any](m *Threads, name string, f func(ctx context.Context) (T, error)) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{})}
	m.launch(name, func(ctx context.Context) error {
		defer close(p.done)
		p.val, p.err = f(ctx)
		return p.err
	})
	return p
}

func (m *Threads) launch(name string, f func(ctx context.Context) error) string {
	m.mu.Lock()
	if name == "" {
		m.seq++
		name = fmt.Sprintf("thread-%d", m.seq)
	}
	old := m.threads[name]
	m.mu.Unlock()
	if old != nil {
		old.cancel()
		<-old.done
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ctx, cancel := context.WithCancel(m.ctx)
	t := &thread{cancel: cancel, done: make(chan struct{})}
	m.threads[name] = t
	m.group.Go(func() error {
		defer close(t.done)
		defer cancel()
		defer m.remove(name, t)
		err := f(ctx)
		if err == nil || (errors.Is(err, context.Canceled) && ctx.Err() != nil) {
			return nil
		}
		err = fmt.Errorf("sketch5: thread %q: %w", name, err)
		m.fail(err)
		return err
	})
	Logger().Debug("thread launched", "name", name)
	return name
}

func (m *Threads) remove(name string, t *thread) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.threads[name] == t {
		delete(m.threads, name)
	}
}

func (m *Threads) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err == nil {
		m.err = err
		Logger().Error("thread failed", "err", err)
	}
}

// Has reports whether a thread with the given name is running.
func (m *Threads) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.threads[name]
	return ok
}

// List returns the names of the running threads, sorted.
func (m *Threads) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.threads))
	for name := range m.threads {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Stop cancels the named thread's context. With wait it also blocks until
// the thread returns. Unknown names are ignored.
func (m *Threads) Stop(name string, wait bool) {
	m.mu.Lock()
	t := m.threads[name]
	delete(m.threads, name)
	m.mu.Unlock()
	if t == nil {
		return
	}
	t.cancel()
	if wait {
		<-t.done
	}
}

// StopAll cancels every thread. With wait it blocks until they have all
// returned and reports the first failure among them. Threads launched
// afterwards run normally.
func (m *Threads) StopAll(wait bool) error {
	m.mu.Lock()
	for _, t := range m.threads {
		t.cancel()
	}
	clear(m.threads)
	g := m.group
	m.group, m.ctx = errgroup.WithContext(m.base)
	m.mu.Unlock()
	if !wait {
		go g.Wait()
		return nil
	}
	return g.Wait()
}

// Err returns the first thread failure, or nil.
func (m *Threads) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
