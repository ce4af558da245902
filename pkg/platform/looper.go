package platform

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"

	"github.com/go-drift/pagestatus/pkg/errors"
)

// ErrLooperRunning is returned by Run when the looper is already running.
var ErrLooperRunning = stderrors.New("looper already running")

// Looper runs posted tasks one at a time on the goroutine that called Run.
// That goroutine is the UI thread for as long as Run has not returned.
type Looper struct {
	mu      sync.Mutex
	tasks   []func()
	closed  bool
	onPanic func(r any)
	timers  map[*time.Timer]struct{}

	wake     chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
	thread   atomic.Int64
}

// NewLooper creates a looper. Call Run to start processing tasks.
func NewLooper() *Looper {
	return &Looper{
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		timers: make(map[*time.Timer]struct{}),
	}
}

// Run binds the calling goroutine as the UI thread and processes tasks until
// ctx is done or Quit is called. Tasks posted before Run are processed first.
func (l *Looper) Run(ctx context.Context) error {
	if !l.thread.CompareAndSwap(0, goid.Get()) {
		return ErrLooperRunning
	}
	defer l.thread.Store(0)

	for {
		l.drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			l.drain()
			return nil
		case <-l.wake:
		}
	}
}

// Quit stops the looper after the tasks already queued have run.
// Delayed posts that have not fired are dropped, and posts made after Quit
// are rejected.
func (l *Looper) Quit() {
	l.quitOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		for t := range l.timers {
			t.Stop()
		}
		clear(l.timers)
		l.mu.Unlock()
		close(l.quit)
	})
}

// Post queues fn to run on the UI thread.
// Returns false if fn is nil or the looper has quit.
func (l *Looper) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// PostDelayed queues fn to run on the UI thread after d.
// The returned function cancels the post if it has not been queued yet and
// reports whether it did.
func (l *Looper) PostDelayed(fn func(), d time.Duration) (cancel func() bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if fn == nil || l.closed {
		return func() bool { return false }
	}
	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		if l.untrack(timer) {
			l.Post(fn)
		}
	})
	l.timers[timer] = struct{}{}
	return func() bool {
		if !l.untrack(timer) {
			return false
		}
		timer.Stop()
		return true
	}
}

// untrack forgets timer and reports whether it was still pending.
func (l *Looper) untrack(timer *time.Timer) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.timers[timer]; !ok {
		return false
	}
	delete(l.timers, timer)
	return true
}

// IsCurrent reports whether the caller runs on the looper's goroutine.
func (l *Looper) IsCurrent() bool {
	id := l.thread.Load()
	return id != 0 && id == goid.Get()
}

func (l *Looper) drain() {
	for {
		l.mu.Lock()
		if len(l.tasks) == 0 {
			l.mu.Unlock()
			return
		}
		task := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		l.mu.Unlock()

		l.runTask(task)
	}
}

// OnPanic sets a function called on the UI thread with the value of every
// task that panics, after the panic was reported. The looper keeps running.
func (l *Looper) OnPanic(fn func(r any)) {
	l.mu.Lock()
	l.onPanic = fn
	l.mu.Unlock()
}

func (l *Looper) runTask(task func()) {
	l.mu.Lock()
	onPanic := l.onPanic
	l.mu.Unlock()
	defer errors.RecoverWithCallback("platform.Looper", onPanic)
	task()
}
