// Package platform provides UI thread identity and a single-goroutine task loop.
//
// Go has no first-class thread identity. A "thread" here is the goroutine
// that owns the view tree; ownership is checked by goroutine id so that
// callers that hop goroutines fail fast instead of racing on the tree.
package platform

import "github.com/petermattis/goid"

// ThreadChecker reports whether the caller runs on the thread it guards.
type ThreadChecker interface {
	IsCurrent() bool
}

// Thread identifies one goroutine.
type Thread struct {
	id int64
}

// CurrentThread returns the identity of the calling goroutine.
func CurrentThread() Thread {
	return Thread{id: goid.Get()}
}

// IsCurrent reports whether the caller runs on t.
func (t Thread) IsCurrent() bool {
	return t.id != 0 && t.id == goid.Get()
}

// ID returns the goroutine id, or 0 for the zero Thread.
func (t Thread) ID() int64 {
	return t.id
}

// AnyThread is a ThreadChecker that accepts every caller.
// Useful for hosts that serialize access themselves.
type AnyThread struct{}

// IsCurrent always returns true.
func (AnyThread) IsCurrent() bool { return true }
