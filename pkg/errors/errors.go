// Package errors provides structured error handling for page status transformers.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindUnknownStatus indicates a transition to a status that was never registered.
	KindUnknownStatus
	// KindWrongThread indicates a mutating call made off the UI-owning thread.
	KindWrongThread
	// KindMisconfigured indicates a status registered through the wrong builder.
	KindMisconfigured
	// KindDetachedAnchor indicates substitution against a view with no parent.
	KindDetachedAnchor
	// KindUnexpectedParent indicates status content attached outside its slot.
	KindUnexpectedParent
	// KindInflate indicates a layout inflation failure.
	KindInflate
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnknownStatus:
		return "unknown_status"
	case KindWrongThread:
		return "wrong_thread"
	case KindMisconfigured:
		return "misconfigured"
	case KindDetachedAnchor:
		return "detached_anchor"
	case KindUnexpectedParent:
		return "unexpected_parent"
	case KindInflate:
		return "inflate"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. A *StatusError matches the sentinel of its Kind.
var (
	ErrUnknownStatus    = stderrors.New("unknown status")
	ErrWrongThread      = stderrors.New("called off the UI thread")
	ErrMisconfigured    = stderrors.New("misconfigured status")
	ErrDetachedAnchor   = stderrors.New("anchor view has no parent")
	ErrUnexpectedParent = stderrors.New("status view has an unexpected parent")
	ErrInflate          = stderrors.New("layout inflation failed")
)

var sentinels = map[ErrorKind]error{
	KindUnknownStatus:    ErrUnknownStatus,
	KindWrongThread:      ErrWrongThread,
	KindMisconfigured:    ErrMisconfigured,
	KindDetachedAnchor:   ErrDetachedAnchor,
	KindUnexpectedParent: ErrUnexpectedParent,
	KindInflate:          ErrInflate,
}

// StatusError represents a structured error raised by the status machinery.
type StatusError struct {
	// Op is the operation that failed (e.g., "status.Transform").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Status is the status name involved, if any.
	Status string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New creates a StatusError stamped with the current time.
// A nil err is replaced by the sentinel for kind.
func New(op string, kind ErrorKind, status string, err error) *StatusError {
	if err == nil {
		err = sentinels[kind]
	}
	return &StatusError{
		Op:        op,
		Kind:      kind,
		Status:    status,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Errorf creates a StatusError whose underlying error is a formatted message.
func Errorf(op string, kind ErrorKind, status string, format string, args ...any) *StatusError {
	return New(op, kind, status, fmt.Errorf(format, args...))
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s [%s] status=%q: %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *StatusError) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && target == sentinel
}

// KindOf returns the kind of the first StatusError in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) ErrorKind {
	var se *StatusError
	if stderrors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "platform.Looper").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported through Report and ReportPanic.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *StatusError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
