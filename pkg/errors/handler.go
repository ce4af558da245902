package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// handler holds the installed ErrorHandler. It is never empty.
var handler atomic.Pointer[ErrorHandler]

func init() {
	SetHandler(nil)
}

// SetHandler installs h as the handler for reported errors and recovered
// panics and returns the one it replaces. Nil restores a LogHandler on
// slog.Default().
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	if prev := handler.Swap(&h); prev != nil {
		return *prev
	}
	return nil
}

// CurrentHandler returns the installed handler.
func CurrentHandler() ErrorHandler {
	return *handler.Load()
}

// Report hands err to the installed handler. The first StatusError in the
// chain is reported as is; any other error is wrapped as KindUnknown under op.
// Nil errors are ignored.
func Report(op string, err error) {
	if err == nil {
		return
	}
	var se *StatusError
	if !stderrors.As(err, &se) {
		se = New(op, KindUnknown, "", err)
	}
	if se.Timestamp.IsZero() {
		se.Timestamp = time.Now()
	}
	CurrentHandler().HandleError(se)
}

// ReportPanic hands a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err != nil {
		CurrentHandler().HandlePanic(err)
	}
}

// Recover reports a panic of the calling function. Use it deferred:
//
//	defer errors.Recover("platform.Looper")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(newPanicError(op, r))
	}
}

// RecoverWithCallback is Recover followed by callback(r), so the caller can
// unwind its own state after a panic.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		ReportPanic(newPanicError(op, r))
		if callback != nil {
			callback(r)
		}
	}
}

func newPanicError(op string, r any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: captureStack(4),
		Timestamp:  time.Now(),
	}
}

// CaptureStack returns the stack of its caller, one "function\n\tfile:line"
// entry per frame.
func CaptureStack() string {
	return captureStack(3)
}

func captureStack(skip int) string {
	pcs := make([]uintptr, 32)
	pcs = pcs[:runtime.Callers(skip, pcs)]
	if len(pcs) == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for more := true; more; {
		var frame runtime.Frame
		frame, more = frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
	}
	return sb.String()
}
