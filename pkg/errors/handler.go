package errors

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

type handlerRef struct {
	h ErrorHandler
}

var handler atomic.Pointer[handlerRef]

func init() {
	handler.Store(&handlerRef{h: &LogHandler{}})
}

// SetHandler installs the global error handler and returns the previous one.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	return handler.Swap(&handlerRef{h: h}).h
}

// Handler returns the installed error handler.
func Handler() ErrorHandler {
	return handler.Load().h
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *ArborError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Guard runs fn. A panic escaping fn is reported with op and node and then
// continues to unwind, so callers still observe it.
func Guard(op string, node fmt.Stringer, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			ReportPanic(&PanicError{
				Op:         op,
				Node:       node.String(),
				Value:      r,
				StackTrace: CaptureStack(),
			})
			panic(r)
		}
	}()
	fn()
}

// CaptureStack returns the current call stack as a string, starting at
// the caller of CaptureStack.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteByte('\n')
		if !more {
			break
		}
	}
	return sb.String()
}
