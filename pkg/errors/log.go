package errors

import (
	"github.com/hashicorp/go-hclog"
)

// LogHandler is an ErrorHandler that writes through an hclog logger.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Logger receives the records. A nil Logger uses hclog.Default().
	Logger hclog.Logger
}

func (h *LogHandler) logger() hclog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return hclog.Default().Named("arbor")
}

// HandleError logs an ArborError.
func (h *LogHandler) HandleError(err *ArborError) {
	if err == nil {
		return
	}
	args := []any{"op", err.Op, "kind", err.Kind.String(), "error", err.Err}
	if err.Widget != "" {
		args = append(args, "widget", err.Widget)
	}
	if h.Verbose && err.StackTrace != "" {
		args = append(args, "stack", err.StackTrace)
	}
	h.logger().Error("engine error", args...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	args := []any{"value", err.Value}
	if err.Op != "" {
		args = append(args, "op", err.Op)
	}
	if err.Node != "" {
		args = append(args, "node", err.Node)
	}
	if h.Verbose && err.StackTrace != "" {
		args = append(args, "stack", err.StackTrace)
	}
	h.logger().Error("callback panicked", args...)
}
