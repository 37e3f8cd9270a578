// Package errors provides structured error handling for the arbor engine.
package errors

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindStructure indicates an invalid edit of the widget tree, such as
	// reparenting a widget under its own descendant.
	KindStructure
	// KindSchedule indicates the update dependency graph could not be ordered.
	KindSchedule
	// KindReentrancy indicates a mutation while the tree was locked.
	KindReentrancy
	// KindConfig indicates invalid widget or link configuration.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindStructure:
		return "structure"
	case KindSchedule:
		return "schedule"
	case KindReentrancy:
		return "reentrancy"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ArborError represents a structured error in the arbor engine.
type ArborError struct {
	// Op is the operation that failed (e.g., "core.Tree.Frame").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Widget names the widget involved, if any.
	Widget string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ArborError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ArborError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "Run").
	Op string
	// Node names the update node whose callback panicked, if any.
	Node string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	switch {
	case e.Op != "" && e.Node != "":
		return fmt.Sprintf("panic in %s (%s): %v", e.Op, e.Node, e.Value)
	case e.Op != "":
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// StructureError reports an edit that would corrupt the widget tree.
type StructureError struct {
	// Op is the edit that was rejected (e.g., "Reparent").
	Op string
	// Widget is the widget being moved or removed.
	Widget string
	// Target is the intended new parent, if any.
	Target string
	// Reason describes the violated rule.
	Reason string
}

func (e *StructureError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s under %s: %s", e.Op, e.Widget, e.Target, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Widget, e.Reason)
}

// LoopError is one dependency cycle in the update graph.
type LoopError struct {
	// Members lists the cycle's nodes in discovery order.
	Members []string
}

func (e *LoopError) Error() string {
	if len(e.Members) == 0 {
		return "empty loop"
	}
	return strings.Join(e.Members, " -> ") + " -> " + e.Members[0]
}

// CycleError reports every cycle found while building the update schedule.
// Each loop is available as a *LoopError through errors.As.
type CycleError struct {
	Loops [][]string

	errs *multierror.Error
}

// NewCycleError builds a CycleError from loops given as member name lists.
func NewCycleError(loops [][]string) *CycleError {
	var merr *multierror.Error
	for _, loop := range loops {
		merr = multierror.Append(merr, &LoopError{Members: loop})
	}
	if merr != nil {
		merr.ErrorFormat = formatLoops
	}
	return &CycleError{Loops: loops, errs: merr}
}

func (e *CycleError) Error() string {
	if e.errs == nil {
		return "update graph contains a cycle"
	}
	return e.errs.Error()
}

// Unwrap exposes the individual loops.
func (e *CycleError) Unwrap() []error {
	if e.errs == nil {
		return nil
	}
	return e.errs.WrappedErrors()
}

func formatLoops(errs []error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "update graph contains %d cycle(s):", len(errs))
	for _, err := range errs {
		sb.WriteString("\n\t* ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// ReentrancyError is raised (as a panic value) when the tree is mutated
// while it is locked for update or render.
type ReentrancyError struct {
	// Op is the mutating operation.
	Op string
	// Phase is the phase the tree was in.
	Phase string
}

func (e *ReentrancyError) Error() string {
	return fmt.Sprintf("%s called while tree is %s", e.Op, e.Phase)
}

// ConfigError reports invalid widget or link configuration.
type ConfigError struct {
	// Op is the operation that was given the bad input.
	Op string
	// Field names the offending input.
	Field string
	// Reason describes the problem.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ArborError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
