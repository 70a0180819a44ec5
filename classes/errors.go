package classes

import (
	"errors"
	"fmt"
	"strings"
)

type StackFrame struct {
	Function string
}

// RuntimeError is the error surface of the runtime. Type carries one of
// the ErrType* kinds; Frames lists the in-progress method invocations,
// innermost first.
type RuntimeError struct {
	Type    string
	Message string
	Frames  []StackFrame
}

const (
	ErrTypeRuntime           = "RuntimeError"
	ErrTypeReservedName      = "ReservedNameError"
	ErrTypeMethodNotFound    = "MethodNotFoundError"
	ErrTypeInvalidSuperUsage = "InvalidSuperUsageError"
	ErrTypeInvalidArgument   = "InvalidArgumentError"
	ErrTypeStepQuotaExceeded = "StepQuotaExceededError"
)

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	renderFrame := func(frame StackFrame) {
		fmt.Fprintf(&b, "\n  at %s", frame.Function)
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

// Unwrap returns nil to satisfy the error unwrapping interface.
// RuntimeError is a terminal error that wraps the original error message
// but not the error itself.
func (re *RuntimeError) Unwrap() error {
	return nil
}

// newError builds a frameless RuntimeError for definition-time failures
// raised outside any Execution.
func newError(kind string, format string, args ...any) *RuntimeError {
	return &RuntimeError{Type: kind, Message: fmt.Sprintf(format, args...)}
}

func hasErrType(err error, kind string) bool {
	var re *RuntimeError
	return errors.As(err, &re) && re.Type == kind
}

func IsReservedName(err error) bool      { return hasErrType(err, ErrTypeReservedName) }
func IsMethodNotFound(err error) bool    { return hasErrType(err, ErrTypeMethodNotFound) }
func IsInvalidSuperUsage(err error) bool { return hasErrType(err, ErrTypeInvalidSuperUsage) }
func IsInvalidArgument(err error) bool   { return hasErrType(err, ErrTypeInvalidArgument) }
func IsStepQuotaExceeded(err error) bool { return hasErrType(err, ErrTypeStepQuotaExceeded) }
