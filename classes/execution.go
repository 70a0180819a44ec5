package classes

import (
	"context"
	"fmt"
)

// CallOptions overrides engine limits for one boundary call. Zero fields
// fall back to the engine config.
type CallOptions struct {
	StepQuota      int
	RecursionLimit int
}

// Execution tracks one boundary call and every nested method invocation it
// triggers: shared step counter, call-stack frames, recursion cap, context.
// An Execution is single-threaded; the engine provides no internal locking.
type Execution struct {
	engine       *Engine
	ctx          context.Context
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame
}

type callFrame struct {
	Function string
}

func (e *Engine) newExecution(ctx context.Context, opts CallOptions) *Execution {
	quota := e.config.StepQuota
	if opts.StepQuota > 0 {
		quota = opts.StepQuota
	}
	recursionCap := e.config.RecursionLimit
	if opts.RecursionLimit > 0 {
		recursionCap = opts.RecursionLimit
	}
	return &Execution{
		engine:       e,
		ctx:          ctx,
		quota:        quota,
		recursionCap: recursionCap,
	}
}

// Context returns the context the boundary call was made with.
func (exec *Execution) Context() context.Context {
	if exec.ctx == nil {
		return context.Background()
	}
	return exec.ctx
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return exec.errorf(ErrTypeStepQuotaExceeded, "step quota exceeded (%d)", exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) pushFrame(function string) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.errorf(ErrTypeRuntime, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

func (exec *Execution) errorf(kind string, format string, args ...any) error {
	frames := make([]StackFrame, 0, len(exec.callStack))
	for i := len(exec.callStack) - 1; i >= 0; i-- {
		frames = append(frames, StackFrame(exec.callStack[i]))
	}
	return &RuntimeError{Type: kind, Message: fmt.Sprintf(format, args...), Frames: frames}
}

func (exec *Execution) wrapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*RuntimeError); ok {
		return err
	}
	return exec.errorf(ErrTypeRuntime, "%s", err.Error())
}
