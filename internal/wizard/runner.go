package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mark3labs/chanforum/internal/logger"
)

// Operation is a remote call bound to a wizard step.
type Operation[I, O any] func(ctx context.Context, in I) (O, error)

// Gate is the single-flight slot shared by every runner of one wizard.
// At most one operation holds it at a time.
type Gate struct {
	held atomic.Bool
}

// TryAcquire takes the slot if it is free.
func (g *Gate) TryAcquire() bool {
	return g.held.CompareAndSwap(false, true)
}

// Release frees the slot.
func (g *Gate) Release() {
	g.held.Store(false)
}

// Busy reports whether an operation currently holds the slot.
func (g *Gate) Busy() bool {
	return g.held.Load()
}

// Runner executes one operation per invocation under a shared Gate.
type Runner[I, O any] struct {
	name    string
	gate    *Gate
	op      Operation[I, O]
	onStart func()
}

// NewRunner binds op to gate. name is used in log lines only.
func NewRunner[I, O any](name string, gate *Gate, op Operation[I, O]) *Runner[I, O] {
	return &Runner[I, O]{name: name, gate: gate, op: op}
}

// OnStart registers fn to run after the gate is acquired and before the
// operation is issued.
func (r *Runner[I, O]) OnStart(fn func()) *Runner[I, O] {
	r.onStart = fn
	return r
}

// InFlight reports whether the runner's gate is held.
func (r *Runner[I, O]) InFlight() bool {
	return r.gate.Busy()
}

// Run executes the operation once. If another operation holds the gate the
// call returns Busy immediately and neither the operation nor settle runs.
// Otherwise settle is called exactly once with the outcome before Run
// returns, on every exit path including a panic inside the operation.
// Run never retries.
func (r *Runner[I, O]) Run(ctx context.Context, in I, settle func(Outcome[O])) (out Outcome[O]) {
	if !r.gate.TryAcquire() {
		logger.Debug("wizard: %s rejected, another operation is in flight", r.name)
		return Busy[O]()
	}

	var once sync.Once
	finish := func(o Outcome[O]) {
		once.Do(func() {
			r.gate.Release()
			if settle != nil {
				settle(o)
			}
		})
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error("wizard: %s panicked: %v", r.name, p)
			out = Failure[O](FailureTransport, fmt.Errorf("%s: panic: %v", r.name, p))
			finish(out)
		}
	}()

	logger.Debug("wizard: %s started", r.name)
	if r.onStart != nil {
		r.onStart()
	}
	v, err := r.op(ctx, in)
	if err != nil {
		out = Failure[O](classify(ctx, err), err)
		logger.Warn("wizard: %s failed (%s): %v", r.name, out.Failure.Kind, err)
	} else {
		out = Success(v)
		logger.Debug("wizard: %s succeeded", r.name)
	}
	finish(out)
	return out
}

func classify(ctx context.Context, err error) FailureKind {
	switch {
	case ctx.Err() != nil:
		return FailureCancelled
	case errors.Is(err, ErrRejected):
		return FailureRejected
	default:
		return FailureTransport
	}
}
