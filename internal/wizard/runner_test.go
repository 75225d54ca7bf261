package wizard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_SuccessSettlesOnce(t *testing.T) {
	var gate Gate
	r := NewRunner("echo", &gate, func(_ context.Context, in string) (string, error) {
		return in + "!", nil
	})

	var settled []Outcome[string]
	out := r.Run(context.Background(), "hi", func(o Outcome[string]) {
		settled = append(settled, o)
	})

	require.True(t, out.OK())
	assert.Equal(t, "hi!", out.Value)
	require.Len(t, settled, 1)
	assert.Equal(t, out, settled[0])
	assert.False(t, gate.Busy(), "gate must be released after completion")
}

func TestRunner_ClassifiesFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"rejected", fmt.Errorf("search: %w", ErrRejected), FailureRejected},
		{"transport", errors.New("connection refused"), FailureTransport},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gate Gate
			r := NewRunner("op", &gate, func(context.Context, int) (int, error) {
				return 0, tc.err
			})
			settles := 0
			out := r.Run(context.Background(), 1, func(Outcome[int]) { settles++ })

			require.NotNil(t, out.Failure)
			assert.Equal(t, tc.want, out.Failure.Kind)
			assert.ErrorIs(t, out.Err(), tc.err)
			assert.Equal(t, 1, settles)
		})
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	var gate Gate
	r := NewRunner("op", &gate, func(ctx context.Context, _ int) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	settles := 0
	out := r.Run(ctx, 1, func(Outcome[int]) { settles++ })

	require.NotNil(t, out.Failure)
	assert.Equal(t, FailureCancelled, out.Failure.Kind)
	assert.Equal(t, 1, settles)
	assert.False(t, gate.Busy())
}

func TestRunner_DeadlineExceeded(t *testing.T) {
	var gate Gate
	r := NewRunner("op", &gate, func(ctx context.Context, _ int) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	out := r.Run(ctx, 1, func(Outcome[int]) {})

	require.NotNil(t, out.Failure)
	assert.ErrorIs(t, out.Failure.Err, context.DeadlineExceeded)
	assert.Equal(t, FailureCancelled, out.Failure.Kind)
}

func TestRunner_PanicIsSettled(t *testing.T) {
	var gate Gate
	r := NewRunner("op", &gate, func(context.Context, int) (int, error) {
		panic("boom")
	})

	settles := 0
	out := r.Run(context.Background(), 1, func(Outcome[int]) { settles++ })

	require.NotNil(t, out.Failure)
	assert.Equal(t, FailureTransport, out.Failure.Kind)
	assert.Contains(t, out.Failure.Error(), "boom")
	assert.Equal(t, 1, settles)
	assert.False(t, gate.Busy())
}

func TestRunner_BusyWhileInFlight(t *testing.T) {
	var gate Gate
	op := newBlockingOp[string, string]()
	first := NewRunner("first", &gate, op.op)
	second := NewRunner("second", &gate, op.op)

	done := make(chan Outcome[string], 1)
	go func() {
		done <- first.Run(context.Background(), "a", nil)
	}()
	op.waitStarted(t)
	assert.True(t, second.InFlight())

	settled := false
	out := second.Run(context.Background(), "b", func(Outcome[string]) { settled = true })
	assert.True(t, out.Busy)
	assert.ErrorIs(t, out.Err(), ErrBusy)
	assert.False(t, settled, "busy calls must not settle")

	op.finish("ok", nil)
	got := <-done
	assert.True(t, got.OK())
	assert.Equal(t, int32(1), op.calls.Load())
}

func TestRunner_OnStartRunsAfterAcquire(t *testing.T) {
	var gate Gate
	var order []string
	r := NewRunner("op", &gate, func(context.Context, int) (int, error) {
		order = append(order, "op")
		return 0, nil
	}).OnStart(func() {
		order = append(order, "start")
	})

	r.Run(context.Background(), 1, func(Outcome[int]) { order = append(order, "settle") })
	assert.Equal(t, []string{"start", "op", "settle"}, order)

	require.True(t, gate.TryAcquire())
	defer gate.Release()
	order = nil
	r.Run(context.Background(), 1, nil)
	assert.Empty(t, order, "busy runs must not call OnStart")
}
