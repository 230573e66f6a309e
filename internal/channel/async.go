package channel

import (
	"context"
	"sync"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
)

// Future holds the eventual outcome of an async send.
type Future struct {
	done   chan struct{}
	once   sync.Once
	result domain.SendResult
	err    error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(result domain.SendResult, err error) {
	f.once.Do(func() {
		f.result = result
		f.err = err
		close(f.done)
	})
}

// Done is closed once the send finished or was abandoned.
func (f *Future) Done() <-chan struct{} { return f.done }

// Ready reports whether the outcome is available without blocking.
func (f *Future) Ready() bool {
	_, _, ok := f.Result()
	return ok
}

// Result returns the outcome without blocking. ok is false while the send is
// still pending.
func (f *Future) Result() (result domain.SendResult, err error, ok bool) {
	select {
	case <-f.done:
		return f.result, f.err, true
	default:
		return domain.SendResult{}, nil, false
	}
}

// Await waits for the outcome or for ctx to end. A resolved outcome wins over
// a done ctx. Giving up on ctx does not stop a send that is already running.
func (f *Future) Await(ctx context.Context) (domain.SendResult, error) {
	if result, err, ok := f.Result(); ok {
		return result, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return domain.SendResult{}, ctx.Err()
	}
}

// SendAsync schedules Send on the sender's configured executor.
func (s *ChannelSender[T]) SendAsync(ctx context.Context, notification domain.Notification) *Future {
	return s.SendAsyncOn(ctx, notification, nil)
}

// SendAsyncOn schedules Send on executor, or on the sender's own executor when
// executor is nil. If ctx ends before the task starts, Send is skipped and the
// future resolves with ctx.Err().
func (s *ChannelSender[T]) SendAsyncOn(ctx context.Context, notification domain.Notification, executor Executor) *Future {
	if ctx == nil {
		ctx = context.Background()
	}
	if executor == nil {
		executor = s.executor
	}

	channelName := s.channel.String()
	s.metrics.IncAsyncInFlight(channelName)

	future := newFuture()
	executor.Execute(func() {
		defer s.metrics.DecAsyncInFlight(channelName)

		if err := ctx.Err(); err != nil {
			future.resolve(domain.SendResult{}, err)
			return
		}
		future.resolve(s.Send(ctx, notification))
	})

	return future
}
