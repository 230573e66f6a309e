package channel

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const minPoolLimit = 1

// Executor runs async send tasks. Execute must not block the caller for the
// duration of the task.
type Executor interface {
	Execute(task func())
}

// ExecutorFunc adapts a plain function to Executor.
type ExecutorFunc func(task func())

func (f ExecutorFunc) Execute(task func()) { f(task) }

// GoExecutor starts one goroutine per task.
type GoExecutor struct{}

func (GoExecutor) Execute(task func()) { go task() }

// DefaultExecutor is the executor senders use when none is configured. It is
// stateless, so every sender may share it.
func DefaultExecutor() Executor { return GoExecutor{} }

// PoolExecutor runs at most limit tasks at a time. Tasks beyond the limit
// wait for a slot on their own goroutine, so Execute returns immediately.
type PoolExecutor struct {
	sem *semaphore.Weighted

	mu       sync.Mutex
	draining bool
	group    errgroup.Group
}

func NewPoolExecutor(limit int) *PoolExecutor {
	if limit < minPoolLimit {
		limit = minPoolLimit
	}

	return &PoolExecutor{sem: semaphore.NewWeighted(int64(limit))}
}

func (p *PoolExecutor) Execute(task func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// The group must not grow while Wait is blocked on it.
	if p.draining {
		go p.run(task)
		return
	}

	p.group.Go(func() error {
		p.run(task)
		return nil
	})
}

// Wait blocks until every task submitted before the call has finished. Tasks
// submitted afterwards still run within the limit but are not waited for.
func (p *PoolExecutor) Wait() {
	p.mu.Lock()
	p.draining = true
	p.mu.Unlock()

	_ = p.group.Wait()
}

func (p *PoolExecutor) run(task func()) {
	// Acquire only fails on context cancellation.
	_ = p.sem.Acquire(context.Background(), 1)
	defer p.sem.Release(1)

	task()
}
