package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

// ParallelExecutorImpl runs tasks on an errgroup. With a limit of 1 the
// tasks run one at a time in slice order.
type ParallelExecutorImpl struct {
	limit int
}

func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{limit: domain.DefaultWorkers}
}

// SetMaxConcurrency bounds the tasks in flight; n <= 0 removes the bound
func (pe *ParallelExecutorImpl) SetMaxConcurrency(n int) {
	pe.limit = n
}

// Execute waits for every started task. The first error cancels the
// context of the rest, and tasks not yet started are skipped.
func (pe *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	g, gctx := errgroup.WithContext(ctx)
	if pe.limit > 0 {
		g.SetLimit(pe.limit)
	}
	for _, task := range tasks {
		g.Go(func() error { return runTask(gctx, task) })
	}
	return g.Wait()
}

func runTask(ctx context.Context, task domain.ExecutableTask) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s not started: %w", task.Name(), err)
	}
	if err := task.Execute(ctx); err != nil {
		return fmt.Errorf("%s: %w", task.Name(), err)
	}
	return nil
}

// FuncTask adapts a function to domain.ExecutableTask
type FuncTask struct {
	name string
	fn   func(context.Context) error
}

func NewFuncTask(name string, fn func(context.Context) error) *FuncTask {
	return &FuncTask{name: name, fn: fn}
}

func (t *FuncTask) Name() string {
	return t.name
}

func (t *FuncTask) Execute(ctx context.Context) error {
	if t.fn == nil {
		return fmt.Errorf("task %s has no function", t.name)
	}
	return t.fn(ctx)
}
