package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

func TestNewParallelExecutor(t *testing.T) {
	assert.Equal(t, domain.DefaultWorkers, NewParallelExecutor().limit)
}

func TestParallelExecutor_SequentialKeepsOrder(t *testing.T) {
	var order []int
	tasks := make([]domain.ExecutableTask, 5)
	for i := range tasks {
		tasks[i] = NewFuncTask("pair", func(ctx context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, NewParallelExecutor().Execute(context.Background(), tasks))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestParallelExecutor_Execute_EmptyTasks(t *testing.T) {
	assert.NoError(t, NewParallelExecutor().Execute(context.Background(), nil))
}

func TestParallelExecutor_Execute_AllTasksRun(t *testing.T) {
	for _, workers := range []int{1, 3, 0} {
		executor := NewParallelExecutor()
		executor.SetMaxConcurrency(workers)

		var counter int32
		tasks := make([]domain.ExecutableTask, 10)
		for i := range tasks {
			tasks[i] = NewFuncTask("task", func(ctx context.Context) error {
				atomic.AddInt32(&counter, 1)
				return nil
			})
		}

		require.NoError(t, executor.Execute(context.Background(), tasks))
		assert.Equal(t, int32(10), counter, "workers=%d", workers)
	}
}

func TestParallelExecutor_Execute_RespectsLimit(t *testing.T) {
	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(2)

	var running, peak int32
	tasks := make([]domain.ExecutableTask, 8)
	for i := range tasks {
		tasks[i] = NewFuncTask("task", func(ctx context.Context) error {
			now := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil
		})
	}

	require.NoError(t, executor.Execute(context.Background(), tasks))
	assert.LessOrEqual(t, peak, int32(2))
}

func TestParallelExecutor_Execute_Error(t *testing.T) {
	boom := errors.New("boom")
	tasks := []domain.ExecutableTask{
		NewFuncTask("ok", func(ctx context.Context) error { return nil }),
		NewFuncTask("bad", func(ctx context.Context) error { return boom }),
	}

	err := NewParallelExecutor().Execute(context.Background(), tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "bad: boom", err.Error())
}

func TestParallelExecutor_Execute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int32
	tasks := []domain.ExecutableTask{
		NewFuncTask("never", func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		}),
	}

	err := NewParallelExecutor().Execute(ctx, tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "never not started")
	assert.Equal(t, int32(0), ran)
}

func TestFuncTask_NoFunction(t *testing.T) {
	task := NewFuncTask("empty", nil)
	assert.Equal(t, "empty", task.Name())
	assert.Error(t, task.Execute(context.Background()))
}
