package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countingJob struct {
	counter *int64
	fail    bool
}

type countingResult struct {
	err error
}

func (r *countingResult) GetError() error { return r.err }

func (j *countingJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	if j.fail {
		return &countingResult{err: errors.New("job failed")}
	}
	return &countingResult{}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var executed int64
	for i := 0; i < 20; i++ {
		pool.Submit(&countingJob{counter: &executed})
	}

	results := pool.Wait()

	if atomic.LoadInt64(&executed) != 20 {
		t.Errorf("expected 20 executions, got %d", executed)
	}
	if len(results) != 20 {
		t.Errorf("expected 20 results, got %d", len(results))
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("unexpected error: %v", r.GetError())
		}
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed int64
	pool.Submit(&countingJob{counter: &executed})
	pool.Submit(&countingJob{counter: &executed, fail: true})
	pool.Submit(&countingJob{counter: &executed})

	results := pool.Wait()

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed result, got %d", failed)
	}
}

func TestPool_ZeroWorkers(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	var executed int64
	pool.Submit(&countingJob{counter: &executed})

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("expected 1 result with clamped worker count, got %d", len(results))
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	// Shutdown without submitting must not hang or panic
	pool.Shutdown()

	// Submit after shutdown is a no-op
	var executed int64
	pool.Submit(&countingJob{counter: &executed})
	if atomic.LoadInt64(&executed) != 0 {
		t.Error("expected no execution after shutdown")
	}
}
