package worker

import (
	"context"
	"sync"
)

// Job is one unit of batch work, typically a single genemap file.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one executed job. A non-nil error marks the
// job failed without stopping the rest of the batch.
type Result interface {
	GetError() error
}

// Pool fans a batch of jobs out over a fixed number of workers. Each
// job runs its own single-threaded pipeline, so the pool bounds memory
// and CPU without affecting per-file output.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool. A non-positive worker count is clamped to 1,
// which degrades to sequential processing.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		results:  make(chan Result, workers*2),

		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers. Jobs submitted before Start wait in the
// queue.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. After Shutdown it is a no-op.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait closes the queue, drains every result, and returns them. Result
// order follows completion, not submission; batch callers report per
// file, so ordering does not matter.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown cancels in-flight jobs and stops the workers. Used on
// timeout; a normal batch run ends through Wait.
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
