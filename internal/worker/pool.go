package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job
type Result interface {
	GetError() error
}

type sequenced struct {
	seq    int
	result Result
}

type queued struct {
	seq int
	job Job
}

// Pool runs jobs on a fixed number of goroutines.
// Wait returns one slot per submitted job in submission order; a job that
// never ran because the context ended leaves its slot nil.
type Pool struct {
	workers    int
	jobQueue   chan queued
	results    chan sequenced
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	submitted  int

	collected []sequenced
	collectWG sync.WaitGroup
}

// NewPool creates a pool bound to ctx; workers <= 0 means one worker
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan queued, workers*2),
		results:    make(chan sequenced, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers and the result collector.
// Results are drained as they arrive so workers never stall on a full results channel.
func (p *Pool) Start() {
	p.collectWG.Add(1)
	go func() {
		defer p.collectWG.Done()
		for r := range p.results {
			p.collected = append(p.collected, r)
		}
	}()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker drains the queue until it is closed. Once the context ends, queued
// jobs are skipped but a job already running still delivers its result.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.jobQueue {
		if p.ctx.Err() != nil {
			continue
		}
		p.results <- sequenced{seq: item.seq, result: item.job.Execute(p.ctx)}
	}
}

// Submit queues a job. Once the context has ended the job is not queued,
// but it still takes a slot in the Wait result.
// Submit must not be called concurrently with itself or after Wait.
func (p *Pool) Submit(job Job) {
	item := queued{seq: p.submitted, job: job}
	p.submitted++
	select {
	case <-p.ctx.Done():
	case p.jobQueue <- item:
	}
}

// Wait closes the queue, waits for the workers and returns len(submitted)
// results, nil where a job never ran
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	close(p.results)
	p.collectWG.Wait()
	p.cancelFunc()

	results := make([]Result, p.submitted)
	for _, r := range p.collected {
		results[r.seq] = r.result
	}
	return results
}
