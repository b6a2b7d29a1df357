package worker

import (
	"context"
	"sync"

	"github.com/ppiankov/cardlens/internal/model"
)

// ScanFunc scans a single card image file and returns its contact record.
type ScanFunc func(ctx context.Context, path string) (*model.Card, error)

// Result pairs a scanned image path with its card or error.
type Result struct {
	Path string
	Card *model.Card
	Err  error
}

// Pool runs card scans concurrently over a fixed number of workers.
type Pool struct {
	workers   int
	scan      ScanFunc
	jobs      chan string
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeJobs sync.Once
	closeOnce sync.Once
}

// NewPool creates a pool with the given number of workers.
func NewPool(workers int, scan ScanFunc) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers: workers,
		scan:    scan,
		jobs:    make(chan string, workers*2), // Buffered to prevent blocking
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start starts the worker goroutines.
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
		case path, ok := <-p.jobs:
			if !ok {
				return
			}
			card, err := p.scan(p.ctx, path)
			select {
			case p.results <- Result{Path: path, Card: card, Err: err}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues an image path for scanning.
func (p *Pool) Submit(path string) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- path:
	}
}

// Close marks the job queue complete. No Submit may follow.
func (p *Pool) Close() {
	p.closeJobs.Do(func() { close(p.jobs) })
}

// Wait closes the job queue, waits for all scans to finish, and returns the
// collected results. Both channels are bounded, so a caller that submits and
// waits from the same goroutine must keep the job count under the buffer
// sizes; callers with larger batches submit from a separate goroutine, Close
// there, and drain with Collect.
func (p *Pool) Wait() []Result {
	p.Close()
	return p.Collect()
}

// Collect waits for all scans to finish and returns the collected results.
// The job queue must be closed by the submitting side.
func (p *Pool) Collect() []Result {
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

// Shutdown cancels outstanding scans and stops the pool.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
