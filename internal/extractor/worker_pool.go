package extractor

import (
	"context"
	"sync"
)

// WorkerPool fans file scanning out over several workers. Each task reads
// one file and runs the pattern over it; matching is independent per file
// and results merge into an index by set union, so the final index is
// invariant to completion order.
type WorkerPool struct {
	ctx        context.Context
	cancel     context.CancelFunc
	tasks      chan ScanTask
	results    chan ScanTaskResult
	wg         sync.WaitGroup
	numWorkers int

	mu             sync.RWMutex
	totalTasks     int
	completedTasks int
}

// ScanTask names one file to scan with a pattern.
type ScanTask struct {
	Path    string
	Pattern Pattern
}

// ScanTaskResult carries the matches found in one file, or the read error
// that kept it out of the index.
type ScanTaskResult struct {
	Task    ScanTask
	Matches []string
	Err     error
}

// NewWorkerPool creates a pool with the given number of workers.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 4
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		ctx:        ctx,
		cancel:     cancel,
		numWorkers: numWorkers,
		tasks:      make(chan ScanTask, numWorkers*2),
		results:    make(chan ScanTaskResult, numWorkers*2),
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}

			wp.processTask(task)
		}
	}
}

func (wp *WorkerPool) processTask(task ScanTask) {
	result := ScanTaskResult{Task: task}

	text, err := ReadTextFile(task.Path)
	if err != nil {
		result.Err = err
	} else {
		result.Matches = task.Pattern.Find(text)
	}

	wp.mu.Lock()
	wp.completedTasks++
	wp.mu.Unlock()

	select {
	case wp.results <- result:
	case <-wp.ctx.Done():
	}
}

// SubmitTask queues a task. It blocks when the task buffer is full, so
// submission should run concurrently with result collection.
func (wp *WorkerPool) SubmitTask(task ScanTask) {
	wp.mu.Lock()
	wp.totalTasks++
	wp.mu.Unlock()

	select {
	case wp.tasks <- task:
	case <-wp.ctx.Done():
	}
}

// Results returns the channel results are delivered on.
func (wp *WorkerPool) Results() <-chan ScanTaskResult {
	return wp.results
}

// Wait signals that no more tasks will be submitted and blocks until the
// workers drain the queue.
func (wp *WorkerPool) Wait() {
	close(wp.tasks)
	wp.wg.Wait()
	close(wp.results)
}

// Shutdown cancels in-flight work and waits for cleanup.
func (wp *WorkerPool) Shutdown() {
	wp.cancel()
	wp.wg.Wait()
}

// Stats reports queue progress.
func (wp *WorkerPool) Stats() (completed, total int) {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	return wp.completedTasks, wp.totalTasks
}

// BuildIndexParallel builds the same index as BuildIndex using the pool.
// Per-file read errors go to warn (if non-nil) and never cancel sibling
// files. With workers <= 1 it falls back to the sequential build.
func BuildIndexParallel(paths []string, pattern Pattern, workers int, warn func(format string, args ...any)) Index {
	if workers <= 1 || len(paths) < 2 {
		return BuildIndex(paths, pattern, warn)
	}

	pool := NewWorkerPool(workers)
	pool.Start()

	go func() {
		for _, path := range paths {
			pool.SubmitTask(ScanTask{Path: path, Pattern: pattern})
		}

		pool.Wait()
	}()

	ix := NewIndex()

	for result := range pool.Results() {
		if result.Err != nil {
			if warn != nil {
				warn("could not read %s: %v", result.Task.Path, result.Err)
			}

			continue
		}

		for _, url := range result.Matches {
			ix.Add(url, result.Task.Path)
		}
	}

	return ix
}
