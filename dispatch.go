package siesta

import (
	"runtime"
	"sync"
)

// SerialQueue is the default delivery Queue: a single goroutine executing
// submitted functions in FIFO order. Async never blocks the caller.
type SerialQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	closed bool
	done   chan struct{}
}

// NewSerialQueue creates a serial queue and starts its goroutine.
func NewSerialQueue() *SerialQueue {
	q := &SerialQueue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.loop()
	return q
}

// Async schedules fn to run after all previously submitted functions.
// Submissions after Close are dropped.
func (q *SerialQueue) Async(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.tasks = append(q.tasks, fn)
	q.cond.Signal()
	q.mu.Unlock()
}

// Close drains already-submitted work, then stops the queue goroutine.
func (q *SerialQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	q.cond.Signal()
	q.mu.Unlock()
	<-q.done
}

func (q *SerialQueue) loop() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.tasks) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		fn := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()
		fn()
	}
}

// WorkerPool is the default Pool: a fixed set of goroutines consuming a
// shared task channel.
type WorkerPool struct {
	mu     sync.Mutex
	tasks  chan func()
	closed bool
	wg     sync.WaitGroup
}

// NewWorkerPool creates a pool with the given number of workers; size <= 0
// means one worker per CPU.
func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &WorkerPool{tasks: make(chan func(), 64)}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go func() {
			defer p.wg.Done()
			for fn := range p.tasks {
				fn()
			}
		}()
	}
	return p
}

// Submit schedules fn on a worker. It blocks only when the task buffer is
// full; submissions after Close are dropped.
func (p *WorkerPool) Submit(fn func()) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.tasks <- fn
	p.mu.Unlock()
}

// Close stops accepting work and waits for in-flight tasks to finish.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}
