package persist

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Job is one persistence write. Its error is logged and otherwise ignored.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Writer runs persistence jobs on a single goroutine so writes reach the store
// in submission order. Submit never blocks the caller; a full queue drops the job.
type Writer struct {
	jobs    chan Job
	timeout time.Duration
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewWriter(queueSize int, timeout time.Duration) *Writer {
	if queueSize <= 0 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	w := &Writer{
		jobs:    make(chan Job, queueSize),
		timeout: timeout,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w
}

// Submit queues job and reports whether it was accepted.
func (w *Writer) Submit(job Job) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		log.WithField("job", job.Name).Warn("[PERSIST] writer closed, dropping job")
		return false
	}

	select {
	case w.jobs <- job:
		return true
	default:
		log.WithField("job", job.Name).Warn("[PERSIST] queue full, dropping job")
		return false
	}
}

// Close stops accepting jobs and waits until the queued ones have run.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()

	<-w.done
}

func (w *Writer) loop() {
	defer close(w.done)
	for job := range w.jobs {
		w.run(job)
	}
}

func (w *Writer) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("job", job.Name).Errorf("[PERSIST] job panicked: %v", r)
		}
	}()

	if err := job.Run(ctx); err != nil {
		log.WithField("job", job.Name).Errorf("[PERSIST] job failed: %v", err)
	}
}
