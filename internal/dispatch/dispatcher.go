package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"codeberg.org/snonux/anuvad/internal/lang"
)

// Request is one translation request.
type Request struct {
	Pair lang.Pair
	Text string
}

// Result is the outcome of a request: translated text or an error, never both.
type Result struct {
	Text string
	Err  error
}

// RunFunc performs a request. It runs on a worker goroutine.
type RunFunc func(ctx context.Context, req Request) (string, error)

// JobStatus represents the current state of a job
type JobStatus int

const (
	StatusQueued JobStatus = iota
	StatusProcessing
	StatusCompleted
	StatusFailed
)

func (s JobStatus) String() string {
	switch s {
	case StatusQueued:
		return "Queued"
	case StatusProcessing:
		return "Processing"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Job is a finished request as handed to the completion callback.
type Job struct {
	ID          int
	Request     Request
	Result      Result
	Status      JobStatus
	StartedAt   time.Time
	CompletedAt time.Time
}

// Duration returns how long the job ran.
func (j *Job) Duration() time.Duration {
	return j.CompletedAt.Sub(j.StartedAt)
}

// Dispatcher runs at most one request at a time.
type Dispatcher struct {
	ctx  context.Context
	run  RunFunc
	post func(func())

	mu     sync.Mutex
	busy   bool
	nextID int
	status JobStatus
}

// New creates a dispatcher. post schedules a function on the UI loop; pass
// fyne.Do in the GUI. A nil post calls the function directly.
func New(ctx context.Context, run RunFunc, post func(func())) *Dispatcher {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Dispatcher{
		ctx:    ctx,
		run:    run,
		post:   post,
		nextID: 1,
	}
}

// Busy reports whether a request is in flight.
func (d *Dispatcher) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// Status returns the status of the most recent job.
func (d *Dispatcher) Status() JobStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Submit starts req on a new goroutine and returns its job ID. It returns
// false without doing anything while another request is in flight.
//
// onDone is posted to the UI loop once the request finishes. The dispatcher
// is idle again by the time onDone runs, whatever the outcome.
func (d *Dispatcher) Submit(req Request, onDone func(*Job)) (int, bool) {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return 0, false
	}
	d.busy = true
	id := d.nextID
	d.nextID++
	d.status = StatusProcessing
	d.mu.Unlock()

	job := &Job{ID: id, Request: req, Status: StatusQueued, StartedAt: time.Now()}
	results := make(chan Result, 1)

	go d.work(req, results)

	go func() {
		res := <-results

		job.Result = res
		job.CompletedAt = time.Now()
		job.Status = StatusCompleted
		if res.Err != nil {
			job.Status = StatusFailed
		}

		d.post(func() {
			d.mu.Lock()
			d.busy = false
			d.status = job.Status
			d.mu.Unlock()

			if onDone != nil {
				onDone(job)
			}
		})
	}()

	return id, true
}

func (d *Dispatcher) work(req Request, results chan<- Result) {
	defer func() {
		if r := recover(); r != nil {
			results <- Result{Err: fmt.Errorf("translation panicked: %v", r)}
		}
	}()

	text, err := d.run(d.ctx, req)
	if err != nil {
		results <- Result{Err: err}
		return
	}
	results <- Result{Text: text}
}
