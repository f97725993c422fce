package workqueue

import (
	"log"
	"sync"
)

// Progress accumulates job completions from any number of workers and logs
// a running count, following the same serialize-through-a-channel idea as
// BurntSushi's cmd/util.Progress, but backed by a mutex since callers here
// already hold a *Pool worker count they want to report against.
type Progress struct {
	mu        sync.Mutex
	label     string
	total     int
	completed int
	errors    int
}

// NewProgress creates a reporter for a job with a known total step count.
func NewProgress(label string, total int) *Progress {
	return &Progress{label: label, total: total}
}

// Step records one completed unit of work. A non-nil err is counted and
// logged but does not stop reporting; a successful step logs the running
// count only when the total is known (greater than zero).
func (p *Progress) Step(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completed++
	if err != nil {
		p.errors++
		log.Printf("%s: %v", p.label, err)
		return
	}
	if p.total > 0 {
		log.Printf("%s: %d/%d complete", p.label, p.completed, p.total)
	}
}

// Errors returns the number of steps reported with a non-nil error.
func (p *Progress) Errors() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errors
}
