package glint

import (
	"sync"
	"time"
)

// Rejection records a change a Reloader refused.
type Rejection struct {
	At    time.Time
	Stage string // decode, validate or apply
	Err   error
}

// Error implements error so a Rejection can be returned and wrapped as-is.
func (r Rejection) Error() string {
	return r.Stage + ": " + r.Err.Error()
}

// Unwrap returns the underlying error.
func (r Rejection) Unwrap() error {
	return r.Err
}

// rejectionRing keeps the most recent rejections, oldest first.
// A nil ring records nothing.
type rejectionRing struct {
	mu    sync.RWMutex
	items []Rejection
	head  int
	count int
}

func newRejectionRing(size int) *rejectionRing {
	if size <= 0 {
		return nil
	}
	return &rejectionRing{items: make([]Rejection, size)}
}

func (r *rejectionRing) push(rej Rejection) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[r.head] = rej
	r.head = (r.head + 1) % len(r.items)
	if r.count < len(r.items) {
		r.count++
	}
}

func (r *rejectionRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.items)
	r.head, r.count = 0, 0
}

func (r *rejectionRing) all() []Rejection {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}
	size := len(r.items)
	out := make([]Rejection, r.count)
	start := (r.head - r.count + size) % size
	for i := range out {
		out[i] = r.items[(start+i)%size]
	}
	return out
}
