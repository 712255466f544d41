// internal/app/system/viewload/debounce.go
package viewload

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// DefaultQuiet is the debounce window used when none is configured.
const DefaultQuiet = 400 * time.Millisecond

// timer is the part of *time.Timer the debouncer needs.
type timer interface {
	Stop() bool
}

func afterFunc(d time.Duration, f func()) timer { return time.AfterFunc(d, f) }

// Debouncer re-loads a section from rapidly changing input. Each Trigger
// restarts the quiet period; when it elapses the section loads once with
// the newest input. Every trigger also invalidates the cycle in flight, so
// a slow response for older input is dropped even if it arrives last.
type Debouncer[T any] struct {
	sec   *Section[T]
	quiet time.Duration
	query func(input string) url.Values

	ctx    context.Context
	cancel context.CancelFunc

	after func(time.Duration, func()) timer

	mu     sync.Mutex
	timer  timer
	seq    uint64
	latest string
	closed bool
	wg     sync.WaitGroup
}

// NewDebouncer wraps sec. query maps the raw input to the section query.
// Loads run under ctx until Close.
func NewDebouncer[T any](ctx context.Context, sec *Section[T], quiet time.Duration, query func(input string) url.Values) *Debouncer[T] {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	cctx, cancel := context.WithCancel(ctx)
	return &Debouncer[T]{
		sec:    sec,
		quiet:  quiet,
		query:  query,
		after:  afterFunc,
		ctx:    cctx,
		cancel: cancel,
	}
}

// Section returns the wrapped section.
func (d *Debouncer[T]) Section() *Section[T] { return d.sec }

// Trigger records input as the newest value and restarts the quiet period.
func (d *Debouncer[T]) Trigger(input string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.latest = input
	d.seq++
	d.sec.Invalidate()

	if d.timer != nil {
		d.timer.Stop()
	}
	seq := d.seq
	d.timer = d.after(d.quiet, func() { d.fire(seq) })
}

// fire loads with the newest input unless a later Trigger superseded seq.
// The cycle begins while d.mu is held so no Trigger can slip between
// reading the input and claiming the generation.
func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	if d.closed || seq != d.seq {
		d.mu.Unlock()
		return
	}
	q := d.query(d.latest)
	gen, ok := d.sec.begin(q)
	if !ok {
		d.mu.Unlock()
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	defer d.wg.Done()
	d.sec.settle(gen, d.sec.resolve(d.ctx, q))
}

// Close stops the timer, cancels any load in flight, closes the section and
// waits for running loads to return.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.sec.Close()
	d.cancel()
	d.wg.Wait()
}
