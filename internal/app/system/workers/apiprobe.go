// internal/app/system/workers/apiprobe.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger checks that the remote API answers. *runapi.Client implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeStatus is the outcome of the most recent API probe.
type ProbeStatus struct {
	Checked   bool          `json:"checked"`
	Reachable bool          `json:"reachable"`
	CheckedAt time.Time     `json:"checked_at,omitempty"`
	Latency   time.Duration `json:"latency_ns"`
	Error     string        `json:"error,omitempty"`
}

// APIProbe is a background worker that periodically pings the remote API
// so /health can report upstream reachability without a live call.
type APIProbe struct {
	api      Pinger
	log      *zap.Logger
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu     sync.RWMutex
	status ProbeStatus
}

// NewAPIProbe creates a new probe worker.
//
// Parameters:
//   - api: the remote API client
//   - logger: zap logger for logging
//   - interval: how often to probe (e.g., 1 minute)
//   - timeout: per-probe deadline (e.g., timeouts.Ping())
func NewAPIProbe(api Pinger, logger *zap.Logger, interval, timeout time.Duration) *APIProbe {
	if interval <= 0 {
		interval = time.Minute
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &APIProbe{
		api:      api,
		log:      logger,
		interval: interval,
		timeout:  timeout,
		stopCh:   make(chan struct{}),
	}
}

// Start probes once immediately, then on every interval.
func (w *APIProbe) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("api probe worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *APIProbe) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("api probe worker stopped")
}

// Status returns the most recent probe result.
func (w *APIProbe) Status() ProbeStatus {
	if w == nil {
		return ProbeStatus{}
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status
}

func (w *APIProbe) run() {
	defer w.wg.Done()

	w.probe()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.probe()
		}
	}
}

func (w *APIProbe) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	// Stop should not wait out a slow probe.
	go func() {
		select {
		case <-w.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	err := w.api.Ping(ctx)
	st := ProbeStatus{
		Checked:   true,
		Reachable: err == nil,
		CheckedAt: start.UTC(),
		Latency:   time.Since(start),
	}
	if err != nil {
		st.Error = err.Error()
	}

	w.mu.Lock()
	prev := w.status
	w.status = st
	w.mu.Unlock()

	switch {
	case err != nil && (!prev.Checked || prev.Reachable):
		w.log.Warn("remote api unreachable", zap.Error(err))
	case err == nil && prev.Checked && !prev.Reachable:
		w.log.Info("remote api reachable again", zap.Duration("latency", st.Latency))
	}
}
