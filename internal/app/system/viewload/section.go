// internal/app/system/viewload/section.go
package viewload

import (
	"context"
	"net/url"
	"slices"
	"sync"

	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"go.uber.org/zap"
)

// DefaultFailMessage is shown when a source does not set its own.
const DefaultFailMessage = "Failed to load data"

// FetchFunc performs the remote call for a section.
type FetchFunc func(ctx context.Context, q url.Values) (runapi.Envelope, error)

// Source describes where a section's data comes from and what to show when
// that fails.
type Source[T any] struct {
	Name    string
	Fetch   FetchFunc
	Decode  Decoder[T]
	Fixture Fixture[T]

	// FailMessage is the banner text for any failure that does not carry a
	// message of its own.
	FailMessage string
	// EmptyMessage is the banner text when the API returns an empty list
	// and AllowEmpty is false. Defaults to FailMessage.
	EmptyMessage string
	// AllowEmpty accepts an empty list as a real result instead of falling
	// back to the fixture.
	AllowEmpty bool
}

func (s Source[T]) failMessage() string {
	if s.FailMessage != "" {
		return s.FailMessage
	}
	return DefaultFailMessage
}

func (s Source[T]) emptyMessage() string {
	if s.EmptyMessage != "" {
		return s.EmptyMessage
	}
	return s.failMessage()
}

// State is what a template renders for one section.
type State[T any] struct {
	Items   []T
	Loading bool
	// Err is the banner text; empty means the items are live data.
	Err string
	// Fallback is true when Items came from the fixture.
	Fallback bool
	// Unauthorized is true when the API rejected the bearer token.
	Unauthorized bool
}

// HasError reports whether a banner should be shown.
func (s State[T]) HasError() bool { return s.Err != "" }

// Count returns the number of rows to render.
func (s State[T]) Count() int { return len(s.Items) }

func (s State[T]) clone() State[T] {
	s.Items = slices.Clone(s.Items)
	if s.Items == nil {
		s.Items = []T{}
	}
	return s
}

// Section owns the State of one page section. Only the section's own
// load cycles write to it.
type Section[T any] struct {
	src Source[T]
	log *zap.Logger

	mu       sync.Mutex
	state    State[T]
	gen      uint64
	last     url.Values
	closed   bool
	onSettle []func(State[T])
}

// NewSection returns a section in its initial state: no items, loading.
func NewSection[T any](src Source[T], logger *zap.Logger) *Section[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Section[T]{
		src:   src,
		log:   logger.With(zap.String("section", src.Name)),
		state: State[T]{Items: []T{}, Loading: true},
	}
}

// Name returns the source name.
func (s *Section[T]) Name() string { return s.src.Name }

// Snapshot returns a copy of the current state.
func (s *Section[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// OnSettle registers fn to receive every applied terminal state. fn runs on
// the goroutine that completed the load.
func (s *Section[T]) OnSettle(fn func(State[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSettle = append(s.onSettle, fn)
}

// Load runs one fetch cycle with q and returns the resulting state. Items
// are reset to empty when the cycle starts. If a newer cycle starts (or the
// section is closed) before this one finishes, its result is dropped.
func (s *Section[T]) Load(ctx context.Context, q url.Values) State[T] {
	gen, ok := s.begin(q)
	if !ok {
		return s.Snapshot()
	}
	s.settle(gen, s.resolve(ctx, q))
	return s.Snapshot()
}

// Retry re-runs the last query. Before any Load it runs with no query.
func (s *Section[T]) Retry(ctx context.Context) State[T] {
	s.mu.Lock()
	q := s.last
	s.mu.Unlock()
	return s.Load(ctx, q)
}

// Invalidate marks any in-flight cycle as stale without starting a new one.
func (s *Section[T]) Invalidate() {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()
}

// Close stops the section from accepting results. Loads still in flight
// finish, but nothing is written afterwards.
func (s *Section[T]) Close() {
	s.mu.Lock()
	s.closed = true
	s.onSettle = nil
	s.mu.Unlock()
}

// Task binds the section to q for use with Settle.
func (s *Section[T]) Task(q url.Values) Task {
	return task[T]{s: s, q: q}
}

func (s *Section[T]) begin(q url.Values) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, false
	}
	s.gen++
	s.last = cloneValues(q)
	s.state = State[T]{Items: []T{}, Loading: true}
	return s.gen, true
}

func (s *Section[T]) settle(gen uint64, st State[T]) bool {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		s.log.Debug("dropping superseded result", zap.Uint64("generation", gen))
		return false
	}
	s.state = st
	subs := slices.Clone(s.onSettle)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st.clone())
	}
	return true
}

// resolve performs the remote call and reduces every outcome to a
// terminal state.
func (s *Section[T]) resolve(ctx context.Context, q url.Values) (st State[T]) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Error("section fetch panicked; showing sample data", zap.Any("panic", p))
			st = s.fallback(s.src.failMessage(), false)
		}
	}()

	if s.src.Fetch == nil {
		return s.fallback(s.src.failMessage(), false)
	}

	env, err := s.src.Fetch(ctx, q)
	if err != nil {
		s.log.Warn("fetch failed; showing sample data", zap.Error(err))
		return s.fallback(s.src.failMessage(), runapi.IsUnauthorized(err))
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = s.src.failMessage()
		}
		s.log.Warn("api reported failure; showing sample data", zap.String("message", env.Message))
		return s.fallback(msg, false)
	}

	if s.src.Decode == nil {
		s.log.Error("section has no decoder; showing sample data")
		return s.fallback(s.src.failMessage(), false)
	}

	out := s.src.Decode(env)
	items, ok := out.Items()
	if !ok {
		s.log.Warn("malformed payload; showing sample data", zap.String("reason", out.Reason()))
		return s.fallback(s.src.failMessage(), false)
	}
	if len(items) == 0 && !s.src.AllowEmpty {
		return s.fallback(s.src.emptyMessage(), false)
	}

	return State[T]{Items: items}
}

func (s *Section[T]) fallback(msg string, unauthorized bool) State[T] {
	return State[T]{
		Items:        s.src.Fixture.Items(),
		Err:          msg,
		Fallback:     true,
		Unauthorized: unauthorized,
	}
}

func cloneValues(q url.Values) url.Values {
	if q == nil {
		return nil
	}
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = slices.Clone(v)
	}
	return out
}

