package viewload_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type row struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var sampleRows = viewload.NewFixture(
	row{ID: "890221", Name: "Oladejo Nehemiah"},
	row{ID: "890222", Name: "Oladejo Nehemiah"},
	row{ID: "890223", Name: "Oladejo Nehemiah"},
	row{ID: "890224", Name: "Oladejo Nehemiah"},
)

func envelope(t *testing.T, success bool, message string, payload map[string]any) runapi.Envelope {
	t.Helper()
	env, err := runapi.NewEnvelope(success, message, payload)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	return env
}

func respond(env runapi.Envelope, err error) viewload.FetchFunc {
	return func(context.Context, url.Values) (runapi.Envelope, error) { return env, err }
}

func newSection(fetch viewload.FetchFunc) *viewload.Section[row] {
	return viewload.NewSection(viewload.Source[row]{
		Name:        "agents",
		Fetch:       fetch,
		Decode:      viewload.Field[row]("data", "accounts"),
		Fixture:     sampleRows,
		FailMessage: "Failed to load data",
	}, zap.NewNop())
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestNewSection_InitialState(t *testing.T) {
	s := newSection(nil)
	st := s.Snapshot()
	if !st.Loading {
		t.Error("expected initial state to be loading")
	}
	if len(st.Items) != 0 {
		t.Errorf("items: got %d, want 0", len(st.Items))
	}
	if st.Err != "" {
		t.Errorf("err: got %q, want empty", st.Err)
	}
}

func TestLoad_FallsBackOnEveryFailure(t *testing.T) {
	tests := []struct {
		name    string
		fetch   viewload.FetchFunc
		wantErr string
	}{
		{
			name:    "transport error",
			fetch:   respond(runapi.Envelope{}, errors.New("dial tcp: connection refused")),
			wantErr: "Failed to load data",
		},
		{
			name:    "success false without message",
			fetch:   respond(envelope(t, false, "", nil), nil),
			wantErr: "Failed to load data",
		},
		{
			name:    "success false with message",
			fetch:   respond(envelope(t, false, "Server busy", nil), nil),
			wantErr: "Server busy",
		},
		{
			name:    "payload key missing",
			fetch:   respond(envelope(t, true, "", map[string]any{"rows": []row{{ID: "1"}}}), nil),
			wantErr: "Failed to load data",
		},
		{
			name:    "payload wrong type",
			fetch:   respond(envelope(t, true, "", map[string]any{"data": "not a list"}), nil),
			wantErr: "Failed to load data",
		},
		{
			name:    "empty list",
			fetch:   respond(envelope(t, true, "", map[string]any{"data": []row{}}), nil),
			wantErr: "Failed to load data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newSection(tt.fetch).Load(context.Background(), nil)

			if st.Loading {
				t.Error("expected loading=false after settle")
			}
			if st.Err != tt.wantErr {
				t.Errorf("err: got %q, want %q", st.Err, tt.wantErr)
			}
			if !st.Fallback {
				t.Error("expected fallback=true")
			}
			if diff := cmp.Diff(sampleRows.Items(), st.Items); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_SuccessPassesItemsThrough(t *testing.T) {
	live := []row{{ID: "a1", Name: "Ada"}, {ID: "a2", Name: "Bola"}, {ID: "a3", Name: "Chi"}}
	s := newSection(respond(envelope(t, true, "", map[string]any{"data": live}), nil))

	st := s.Load(context.Background(), url.Values{"type": {"customers"}, "page": {"1"}, "limit": {"50"}})

	if st.Loading || st.Err != "" || st.Fallback {
		t.Errorf("unexpected state: loading=%v err=%q fallback=%v", st.Loading, st.Err, st.Fallback)
	}
	if diff := cmp.Diff(live, st.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_AlternatePayloadKey(t *testing.T) {
	live := []row{{ID: "x"}}
	s := newSection(respond(envelope(t, true, "", map[string]any{"accounts": live}), nil))

	st := s.Load(context.Background(), nil)
	if diff := cmp.Diff(live, st.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_AllowEmpty(t *testing.T) {
	s := viewload.NewSection(viewload.Source[row]{
		Name:       "search",
		Fetch:      respond(envelope(t, true, "", map[string]any{"data": []row{}}), nil),
		Decode:     viewload.Field[row]("data"),
		Fixture:    sampleRows,
		AllowEmpty: true,
	}, zap.NewNop())

	st := s.Load(context.Background(), nil)
	if st.Err != "" || st.Fallback {
		t.Errorf("expected empty live result, got err=%q fallback=%v", st.Err, st.Fallback)
	}
	if len(st.Items) != 0 {
		t.Errorf("items: got %d, want 0", len(st.Items))
	}
}

func TestLoad_UnauthorizedIsFlagged(t *testing.T) {
	s := newSection(respond(runapi.Envelope{}, &runapi.StatusError{Code: 401}))

	st := s.Load(context.Background(), nil)
	if !st.Unauthorized {
		t.Error("expected unauthorized=true")
	}
	if !st.Fallback {
		t.Error("expected fallback on 401")
	}
}

func TestLoad_PanicInFetchFallsBack(t *testing.T) {
	s := newSection(func(context.Context, url.Values) (runapi.Envelope, error) {
		panic("boom")
	})

	st := s.Load(context.Background(), nil)
	if !st.Fallback || st.Err == "" {
		t.Errorf("expected fallback with error, got fallback=%v err=%q", st.Fallback, st.Err)
	}
}

func TestLoad_ResetsItemsWhileLoading(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	var calls atomic.Int32
	live := []row{{ID: "p1"}}

	s := newSection(func(ctx context.Context, q url.Values) (runapi.Envelope, error) {
		if calls.Add(1) == 2 {
			started <- struct{}{}
			<-release
		}
		return runapi.NewEnvelope(true, "", map[string]any{"data": live})
	})

	s.Load(context.Background(), url.Values{"page": {"1"}})

	done := make(chan struct{})
	go func() {
		s.Load(context.Background(), url.Values{"page": {"2"}})
		close(done)
	}()
	<-started

	mid := s.Snapshot()
	if !mid.Loading {
		t.Error("expected loading=true during page change")
	}
	if len(mid.Items) != 0 {
		t.Errorf("items during page change: got %d, want 0", len(mid.Items))
	}

	close(release)
	<-done
	if st := s.Snapshot(); st.Loading || len(st.Items) != 1 {
		t.Errorf("after settle: loading=%v items=%d", st.Loading, len(st.Items))
	}
}

func TestRetry_ReusesQueryAndLeavesNoFixtureRows(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	fail := true
	live := []row{{ID: "r1"}, {ID: "r2"}}

	s := newSection(func(ctx context.Context, q url.Values) (runapi.Envelope, error) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, q.Get("type"))
		if fail {
			return runapi.Envelope{}, errors.New("timeout")
		}
		return runapi.NewEnvelope(true, "", map[string]any{"data": live})
	})

	first := s.Load(context.Background(), url.Values{"type": {"agents"}})
	if !first.Fallback {
		t.Fatal("expected first load to fall back")
	}

	mu.Lock()
	fail = false
	mu.Unlock()

	second := s.Retry(context.Background())
	if second.Fallback || second.Err != "" {
		t.Errorf("retry: fallback=%v err=%q", second.Fallback, second.Err)
	}
	if diff := cmp.Diff(live, second.Items); diff != "" {
		t.Errorf("retry items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"agents", "agents"}, seen); diff != "" {
		t.Errorf("queries mismatch (-want +got):\n%s", diff)
	}
}

func TestClose_DropsLateResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	started := make(chan struct{})
	s := newSection(func(ctx context.Context, q url.Values) (runapi.Envelope, error) {
		close(started)
		<-release
		return runapi.NewEnvelope(true, "", map[string]any{"data": []row{{ID: "late"}}})
	})

	var notified atomic.Bool
	s.OnSettle(func(viewload.State[row]) { notified.Store(true) })

	done := make(chan struct{})
	go func() {
		s.Load(context.Background(), nil)
		close(done)
	}()
	<-started
	s.Close()
	close(release)
	<-done

	st := s.Snapshot()
	if len(st.Items) != 0 {
		t.Errorf("items after close: got %d, want 0", len(st.Items))
	}
	if notified.Load() {
		t.Error("expected no settle notification after close")
	}

	// Retry after close is a no-op.
	if st := s.Retry(context.Background()); len(st.Items) != 0 {
		t.Errorf("retry after close wrote %d items", len(st.Items))
	}
}

func TestSettle_SectionsAreIndependent(t *testing.T) {
	defer goleak.VerifyNone(t)

	live := []row{{ID: "ok"}}
	okSec := newSection(respond(envelope(t, true, "", map[string]any{"data": live}), nil))
	badSec := newSection(respond(runapi.Envelope{}, errors.New("boom")))
	slowSec := newSection(func(ctx context.Context, q url.Values) (runapi.Envelope, error) {
		time.Sleep(30 * time.Millisecond)
		return runapi.NewEnvelope(true, "", map[string]any{"data": live})
	})

	viewload.Settle(context.Background(), okSec.Task(nil), badSec.Task(nil), slowSec.Task(nil))

	for _, s := range []*viewload.Section[row]{okSec, badSec, slowSec} {
		if s.Snapshot().Loading {
			t.Errorf("%s still loading after Settle", s.Name())
		}
	}
	if st := okSec.Snapshot(); st.Fallback {
		t.Error("ok section should not fall back because a sibling failed")
	}
	if st := badSec.Snapshot(); !st.Fallback {
		t.Error("failing section should fall back")
	}
	if diff := cmp.Diff(live, slowSec.Snapshot().Items); diff != "" {
		t.Errorf("slow section items mismatch (-want +got):\n%s", diff)
	}
}

func TestFixture_ItemsAreCopies(t *testing.T) {
	items := sampleRows.Items()
	items[0].Name = "mutated"
	if sampleRows.Items()[0].Name == "mutated" {
		t.Error("fixture rows must not be shared with callers")
	}
}

func TestObjectAndMapDecoders(t *testing.T) {
	type summary struct {
		Orders int `json:"orders"`
	}
	env := envelope(t, true, "", map[string]any{"analytics": map[string]any{"orders": 12}})

	got := viewload.Object[summary]("analytics")(env)
	items, ok := got.Items()
	if !ok || len(items) != 1 || items[0].Orders != 12 {
		t.Fatalf("Object: got %+v ok=%v (%s)", items, ok, got.Reason())
	}

	doubled := viewload.Map(viewload.Object[summary]("analytics"), func(in []summary) ([]int, error) {
		return []int{in[0].Orders * 2}, nil
	})(env)
	if n, ok := doubled.Items(); !ok || n[0] != 24 {
		t.Errorf("Map: got %v ok=%v", n, ok)
	}

	list := envelope(t, true, "", map[string]any{"analytics": []int{1}})
	if viewload.Object[summary]("analytics")(list).IsOk() {
		t.Error("Object should reject a list payload")
	}
}
