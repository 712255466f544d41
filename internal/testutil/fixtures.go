package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"go.uber.org/zap"
)

// Call is one request received by a FakeAPI.
type Call struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]any
}

// FakeAPI is an httptest server standing in for the remote admin API.
// Unrouted paths answer 404 with success=false.
type FakeAPI struct {
	Server *httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []Call
}

// NewFakeAPI starts a fake API that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{routes: map[string]http.HandlerFunc{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// Handle routes "METHOD /path" to h.
func (f *FakeAPI) Handle(pattern string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[pattern] = h
}

// OK answers pattern with {success:true, key: payload}.
func (f *FakeAPI) OK(pattern, key string, payload any) {
	f.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{"success": true, key: payload})
	})
}

// Status answers pattern with the given status and a failure body.
func (f *FakeAPI) Status(pattern string, status int, message string) {
	f.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, map[string]any{"success": false, "message": message})
	})
}

// Calls returns a copy of the requests received so far.
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls to "METHOD /path".
func (f *FakeAPI) CallsTo(pattern string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Method+" "+c.Path == pattern {
			out = append(out, c)
		}
	}
	return out
}

// Client returns a runapi.Client pointed at the fake. The bearer token is
// read from the request context, as in production.
func (f *FakeAPI) Client(t *testing.T) *runapi.Client {
	t.Helper()
	c, err := runapi.New(runapi.Options{
		BaseURL: f.Server.URL,
		Tokens:  runapi.TokenFunc(auth.TokenFrom),
		Logger:  zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("runapi.New: %v", err)
	}
	return c
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	call := Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
	}
	if r.Body != nil && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(r.Body).Decode(&call.Body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	h, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "not found"})
		return
	}
	h(w, r)
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
