// Package viewload turns remote admin API calls into renderable page
// sections.
//
// Every page in the console shows one or more sections (a table, a set of
// stat cards, a chart). A section is backed by one remote call and owns a
// State: the items to render, a loading flag, and an error message. When
// the call fails in any way (transport error, non-2xx status, success=false,
// missing or malformed payload) the section falls back wholesale to its
// constant sample Fixture and reports a human-readable error, so a page
// never renders empty and never fails with a 500 because the API is down.
//
// Sections load independently: Settle runs several in parallel and returns
// once all of them have settled, and one failure never affects another.
// Debouncer re-triggers a section from rapidly changing input (live search)
// so that only the newest input is ever applied.
package viewload

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
)

// Outcome is the validated result of decoding an envelope: either Ok with
// items, or Fail with a reason. Decoders produce it at the API boundary so
// nothing downstream has to second-guess the payload shape.
type Outcome[T any] struct {
	items  []T
	reason string
	ok     bool
}

// Ok wraps decoded items.
func Ok[T any](items []T) Outcome[T] {
	if items == nil {
		items = []T{}
	}
	return Outcome[T]{items: items, ok: true}
}

// Fail records why a payload was rejected.
func Fail[T any](format string, args ...any) Outcome[T] {
	return Outcome[T]{reason: fmt.Sprintf(format, args...)}
}

// Items returns the decoded items and whether the outcome is Ok.
func (o Outcome[T]) Items() ([]T, bool) { return o.items, o.ok }

// Reason is empty for Ok outcomes.
func (o Outcome[T]) Reason() string { return o.reason }

// IsOk reports whether the payload validated.
func (o Outcome[T]) IsOk() bool { return o.ok }

// Decoder validates an envelope that already reported success.
type Decoder[T any] func(env runapi.Envelope) Outcome[T]

// Field decodes a JSON array stored under the first present key.
func Field[T any](keys ...string) Decoder[T] {
	return func(env runapi.Envelope) Outcome[T] {
		raw, key, ok := firstPayload(env, keys)
		if !ok {
			return Fail[T]("payload key %s missing", strings.Join(keys, "|"))
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return Fail[T]("payload %q is not a list: %v", key, err)
		}
		return Ok(items)
	}
}

// Object decodes a single JSON object stored under the first present key
// and presents it as a one-item list.
func Object[T any](keys ...string) Decoder[T] {
	return func(env runapi.Envelope) Outcome[T] {
		raw, key, ok := firstPayload(env, keys)
		if !ok {
			return Fail[T]("payload key %s missing", strings.Join(keys, "|"))
		}
		trimmed := strings.TrimSpace(string(raw))
		if !strings.HasPrefix(trimmed, "{") {
			return Fail[T]("payload %q is not an object", key)
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return Fail[T]("payload %q: %v", key, err)
		}
		return Ok([]T{v})
	}
}

// Map applies a per-page mapper to the items of an Ok outcome. A mapper
// error turns the outcome into Fail.
func Map[S, T any](dec Decoder[S], fn func([]S) ([]T, error)) Decoder[T] {
	return func(env runapi.Envelope) Outcome[T] {
		src := dec(env)
		items, ok := src.Items()
		if !ok {
			return Fail[T]("%s", src.Reason())
		}
		out, err := fn(items)
		if err != nil {
			return Fail[T]("map payload: %v", err)
		}
		return Ok(out)
	}
}

func firstPayload(env runapi.Envelope, keys []string) (json.RawMessage, string, bool) {
	for _, k := range keys {
		if raw, ok := env.Payload(k); ok {
			return raw, k, true
		}
	}
	return nil, "", false
}
