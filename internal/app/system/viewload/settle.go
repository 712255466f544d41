// internal/app/system/viewload/settle.go
package viewload

import (
	"context"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// Task is one section load bound to its query.
type Task interface {
	run(ctx context.Context)
}

type task[T any] struct {
	s *Section[T]
	q url.Values
}

func (t task[T]) run(ctx context.Context) { t.s.Load(ctx, t.q) }

// Settle runs every task in parallel and returns when all have settled.
// Tasks never report errors to the group: a failing section falls back on
// its own, so a plain Group (not WithContext) keeps siblings running.
func Settle(ctx context.Context, tasks ...Task) {
	var g errgroup.Group
	for _, t := range tasks {
		if t == nil {
			continue
		}
		g.Go(func() error {
			t.run(ctx)
			return nil
		})
	}
	_ = g.Wait()
}
