package viewload

import "time"

// Timer is the stoppable handle a debouncer clock returns.
type Timer = timer

// UseClock replaces the debouncer's timer source. Call it before the first
// Trigger.
func UseClock[T any](d *Debouncer[T], after func(time.Duration, func()) Timer) {
	d.after = after
}
