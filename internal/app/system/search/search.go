// internal/app/system/search/search.go
package search

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Matches reports whether the free-text query q occurs in any of fields.
// Matching is case- and accent-insensitive; an empty query matches
// everything.
//
//	search.Matches("ade", req.CustomerName, req.RequestID, req.Address)
func Matches(q string, fields ...string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	needle := text.Fold(q)
	for _, f := range fields {
		if f != "" && strings.Contains(text.Fold(f), needle) {
			return true
		}
	}
	return false
}

// Choice reports whether value passes a select filter. "" and "all" mean
// no filter.
func Choice(filter, value string) bool {
	return filter == "" || strings.EqualFold(filter, "all") || filter == value
}
