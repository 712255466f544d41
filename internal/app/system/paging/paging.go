// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged lists.
const PageSize = 50

// MaxPageSize caps a caller-supplied limit.
const MaxPageSize = 200

// Page is a 1-based page number and a row limit, the shape the admin API
// takes for every paged endpoint.
type Page struct {
	Number int
	Limit  int
}

// Parse reads "page" and "limit" from the query string. Missing or invalid
// values fall back to page 1 and defaultLimit (PageSize when <= 0).
func Parse(r *http.Request, defaultLimit int) Page {
	if defaultLimit <= 0 {
		defaultLimit = PageSize
	}
	p := Page{
		Number: positiveInt(query.Get(r, "page"), 1),
		Limit:  positiveInt(query.Get(r, "limit"), defaultLimit),
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Skip is the number of rows before this page.
func (p Page) Skip() int64 {
	if p.Number < 1 || p.Limit < 1 {
		return 0
	}
	return int64((p.Number - 1) * p.Limit)
}

func positiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Window describes what the pager under a table should show.
type Window struct {
	Page     int
	Limit    int
	Start    int // 1-based index of the first row (0 if none)
	End      int // 1-based index of the last row (0 if none)
	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int
}

// Compute builds the pager for a page that returned shown rows. The admin
// API reports no totals, so a full page is taken to mean another may follow.
func Compute(p Page, shown int) Window {
	w := Window{
		Page:     p.Number,
		Limit:    p.Limit,
		HasPrev:  p.Number > 1,
		HasNext:  p.Limit > 0 && shown >= p.Limit,
		PrevPage: max(p.Number-1, 1),
		NextPage: p.Number + 1,
	}
	if shown > 0 {
		w.Start = int(p.Skip()) + 1
		w.End = int(p.Skip()) + shown
	}
	return w
}

// LimitPlusOne returns Limit+1 as int64 for look-ahead queries against
// MongoDB (fetch one extra document to detect a next page).
func (p Page) LimitPlusOne() int64 { return int64(p.Limit + 1) }

// TrimPage trims a look-ahead result back to p.Limit rows and reports
// whether a next page exists.
func TrimPage[T any](rows *[]T, p Page) bool {
	if len(*rows) > p.Limit {
		*rows = (*rows)[:p.Limit]
		return true
	}
	return false
}
