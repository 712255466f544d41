package paging

import (
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		target string
		def    int
		want   Page
	}{
		{"defaults", "/accounts", 0, Page{Number: 1, Limit: PageSize}},
		{"explicit", "/accounts?page=3&limit=20", 50, Page{Number: 3, Limit: 20}},
		{"invalid", "/accounts?page=-2&limit=abc", 25, Page{Number: 1, Limit: 25}},
		{"capped", "/accounts?limit=5000", 50, Page{Number: 1, Limit: MaxPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(httptest.NewRequest("GET", tt.target, nil), tt.def)
			if got != tt.want {
				t.Errorf("Parse(%q): got %+v, want %+v", tt.target, got, tt.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	got := Compute(Page{Number: 2, Limit: 50}, 50)
	want := Window{Page: 2, Limit: 50, Start: 51, End: 100, HasPrev: true, HasNext: true, PrevPage: 1, NextPage: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compute mismatch (-want +got):\n%s", diff)
	}

	last := Compute(Page{Number: 1, Limit: 50}, 3)
	if last.HasNext || last.HasPrev {
		t.Errorf("short first page: got %+v", last)
	}
	if last.Start != 1 || last.End != 3 {
		t.Errorf("range: got %d-%d, want 1-3", last.Start, last.End)
	}

	empty := Compute(Page{Number: 1, Limit: 50}, 0)
	if empty.Start != 0 || empty.End != 0 {
		t.Errorf("empty range: got %d-%d", empty.Start, empty.End)
	}
}

func TestTrimPage(t *testing.T) {
	rows := []int{1, 2, 3, 4}
	if !TrimPage(&rows, Page{Number: 1, Limit: 3}) {
		t.Error("expected a next page")
	}
	if len(rows) != 3 {
		t.Errorf("len: got %d, want 3", len(rows))
	}

	short := []int{1}
	if TrimPage(&short, Page{Number: 1, Limit: 3}) {
		t.Error("unexpected next page")
	}
}

func TestSkip(t *testing.T) {
	if got := (Page{Number: 4, Limit: 25}).Skip(); got != 75 {
		t.Errorf("Skip: got %d, want 75", got)
	}
	if got := (Page{}).Skip(); got != 0 {
		t.Errorf("zero Skip: got %d", got)
	}
}
