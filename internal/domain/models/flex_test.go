package models_test

import (
	"encoding/json"
	"testing"

	"github.com/runpro9ja/adminhub/internal/domain/models"
)

func TestFlexString_AcceptsNumbersAndStrings(t *testing.T) {
	var rows []struct {
		ID models.FlexString `json:"id"`
	}
	if err := json.Unmarshal([]byte(`[{"id":"890221"},{"id":890222},{"id":null}]`), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"890221", "890222", ""}
	for i, w := range want {
		if got := rows[i].ID.String(); got != w {
			t.Errorf("row %d: got %q, want %q", i, got, w)
		}
	}
}

func TestAmount_ParsesFormattedValues(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`23000`, 23000},
		{`"23,000.00"`, 23000},
		{`"₦30,000"`, 30000},
		{`""`, 0},
	}
	for _, c := range cases {
		var a models.Amount
		if err := json.Unmarshal([]byte(c.in), &a); err != nil {
			t.Errorf("%s: %v", c.in, err)
			continue
		}
		if float64(a) != c.want {
			t.Errorf("%s: got %v, want %v", c.in, float64(a), c.want)
		}
	}

	var a models.Amount
	if err := json.Unmarshal([]byte(`"abc"`), &a); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestAmount_Naira(t *testing.T) {
	cases := map[float64]string{
		0:          "₦0.00",
		999:        "₦999.00",
		23000:      "₦23,000.00",
		3987550:    "₦3,987,550.00",
		1234567.5:  "₦1,234,567.50",
	}
	for in, want := range cases {
		if got := models.Amount(in).Naira(); got != want {
			t.Errorf("Naira(%v): got %q, want %q", in, got, want)
		}
	}
}

func TestComplaint_MatchesFilter(t *testing.T) {
	done := models.Complaint{Status: models.ComplaintResponded}
	open := models.Complaint{Status: models.ComplaintNotResponded}

	if !done.MatchesFilter(models.ComplaintFilterResponded) || done.MatchesFilter(models.ComplaintFilterNotResponded) {
		t.Error("responded complaint filtered wrongly")
	}
	if open.MatchesFilter(models.ComplaintFilterResponded) || !open.MatchesFilter(models.ComplaintFilterNotResponded) {
		t.Error("open complaint filtered wrongly")
	}
	if got := models.NormalizeComplaintFilter("bogus"); got != models.ComplaintFilterAll {
		t.Errorf("NormalizeComplaintFilter: got %q, want %q", got, models.ComplaintFilterAll)
	}
}

func TestEmployee_LoadPercent(t *testing.T) {
	e := models.Employee{CurrentWorkload: 3, MaxWorkload: 8}
	if got := e.LoadPercent(); got != 37 {
		t.Errorf("LoadPercent: got %d, want 37", got)
	}
	if got := (models.Employee{CurrentWorkload: 3}).LoadPercent(); got != 0 {
		t.Errorf("LoadPercent with no capacity: got %d, want 0", got)
	}
}
