package delivery_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/runpro9ja/adminhub/internal/app/features/delivery"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/testutil"
	"go.uber.org/zap"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "all"},
		{"all", "all"},
		{"in_transit", "in_transit"},
		{"delivered", "delivered"},
		{"lost", "all"},
	}
	for _, tc := range tests {
		if got := delivery.NormalizeStatus(tc.in); got != tc.want {
			t.Errorf("NormalizeStatus(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSource_StatusFilterReachesAPI(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.OK("GET /admin/deliveries", "deliveries", []map[string]any{
		{"orderId": "RP-1", "deliveryType": "Errand service", "status": "delivered"},
	})
	sec := viewload.NewSection(delivery.Source(api.Client(t)), zap.NewNop())
	defer sec.Close()

	ctx, cancel := context.WithTimeout(auth.WithToken(context.Background(), "test-token"), 5*time.Second)
	defer cancel()

	st := sec.Load(ctx, delivery.StatusQuery("delivered"))
	if st.HasError() || st.Count() != 1 || st.Items[0].Tone() != "ok" {
		t.Errorf("state: got %+v", st)
	}

	st = sec.Load(ctx, delivery.StatusQuery("bogus"))
	if st.HasError() {
		t.Errorf("unexpected error %q", st.Err)
	}

	calls := api.CallsTo("GET /admin/deliveries")
	if len(calls) != 2 {
		t.Fatalf("calls: got %d, want 2", len(calls))
	}
	if q, _ := url.ParseQuery(calls[0].Query); q.Get("status") != "delivered" {
		t.Errorf("first query: got %q", calls[0].Query)
	}
	if calls[1].Query != "" {
		t.Errorf("unfiltered query: got %q, want empty", calls[1].Query)
	}
}

func TestSource_FailureFallsBack(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	sec := viewload.NewSection(delivery.Source(api.Client(t)), zap.NewNop())
	defer sec.Close()

	st := sec.Load(auth.WithToken(context.Background(), "test-token"), nil)
	if !st.Fallback || st.Count() != 4 || st.Err != "Failed to load delivery details" {
		t.Errorf("got err=%q fallback=%v count=%d", st.Err, st.Fallback, st.Count())
	}
}
