package deletionrequests_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/runpro9ja/adminhub/internal/app/store/deletionrequests"
	"github.com/runpro9ja/adminhub/internal/testutil"
)

var refPattern = regexp.MustCompile(`^DR-[0-9A-F]{8}$`)

func TestNewReference(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref := deletionrequests.NewReference()
		if !refPattern.MatchString(ref) {
			t.Fatalf("reference %q does not match %s", ref, refPattern)
		}
		seen[ref] = true
	}
	if len(seen) < 50 {
		t.Errorf("expected unique references, got %d distinct", len(seen))
	}
}

func TestStore_CreateDedupsOpenRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := deletionrequests.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	first, created, err := store.Create(ctx, deletionrequests.Input{Email: "Ada@Example.com", Reason: "not-using"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created {
		t.Error("first request should be created")
	}
	if first.Status != deletionrequests.StatusReceived {
		t.Errorf("status: got %q", first.Status)
	}

	again, created, err := store.Create(ctx, deletionrequests.Input{Email: "ada@example.com "})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created {
		t.Error("repeat request should reuse the open one")
	}
	if again.Reference != first.Reference {
		t.Errorf("reference: got %q, want %q", again.Reference, first.Reference)
	}
}

func TestStore_MarkProcessedAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := deletionrequests.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req, _, err := store.Create(ctx, deletionrequests.Input{Email: "bola@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.MarkProcessed(ctx, req.ID); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}

	open, err := store.List(ctx, deletionrequests.ListFilter{Status: deletionrequests.StatusReceived})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("open requests: got %d, want 0", len(open))
	}

	got, err := store.GetByReference(ctx, req.Reference)
	if err != nil {
		t.Fatalf("GetByReference failed: %v", err)
	}
	if got.Status != deletionrequests.StatusProcessed {
		t.Errorf("status: got %q, want processed", got.Status)
	}

	if _, err := store.GetByReference(ctx, "DR-00000000"); !errors.Is(err, deletionrequests.ErrNotFound) {
		t.Errorf("missing reference: got %v, want ErrNotFound", err)
	}
}
