package auditlog_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/runpro9ja/adminhub/internal/app/store/audit"
	"github.com/runpro9ja/adminhub/internal/app/system/auditlog"
	"github.com/runpro9ja/adminhub/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memSink struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (m *memSink) Log(ctx context.Context, e audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return m.err
}

func (m *memSink) all() []audit.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]audit.Event(nil), m.events...)
}

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	req := httptest.NewRequest("GET", "/", nil)

	// These should all be no-ops, not panic
	logger.Log(context.Background(), audit.Event{EventType: "test"})
	logger.LoginSuccess(context.Background(), req, "u1", "admin@x.com", "admin")
	logger.Logout(context.Background(), req, "u1")
}

func TestLogger_Destinations(t *testing.T) {
	tests := []struct {
		setting  string
		wantDB   int
		wantLogs int
	}{
		{auditlog.All, 1, 1},
		{auditlog.DB, 1, 0},
		{auditlog.Log, 0, 1},
		{auditlog.Off, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.setting, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			sink := &memSink{}
			logger := auditlog.New(sink, zap.New(core), auditlog.Config{Auth: tt.setting, Admin: auditlog.Off})

			logger.LoginSuccess(context.Background(), httptest.NewRequest("POST", "/login", nil), "u1", "admin@x.com", "admin")

			if got := len(sink.all()); got != tt.wantDB {
				t.Errorf("db events: got %d, want %d", got, tt.wantDB)
			}
			if got := logs.FilterMessage("audit event").Len(); got != tt.wantLogs {
				t.Errorf("zap events: got %d, want %d", got, tt.wantLogs)
			}
		})
	}
}

func TestLogger_AdminFailureRecorded(t *testing.T) {
	sink := &memSink{}
	logger := auditlog.New(sink, zap.NewNop(), auditlog.Config{Admin: auditlog.DB})

	req := httptest.NewRequest("DELETE", "/accounts/42", nil)
	req.RemoteAddr = "10.1.1.1:555"
	logger.AccountDeleted(context.Background(), req, "admin-1", "42", "customers", errors.New("status 500"))

	events := sink.all()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Success {
		t.Error("expected a failed event")
	}
	if e.FailureReason != "status 500" {
		t.Errorf("FailureReason: got %q", e.FailureReason)
	}
	if e.IP != "10.1.1.1" {
		t.Errorf("IP: got %q, want %q", e.IP, "10.1.1.1")
	}
	if e.ActorID != "admin-1" || e.UserID != "42" {
		t.Errorf("ids: actor %q user %q", e.ActorID, e.UserID)
	}
}

func TestLogger_PublicFollowsAdminSetting(t *testing.T) {
	sink := &memSink{}
	logger := auditlog.New(sink, zap.NewNop(), auditlog.Config{Auth: auditlog.All, Admin: auditlog.Off})

	logger.DeletionRequested(context.Background(), httptest.NewRequest("POST", "/delete-account", nil), "DR-ABC", "not-using")
	if n := len(sink.all()); n != 0 {
		t.Errorf("expected no events with admin logging off, got %d", n)
	}
}

func TestLogger_SinkErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	sink := &memSink{err: errors.New("insert failed")}
	logger := auditlog.New(sink, zap.New(core), auditlog.Config{Auth: auditlog.DB})

	logger.Logout(context.Background(), nil, "u1")
	if logs.FilterMessage("failed to store audit event").Len() != 1 {
		t.Error("expected the sink error to be logged")
	}
}

func TestLogger_WithMongoStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: auditlog.DB, Admin: auditlog.DB})
	logger.SignoutUnauthorized(ctx, httptest.NewRequest("GET", "/complaints", nil), "u9", "complaints")

	events, err := store.GetByUser(ctx, "u9", 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 1 || events[0].EventType != audit.EventSignoutUnauthorized {
		t.Errorf("events: got %+v", events)
	}
}
