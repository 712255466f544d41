// internal/app/features/auditlog/handler.go
package auditlog

import (
	"context"

	uierrors "github.com/runpro9ja/adminhub/internal/app/features/errors"
	"github.com/runpro9ja/adminhub/internal/app/store/audit"
	"github.com/runpro9ja/adminhub/internal/app/store/deletionrequests"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// EventStore is the read side of the audit store.
type EventStore interface {
	Query(ctx context.Context, f audit.QueryFilter) ([]audit.Event, error)
	CountByFilter(ctx context.Context, f audit.QueryFilter) (int64, error)
}

// RequestStore lists and closes public deletion requests.
type RequestStore interface {
	List(ctx context.Context, f deletionrequests.ListFilter) ([]models.DeletionRequest, error)
	MarkProcessed(ctx context.Context, id primitive.ObjectID) error
}

type Handler struct {
	Events   EventStore
	Requests RequestStore
	Sessions *auth.SessionManager
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler constructs the audit log handler. sessions may be nil, in
// which case flash messages are dropped.
func NewHandler(events EventStore, requests RequestStore, sessions *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Events:   events,
		Requests: requests,
		Sessions: sessions,
		Log:      logger,
		ErrLog:   errLog,
	}
}
