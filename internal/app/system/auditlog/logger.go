// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/runpro9ja/adminhub/internal/app/store/audit"
	"github.com/runpro9ja/adminhub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Destination settings for Config fields.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off" // disabled
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for sign-in, sign-out and forced sign-out events.
	Auth string
	// Admin controls logging for staff actions (account deletes, admin
	// creation, request assignment, complaint responses) and public
	// deletion requests.
	Admin string
}

// Sink persists audit events. *audit.Store implements it.
type Sink interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger provides convenience methods for logging audit events.
// It logs to MongoDB (via a Sink) and to structured logs (via zap).
type Logger struct {
	sink   Sink
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. A nil sink disables database writes.
func New(sink Sink, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{
		sink:   sink,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := All
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin, audit.CategoryPublic:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = All
	}
	if setting == Off {
		return
	}

	if setting == All || setting == Log {
		l.logToZap(event)
	}
	if (setting == All || setting == DB) && l.sink != nil {
		if err := l.sink.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func fromRequest(r *http.Request, e audit.Event) audit.Event {
	if r != nil {
		e.IP = ratelimit.ClientIP(r)
		e.UserAgent = r.UserAgent()
	}
	return e
}

// --- Authentication Events ---

// LoginSuccess logs a successful staff sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, identifier, role string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    userID,
		Success:   true,
		Details:   map[string]string{"identifier": identifier, "role": role},
	}))
}

// LoginFailedInvalidCredentials logs a sign-in the remote API rejected.
func (l *Logger) LoginFailedInvalidCredentials(ctx context.Context, r *http.Request, identifier, reason string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedInvalidCredentials,
		Success:       false,
		FailureReason: reason,
		Details:       map[string]string{"identifier": identifier},
	}))
}

// LoginFailedRoleDenied logs a valid sign-in by a non-staff account.
func (l *Logger) LoginFailedRoleDenied(ctx context.Context, r *http.Request, userID, identifier, role string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedRoleDenied,
		UserID:        userID,
		Success:       false,
		FailureReason: "role not allowed",
		Details:       map[string]string{"identifier": identifier, "role": role},
	}))
}

// LoginFailedRateLimit logs a throttled sign-in attempt.
func (l *Logger) LoginFailedRateLimit(ctx context.Context, r *http.Request, identifier string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedRateLimit,
		Success:       false,
		FailureReason: "rate limited",
		Details:       map[string]string{"identifier": identifier},
	}))
}

// Logout logs a user-initiated sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userID string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    userID,
		Success:   true,
	}))
}

// SignoutUnauthorized logs a forced sign-out after the API rejected the
// session token on page.
func (l *Logger) SignoutUnauthorized(ctx context.Context, r *http.Request, userID, page string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventSignoutUnauthorized,
		UserID:    userID,
		Success:   true,
		Details:   map[string]string{"page": page},
	}))
}

// --- Admin Events ---

func (l *Logger) admin(ctx context.Context, r *http.Request, eventType, actorID, userID string, err error, details map[string]string) {
	e := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actorID,
		UserID:    userID,
		Success:   err == nil,
		Details:   details,
	}
	if err != nil {
		e.FailureReason = err.Error()
	}
	l.Log(ctx, fromRequest(r, e))
}

// AccountDeleted logs a staff delete of a remote account. A non-nil err
// records a failed attempt.
func (l *Logger) AccountDeleted(ctx context.Context, r *http.Request, actorID, accountID, accountType string, err error) {
	l.admin(ctx, r, audit.EventAccountDeleted, actorID, accountID, err,
		map[string]string{"account_type": accountType})
}

// AdminCreated logs creation of a staff account.
func (l *Logger) AdminCreated(ctx context.Context, r *http.Request, actorID, newID, username, role string, err error) {
	l.admin(ctx, r, audit.EventAdminCreated, actorID, newID, err,
		map[string]string{"username": username, "role": role})
}

// RequestAssigned logs assignment of a service request to an employee.
func (l *Logger) RequestAssigned(ctx context.Context, r *http.Request, actorID, requestID, employeeID string, err error) {
	l.admin(ctx, r, audit.EventRequestAssigned, actorID, "", err,
		map[string]string{"request_id": requestID, "employee_id": employeeID})
}

// RequestStatusUpdated logs a service request status change.
func (l *Logger) RequestStatusUpdated(ctx context.Context, r *http.Request, actorID, requestID, status string, err error) {
	l.admin(ctx, r, audit.EventRequestStatusUpdated, actorID, "", err,
		map[string]string{"request_id": requestID, "status": status})
}

// ComplaintResponded logs a response to a customer complaint.
func (l *Logger) ComplaintResponded(ctx context.Context, r *http.Request, actorID, complaintID string, err error) {
	l.admin(ctx, r, audit.EventComplaintResponded, actorID, "", err,
		map[string]string{"complaint_id": complaintID})
}

// SupportMessageSent logs a message posted to the support team channel.
func (l *Logger) SupportMessageSent(ctx context.Context, r *http.Request, actorID string, err error) {
	l.admin(ctx, r, audit.EventSupportMessageSent, actorID, "", err, nil)
}

// --- Public Events ---

// DeletionRequested logs an account deletion request from the public form.
func (l *Logger) DeletionRequested(ctx context.Context, r *http.Request, reference, reason string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryPublic,
		EventType: audit.EventDeletionRequested,
		Success:   true,
		Details:   map[string]string{"reference": reference, "reason": reason},
	}))
}
