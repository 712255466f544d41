// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// ErrorLogger logs handler failures and renders a user-facing error page.
// Section fetch failures never come through here; they fall back to sample
// data inside the page instead.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger wraps logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

// LogServerError logs err at error level and renders a 500 page with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path), zap.String("method", r.Method))
	e.render(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs err at warn level and renders a 400 page with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, zap.Error(err), zap.String("path", r.URL.Path), zap.String("method", r.Method))
	e.render(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

// HTMXLogServerError is LogServerError for HTMX targets: it returns the
// message as a small snippet so the swap target shows it inline.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	if r.Header.Get("HX-Request") != "true" {
		e.LogServerError(w, r, msg, err, userMsg, backURL)
		return
	}
	e.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path), zap.String("method", r.Method))
	w.WriteHeader(http.StatusInternalServerError)
	templates.RenderSnippet(w, "error_inline", pageData{Message: userMsg})
}

func (e *ErrorLogger) render(w http.ResponseWriter, r *http.Request, status int, title, userMsg, backURL string) {
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, title, backURL),
		Message: userMsg,
	})
}
