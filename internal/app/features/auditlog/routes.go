// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/go-chi/chi/v5"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/authz"
)

// Routes mounts the audit log under /audit. Managers only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.ManagerRoles...))
		pr.Get("/", h.ServeList)
		pr.Post("/deletion-requests/{id}/processed", h.HandleProcessed)
	})

	return r
}
