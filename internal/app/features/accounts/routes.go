// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/go-chi/chi/v5"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/authz"
)

// Routes mounts the accounts pages. Every staff role can browse; deleting
// and creating admins is for managers.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.StaffRoles...))
		pr.Get("/", h.ServeList)
		pr.Get("/live", h.ServeLive)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.ManagerRoles...))
		pr.Post("/{id}/delete", h.HandleDelete)
		pr.Post("/bulk-delete", h.HandleBulkDelete)
		pr.Post("/admins", h.HandleCreateAdmin)
	})

	return r
}
