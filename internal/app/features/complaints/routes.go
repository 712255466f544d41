package complaints

import (
	"github.com/go-chi/chi/v5"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/authz"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.StaffRoles...))
		pr.Get("/", h.ServeComplaints)
		pr.Post("/{id}/respond", h.HandleRespond)
	})

	return r
}
