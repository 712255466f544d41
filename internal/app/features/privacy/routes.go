// internal/app/features/privacy/routes.go
package privacy

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePolicy)
	return r
}
