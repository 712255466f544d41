package deleteaccount

import "github.com/go-chi/chi/v5"

// Routes are public; the CSRF middleware still guards the POST.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeForm)
	r.Post("/", h.HandleSubmit)
	r.Get("/received", h.ServeReceived)
	return r
}
