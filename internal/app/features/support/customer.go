package support

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
)

// SupportEmail is the default public customer support address.
const SupportEmail = "runpro9ja@gmail.com"

type customerData struct {
	viewdata.BaseVM
	Email        string
	ResponseTime string
}

func (h *Handler) email() string {
	if h.Email != "" {
		return h.Email
	}
	return SupportEmail
}

// ServeCustomer handles GET /support/customer. It is public.
func (h *Handler) ServeCustomer(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "support_customer", customerData{
		BaseVM:       viewdata.NewBaseVM(w, r, "Customer Support", "/"),
		Email:        h.email(),
		ResponseTime: "We usually respond within 24 hours",
	})
}
