// internal/app/features/privacy/handler.go
package privacy

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// EffectiveDate is shown under the policy title.
const EffectiveDate = "1 September 2025"

type pageData struct {
	viewdata.BaseVM
	EffectiveDate string
	SupportEmail  string
	PrivacyEmail  string
}

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServePolicy handles GET /privacy-policy. It is public.
func (h *Handler) ServePolicy(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "privacy_policy", pageData{
		BaseVM:        viewdata.NewBaseVM(w, r, "Privacy Policy", "/"),
		EffectiveDate: EffectiveDate,
		SupportEmail:  "runpro9ja@gmail.com",
		PrivacyEmail:  "privacy@runpro9ja.com",
	})
}
