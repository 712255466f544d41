// internal/app/features/providers/handler.go
package providers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

const page = "providers"

const providerLocation = "No 16, Complex 2, Tejuosho Market, Yaba, Lagos"

var sampleProviders = viewload.NewFixture(
	models.Agent{ID: "890221", Name: "Oladejo Nehemiah", Service: "Plumber", Status: "Active", WorkRate: 89, Location: providerLocation},
	models.Agent{ID: "890222", Name: "Oladejo Nehemiah", Service: "Plumber", Status: "Active", WorkRate: 89, Location: providerLocation},
	models.Agent{ID: "890223", Name: "Oladejo Nehemiah", Service: "Plumber", Status: "Active", WorkRate: 89, Location: providerLocation},
	models.Agent{ID: "890224", Name: "Oladejo Nehemiah", Service: "Plumber", Status: "Active", WorkRate: 89, Location: providerLocation},
	models.Agent{ID: "890225", Name: "Oladejo Nehemiah", Service: "Plumber", Status: "Active", WorkRate: 89, Location: providerLocation},
)

var samplePotential = viewload.NewFixture(
	models.PotentialProvider{Name: "Ajayi Suleiman", AppliedFor: "Mechanic", Experience: "6 years", Location: "Idi-araba Arepo", Phone: "+234-569800345", Email: "suleyi890@gmail.com", Status: "Waitlisted"},
	models.PotentialProvider{Name: "Ajayi Suleiman", AppliedFor: "Mechanic", Experience: "6 years", Location: "Idi-araba Arepo", Phone: "+234-569800345", Email: "suleyi890@gmail.com", Status: "Reviewing"},
	models.PotentialProvider{Name: "Ajayi Suleiman", AppliedFor: "Mechanic", Experience: "6 years", Location: "Idi-araba Arepo", Phone: "+234-569800345", Email: "suleyi890@gmail.com", Status: "Cancelled"},
)

type Handler struct {
	*shared.Deps
}

func NewHandler(deps *shared.Deps) *Handler {
	return &Handler{Deps: deps}
}

func (h *Handler) providersSource() viewload.Source[models.Agent] {
	return viewload.Source[models.Agent]{
		Name: "service_providers",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.ServiceProviders(ctx)
		},
		Decode:      viewload.Field[models.Agent](runapi.KeyServiceProviders, runapi.KeyData),
		Fixture:     sampleProviders,
		FailMessage: "Failed to load service providers",
	}
}

func (h *Handler) potentialSource() viewload.Source[models.PotentialProvider] {
	return viewload.Source[models.PotentialProvider]{
		Name: "potential_providers",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.PotentialProviders(ctx)
		},
		Decode:      viewload.Field[models.PotentialProvider](runapi.KeyPotentialProviders, runapi.KeyData),
		Fixture:     samplePotential,
		FailMessage: "Failed to load potential providers",
	}
}

type providersState struct {
	Providers viewload.State[models.Agent]
	Potential viewload.State[models.PotentialProvider]
}

func (h *Handler) load(ctx context.Context) providersState {
	providers := viewload.NewSection(h.providersSource(), h.Log)
	potential := viewload.NewSection(h.potentialSource(), h.Log)
	defer providers.Close()
	defer potential.Close()

	viewload.Settle(ctx, providers.Task(nil), potential.Task(nil))
	return providersState{Providers: providers.Snapshot(), Potential: potential.Snapshot()}
}

type pageData struct {
	viewdata.BaseVM
	providersState
}

// ServeProviders handles GET /providers.
func (h *Handler) ServeProviders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.LoadContext(r, "providers")
	defer cancel()
	st := h.load(ctx)

	templates.Render(w, r, "providers", pageData{
		BaseVM:         h.Page(w, r, page, "Service Providers", st.Providers.Unauthorized, st.Potential.Unauthorized),
		providersState: st,
	})
}
