// internal/app/features/services/handler.go
package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/runpro9ja/adminhub/internal/app/features/delivery"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

const page = "services"

// requestLimit caps the service request list.
const requestLimit = 50

func sampleRequest(id, status string) models.ServiceRequest {
	return models.ServiceRequest{RequestID: id, CustomerName: "Adejabola Ayomide", ServiceType: "Babysitting", Status: status, DueDate: "15/06/2025"}
}

var sampleRequests = viewload.NewFixture(
	sampleRequest("IP-001", "In progress"),
	sampleRequest("IP-0021", "Completed"),
	sampleRequest("IP-0031", "Pending"),
	sampleRequest("IP-0041", "In progress"),
	sampleRequest("IP-0051", "In progress"),
	sampleRequest("IP-0061", "In progress"),
	sampleRequest("IP-0071", "In progress"),
	sampleRequest("IP-0081", "In progress"),
	sampleRequest("IP-0091", "In progress"),
	sampleRequest("IP-0101", "In progress"),
	sampleRequest("IP-0111", "In progress"),
	sampleRequest("IP-0121", "In progress"),
	sampleRequest("IP-0131", "In progress"),
)

type Handler struct {
	*shared.Deps
}

func NewHandler(deps *shared.Deps) *Handler {
	return &Handler{Deps: deps}
}

func (h *Handler) requestsSource() viewload.Source[models.ServiceRequest] {
	return viewload.Source[models.ServiceRequest]{
		Name: "service_requests",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.ServiceRequests(ctx, requestLimit, "")
		},
		Decode:      viewload.Field[models.ServiceRequest](runapi.KeyServiceRequests, runapi.KeyData),
		Fixture:     sampleRequests,
		FailMessage: "Failed to load service requests",
	}
}

type servicesState struct {
	Requests   viewload.State[models.ServiceRequest]
	Deliveries viewload.State[models.Delivery]
}

func (h *Handler) load(ctx context.Context) servicesState {
	requests := viewload.NewSection(h.requestsSource(), h.Log)
	deliveries := viewload.NewSection(delivery.Source(h.API), h.Log)
	defer requests.Close()
	defer deliveries.Close()

	viewload.Settle(ctx, requests.Task(nil), deliveries.Task(delivery.StatusQuery("all")))
	return servicesState{Requests: requests.Snapshot(), Deliveries: deliveries.Snapshot()}
}

type pageData struct {
	viewdata.BaseVM
	servicesState
}

// ServeServices handles GET /services.
func (h *Handler) ServeServices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.LoadContext(r, "services")
	defer cancel()
	st := h.load(ctx)

	templates.Render(w, r, "services", pageData{
		BaseVM:        h.Page(w, r, page, "Services", st.Requests.Unauthorized, st.Deliveries.Unauthorized),
		servicesState: st,
	})
}
