// internal/app/features/assign/handler.go
package assign

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/search"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

// requestLimit is how many service requests the page asks for.
const requestLimit = 100

// ServiceTypes is the service type filter list.
var ServiceTypes = []string{"Babysitting", "Plumbing", "Cleaning", "Personal Assistant", "Errand Service"}

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
		Decode:      viewload.Field[models.ServiceRequest](runapi.KeyServiceRequests),
		Fixture:     sampleRequests,
		FailMessage: "Failed to load data",
	}
}

func (h *Handler) employeesSource() viewload.Source[models.Employee] {
	return viewload.Source[models.Employee]{
		Name: "support_employees",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.SupportEmployees(ctx)
		},
		Decode:      viewload.Field[models.Employee](runapi.KeyEmployees),
		Fixture:     sampleEmployees,
		FailMessage: "Failed to load data",
	}
}

// Filters narrow the loaded requests in process; the API call is the same
// for every combination.
type Filters struct {
	Search      string
	Status      string
	ServiceType string
	Employee    string
}

func parseFilters(r *http.Request) Filters {
	or := func(v string) string {
		if v == "" {
			return "all"
		}
		return v
	}
	return Filters{
		Search:      query.Search(r, "search"),
		Status:      or(query.Get(r, "status")),
		ServiceType: or(query.Get(r, "service")),
		Employee:    or(query.Get(r, "employee")),
	}
}

// Match reports whether req passes every filter.
func (f Filters) Match(req models.ServiceRequest) bool {
	return search.Matches(f.Search, req.CustomerName, req.RequestID, req.ServiceType, req.Phone, req.Address) &&
		search.Choice(f.Status, req.Status) &&
		search.Choice(f.ServiceType, req.ServiceType) &&
		search.Choice(f.Employee, req.AssignedTo)
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f.Search != "" || f.Status != "all" || f.ServiceType != "all" || f.Employee != "all"
}

// URL is the page URL carrying f, used as the return target of actions.
func (f Filters) URL() string {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	for k, val := range map[string]string{"status": f.Status, "service": f.ServiceType, "employee": f.Employee} {
		if val != "" && val != "all" {
			v.Set(k, val)
		}
	}
	if len(v) == 0 {
		return "/assign"
	}
	return "/assign?" + v.Encode()
}

type assignState struct {
	Requests  viewload.State[models.ServiceRequest]
	Employees viewload.State[models.Employee]
	Visible   []models.ServiceRequest
}

func (s assignState) unauthorized() []bool {
	return []bool{s.Requests.Unauthorized, s.Employees.Unauthorized}
}

// load fetches requests and employees in parallel and applies f.
func (h *Handler) load(ctx context.Context, f Filters) assignState {
	requests := viewload.NewSection(h.requestsSource(), h.Log)
	employees := viewload.NewSection(h.employeesSource(), h.Log)
	defer requests.Close()
	defer employees.Close()

	viewload.Settle(ctx, requests.Task(nil), employees.Task(nil))

	st := assignState{Requests: requests.Snapshot(), Employees: employees.Snapshot()}
	for _, req := range st.Requests.Items {
		if f.Match(req) {
			st.Visible = append(st.Visible, req)
		}
	}
	return st
}

// employeeName resolves id against the employee list, for messages.
func (h *Handler) employeeName(ctx context.Context, id string) string {
	sec := viewload.NewSection(h.employeesSource(), h.Log)
	defer sec.Close()
	for _, e := range sec.Load(ctx, nil).Items {
		if e.ID.String() == id {
			return e.Name
		}
	}
	return id
}
