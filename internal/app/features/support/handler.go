// internal/app/features/support/handler.go
package support

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

const page = "support"

var sampleEmployees = viewload.NewFixture(
	models.Employee{ID: "1", Name: "Shade Musab", Role: "Junior Employee", Hired: "22/02/25", Department: "Customer care service", Email: "shademusad78@gmail.com", Phone: "+234-80945673"},
	models.Employee{ID: "2", Name: "Shade Musab", Role: "Junior Employee", Hired: "22/02/25", Department: "Customer care service", Email: "shademusad78@gmail.com", Phone: "+234-80945673"},
)

var sampleRequests = viewload.NewFixture(
	models.SupportRequest{ID: "RP-9001245", Name: "Tobi Ipeyenuqa", Service: "Personal Assistant"},
	models.SupportRequest{ID: "RP-9001246", Name: "Tobi Ipeyenuqa", Service: "Personal Assistant"},
	models.SupportRequest{ID: "RP-9001247", Name: "Tobi Ipeyenuqa", Service: "Personal Assistant"},
	models.SupportRequest{ID: "RP-9001248", Name: "Tobi Ipeyenuqa", Service: "Personal Assistant"},
	models.SupportRequest{ID: "RP-9001249", Name: "Tobi Ipeyenuqa", Service: "Personal Assistant"},
)

var sampleMessages = viewload.NewFixture(
	models.SupportMessage{Sender: "You", Self: true, Time: "Monday 11:20",
		Text: "Rose, can you see to it that the person that went to observe is back so that I can assign a service provider."},
	models.SupportMessage{Sender: "Shade Musab", Time: "Monday 10:54",
		Text: "And, why can't you do it yourself? Rose has not responded in a while; would you keep the customer waiting?"},
	models.SupportMessage{Sender: "Rose Chukwu", Time: "Monday 11:54",
		Text: "Sorry, I have diarrhea as a result of food poisoning. Had to rush to the pharmacy."},
	models.SupportMessage{Sender: "You", Self: true, Time: "Monday 11:56",
		Text: "You could not inform anyone before rushing off. That will be dealt with later. See to it that the unsuccessful payment complaint is resolved as soon as possible."},
)

type Handler struct {
	*shared.Deps
	// Email is the public support address; blank uses SupportEmail.
	Email string
}

func NewHandler(deps *shared.Deps) *Handler {
	return &Handler{Deps: deps}
}

func (h *Handler) employeesSource() viewload.Source[models.Employee] {
	return viewload.Source[models.Employee]{
		Name: "support_employees",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.SupportEmployees(ctx)
		},
		Decode:      viewload.Field[models.Employee](runapi.KeyEmployees, runapi.KeyData),
		Fixture:     sampleEmployees,
		FailMessage: "Failed to load employees",
	}
}

func (h *Handler) requestsSource() viewload.Source[models.SupportRequest] {
	return viewload.Source[models.SupportRequest]{
		Name: "support_requests",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.SupportRequests(ctx)
		},
		Decode:       viewload.Field[models.SupportRequest](runapi.KeyRequests, runapi.KeyData),
		Fixture:      sampleRequests,
		FailMessage:  "Failed to load requests",
		EmptyMessage: "No open requests.",
		AllowEmpty:   true,
	}
}

// messagesSource marks the signed-in user's own messages so the chat can
// align them; the API does not always send the flag.
func (h *Handler) messagesSource(self string) viewload.Source[models.SupportMessage] {
	mark := func(in []models.SupportMessage) ([]models.SupportMessage, error) {
		for i := range in {
			if self != "" && strings.EqualFold(in[i].Sender, self) {
				in[i].Self = true
			}
		}
		return in, nil
	}
	return viewload.Source[models.SupportMessage]{
		Name: "support_messages",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.SupportMessages(ctx)
		},
		Decode:       viewload.Map(viewload.Field[models.SupportMessage](runapi.KeyMessages, runapi.KeyData), mark),
		Fixture:      sampleMessages,
		FailMessage:  "Failed to load messages",
		EmptyMessage: "No messages yet.",
		AllowEmpty:   true,
	}
}

type supportState struct {
	Employees viewload.State[models.Employee]
	Requests  viewload.State[models.SupportRequest]
	Messages  viewload.State[models.SupportMessage]
}

func (s supportState) unauthorized() []bool {
	return []bool{s.Employees.Unauthorized, s.Requests.Unauthorized, s.Messages.Unauthorized}
}

func (h *Handler) load(ctx context.Context, self string) supportState {
	employees := viewload.NewSection(h.employeesSource(), h.Log)
	requests := viewload.NewSection(h.requestsSource(), h.Log)
	messages := viewload.NewSection(h.messagesSource(self), h.Log)
	defer employees.Close()
	defer requests.Close()
	defer messages.Close()

	viewload.Settle(ctx, employees.Task(nil), requests.Task(nil), messages.Task(nil))
	return supportState{
		Employees: employees.Snapshot(),
		Requests:  requests.Snapshot(),
		Messages:  messages.Snapshot(),
	}
}

type pageData struct {
	viewdata.BaseVM
	supportState
	Token string
}

// ServeSupport handles GET /support.
func (h *Handler) ServeSupport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.LoadContext(r, "support")
	defer cancel()

	var self string
	if u, ok := auth.CurrentUser(r); ok {
		self = u.Name
	}
	st := h.load(ctx, self)

	templates.Render(w, r, "support", pageData{
		BaseVM:       h.Page(w, r, page, "Customer Support Team", st.unauthorized()...),
		supportState: st,
		Token:        csrf.Token(r),
	})
}
