// internal/app/features/complaints/handler.go
package complaints

import (
	"context"
	"net/url"
	"strconv"

	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/htmlsanitize"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

const sampleText = "I have not seen the laundry service I requested even though I had booked five days before and have been approved"

func sampleComplaints() viewload.Fixture[models.Complaint] {
	responded := map[int]bool{4: true, 6: true, 7: true, 8: true, 11: true, 12: true, 13: true}
	items := make([]models.Complaint, 0, 13)
	for i := 1; i <= 13; i++ {
		status := models.ComplaintNotResponded
		if responded[i] {
			status = models.ComplaintResponded
		}
		items = append(items, models.Complaint{
			ID:        models.FlexString(strconv.Itoa(i)),
			Name:      "Salami Williams",
			Date:      "28/08/25",
			Complaint: sampleText,
			Status:    status,
		})
	}
	return viewload.NewFixture(items...)
}

var sample = sampleComplaints()

type Handler struct {
	*shared.Deps
}

func NewHandler(deps *shared.Deps) *Handler {
	return &Handler{Deps: deps}
}

// cleanComplaints strips markup from the customer-supplied fields.
func cleanComplaints(in []models.Complaint) ([]models.Complaint, error) {
	out := make([]models.Complaint, len(in))
	for i, c := range in {
		c.Name = htmlsanitize.StripTags(c.Name)
		c.Complaint = htmlsanitize.StripTags(c.Complaint)
		c.Response = htmlsanitize.StripTags(c.Response)
		out[i] = c
	}
	return out, nil
}

func (h *Handler) complaintsSource() viewload.Source[models.Complaint] {
	return viewload.Source[models.Complaint]{
		Name: "complaints",
		Fetch: func(ctx context.Context, q url.Values) (runapi.Envelope, error) {
			return h.API.Complaints(ctx, q.Get("status"))
		},
		Decode:       viewload.Map(viewload.Field[models.Complaint](runapi.KeyComplaints, runapi.KeyData), cleanComplaints),
		Fixture:      sample,
		FailMessage:  "Failed to load complaints",
		EmptyMessage: "No complaints yet.",
		AllowEmpty:   true,
	}
}

// listState is the filtered complaint list. Visible is filtered again in
// process so the sample rows honor the filter too.
type listState struct {
	Filter     string
	Complaints viewload.State[models.Complaint]
	Visible    []models.Complaint
}

func (h *Handler) load(ctx context.Context, filter string) listState {
	filter = models.NormalizeComplaintFilter(filter)
	sec := viewload.NewSection(h.complaintsSource(), h.Log)
	defer sec.Close()

	st := listState{Filter: filter, Complaints: sec.Load(ctx, url.Values{"status": {filter}})}
	for _, c := range st.Complaints.Items {
		if c.MatchesFilter(filter) {
			st.Visible = append(st.Visible, c)
		}
	}
	return st
}
