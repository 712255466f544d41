// internal/domain/models/complaint.go
package models

// Complaint is a customer complaint.
type Complaint struct {
	ID        FlexString `json:"id"`
	Name      string     `json:"name"`
	Date      string     `json:"date"`
	Complaint string     `json:"complaint"`
	Status    string     `json:"status"`
	Response  string     `json:"response,omitempty"`
}

// Complaint statuses as displayed.
const (
	ComplaintResponded    = "Responded"
	ComplaintNotResponded = "Not Responded"
)

// Responded reports whether staff already answered.
func (c Complaint) Responded() bool {
	return c.Status == ComplaintResponded || c.Status == "responded"
}

// Complaint filter values.
const (
	ComplaintFilterAll          = "all"
	ComplaintFilterResponded    = "responded"
	ComplaintFilterNotResponded = "not-responded"
)

// NormalizeComplaintFilter maps unknown values to "all".
func NormalizeComplaintFilter(f string) string {
	switch f {
	case ComplaintFilterResponded, ComplaintFilterNotResponded:
		return f
	default:
		return ComplaintFilterAll
	}
}

// MatchesFilter reports whether c belongs under filter f.
func (c Complaint) MatchesFilter(f string) bool {
	switch f {
	case ComplaintFilterResponded:
		return c.Responded()
	case ComplaintFilterNotResponded:
		return !c.Responded()
	default:
		return true
	}
}

func (c Complaint) Tone() string { return StatusTone(c.Status) }
