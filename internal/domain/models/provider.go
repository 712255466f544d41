// internal/domain/models/provider.go
package models

// Agent is a service provider row (top agents, service providers).
type Agent struct {
	ID       FlexString `json:"id"`
	Name     string     `json:"name"`
	Service  string     `json:"service"`
	Status   string     `json:"status"`
	WorkRate int        `json:"workRate"`
	Location string     `json:"location,omitempty"`
}

// PotentialProvider is an applicant waiting to become a provider.
type PotentialProvider struct {
	Name       string `json:"name"`
	AppliedFor string `json:"appliedFor"`
	Experience string `json:"experience"`
	Location   string `json:"location"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Status     string `json:"status"`
}

// StatusTone maps a provider status to a badge tone.
func StatusTone(status string) string {
	switch status {
	case "Active", "Successful", "success", "Completed", "completed", "Responded", "responded", "delivered":
		return "ok"
	case "Waitlisted", "Pending", "pending", "In progress", "in progress", "assigned", "in_transit":
		return "warn"
	case "Reviewing":
		return "info"
	case "Cancelled", "Failed", "failed", "rejected", "Not Responded", "not-responded":
		return "bad"
	default:
		return "muted"
	}
}

func (a Agent) Tone() string { return StatusTone(a.Status) }
func (p PotentialProvider) Tone() string { return StatusTone(p.Status) }
