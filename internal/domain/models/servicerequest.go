// internal/domain/models/servicerequest.go
package models

// ServiceRequest is a customer order as handled by the support team.
type ServiceRequest struct {
	RequestID          string     `json:"requestId"`
	CustomerName       string     `json:"customerName"`
	ServiceType        string     `json:"serviceType"`
	Status             string     `json:"status"`
	DueDate            string     `json:"dueDate"`
	Phone              string     `json:"phone,omitempty"`
	Address            string     `json:"address,omitempty"`
	Email              string     `json:"email,omitempty"`
	AssignedTo         string     `json:"assignedTo,omitempty"`
	AssignedEmployeeID FlexString `json:"assignedEmployeeId,omitempty"`
	AssignmentDate     string     `json:"assignmentDate,omitempty"`
	AssignmentNote     string     `json:"assignmentNote,omitempty"`
	CompletionDate     string     `json:"completionDate,omitempty"`
	RejectionReason    string     `json:"rejectionReason,omitempty"`
	CreatedAt          string     `json:"createdAt,omitempty"`
	Priority           string     `json:"priority,omitempty"`
}

// Assignable reports whether the request can still be handed to an employee.
func (s ServiceRequest) Assignable() bool {
	return s.Status != RequestAssigned && s.Status != RequestCompleted
}

// Service request statuses.
const (
	RequestPending    = "pending"
	RequestAssigned   = "assigned"
	RequestInProgress = "in progress"
	RequestCompleted  = "completed"
	RequestRejected   = "rejected"
)

// RequestStatuses is the status filter list.
var RequestStatuses = []string{RequestPending, RequestAssigned, RequestInProgress, RequestCompleted, RequestRejected}

// Employee is a member of the customer support team.
type Employee struct {
	ID              FlexString `json:"id"`
	Name            string     `json:"name"`
	Role            string     `json:"role"`
	Department      string     `json:"department"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Hired           string     `json:"hired"`
	Specialization  []string   `json:"specialization,omitempty"`
	CurrentWorkload int        `json:"currentWorkload,omitempty"`
	MaxWorkload     int        `json:"maxWorkload,omitempty"`
	Rating          float64    `json:"rating,omitempty"`
}

// LoadPercent is the current workload as a share of capacity.
func (e Employee) LoadPercent() int {
	if e.MaxWorkload <= 0 {
		return 0
	}
	p := e.CurrentWorkload * 100 / e.MaxWorkload
	if p > 100 {
		return 100
	}
	return p
}

func (s ServiceRequest) Tone() string { return StatusTone(s.Status) }
