// internal/app/system/runapi/admin.go
package runapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Payload keys used by the admin endpoints.
const (
	KeyAnalytics          = "analytics"
	KeyTrend              = "trend"
	KeyAgents             = "agents"
	KeyPayments           = "payments"
	KeyData               = "data"
	KeyAccounts           = "accounts"
	KeyServiceRequests    = "serviceRequests"
	KeyEmployees          = "employees"
	KeyComplaints         = "complaints"
	KeySummary            = "summary"
	KeyInflow             = "inflow"
	KeyOutflow            = "outflow"
	KeyServiceProviders   = "serviceProviders"
	KeyPotentialProviders = "potentialProviders"
	KeyDeliveries         = "deliveries"
	KeyRequests           = "requests"
	KeyMessages           = "messages"
	KeyToken              = "token"
	KeyUser               = "user"
)

func limitQuery(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, identifier, password string) (Envelope, error) {
	return c.Send(ctx, http.MethodPost, "/auth/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	})
}

// CompanyAnalytics returns the analytics summary (totals, service breakdown).
func (c *Client) CompanyAnalytics(ctx context.Context) (Envelope, error) {
	return c.Get(ctx, "/admin/analytics/summary", nil)
}

// AnalyticsTrend returns the revenue series for view "monthly" or "weekly".
func (c *Client) AnalyticsTrend(ctx context.Context, view string) (Envelope, error) {
	return c.Get(ctx, "/admin/analytics/trend", url.Values{"view": {view}})
}

func (c *Client) TopAgents(ctx context.Context, limit int) (Envelope, error) {
	return c.Get(ctx, "/admin/top-agents", limitQuery(limit))
}

func (c *Client) RecentPayments(ctx context.Context, limit int) (Envelope, error) {
	return c.Get(ctx, "/admin/recent-payments", limitQuery(limit))
}

// AccountsQuery selects one page of one account type.
type AccountsQuery struct {
	Type   string
	Page   int
	Limit  int
	Search string
}

// Values encodes q the way the accounts endpoint expects.
func (q AccountsQuery) Values() url.Values {
	v := url.Values{}
	v.Set("type", q.Type)
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func (c *Client) Accounts(ctx context.Context, q AccountsQuery) (Envelope, error) {
	return c.Get(ctx, "/admin/accounts", q.Values())
}

func (c *Client) DeleteAccount(ctx context.Context, id string) (Envelope, error) {
	return c.Send(ctx, http.MethodDelete, "/admin/accounts/"+url.PathEscape(id), nil)
}

// NewAdmin is the body of POST /admin.
type NewAdmin struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// CreateAdmin creates a staff account. The response carries the generated
// temporary password under data.password.
func (c *Client) CreateAdmin(ctx context.Context, a NewAdmin) (Envelope, error) {
	return c.Send(ctx, http.MethodPost, "/admin", a)
}

func (c *Client) ServiceRequests(ctx context.Context, limit int, search string) (Envelope, error) {
	q := limitQuery(limit)
	if search != "" {
		q.Set("search", search)
	}
	return c.Get(ctx, "/admin/service-requests", q)
}

func (c *Client) SupportEmployees(ctx context.Context) (Envelope, error) {
	return c.Get(ctx, "/admin/support-employees", nil)
}

func (c *Client) AssignRequest(ctx context.Context, requestID, employeeID, note string) (Envelope, error) {
	return c.Send(ctx, http.MethodPost, "/admin/service-requests/"+url.PathEscape(requestID)+"/assign", map[string]string{
		"employeeId": employeeID,
		"note":       note,
	})
}

func (c *Client) UpdateRequestStatus(ctx context.Context, requestID, status string) (Envelope, error) {
	return c.Send(ctx, http.MethodPut, "/admin/service-requests/"+url.PathEscape(requestID)+"/status", map[string]string{
		"status": status,
	})
}

func (c *Client) Complaints(ctx context.Context, status string) (Envelope, error) {
	q := url.Values{}
	if status != "" && status != "all" {
		q.Set("status", status)
	}
	return c.Get(ctx, "/admin/complaints", q)
}

func (c *Client) RespondToComplaint(ctx context.Context, id, response string) (Envelope, error) {
	return c.Send(ctx, http.MethodPut, "/admin/complaints/"+url.PathEscape(id)+"/respond", map[string]string{
		"response": response,
	})
}

func (c *Client) PaymentSummary(ctx context.Context) (Envelope, error) {
	return c.Get(ctx, "/admin/payments/summary", nil)
}

func pageQuery(page, limit int) url.Values {
	q := limitQuery(limit)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

func (c *Client) CashInflow(ctx context.Context, page, limit int) (Envelope, error) {
	return c.Get(ctx, "/admin/payments/inflow", pageQuery(page, limit))
}

func (c *Client) CashOutflow(ctx context.Context, page, limit int) (Envelope, error) {
	return c.Get(ctx, "/admin/payments/outflow", pageQuery(page, limit))
}

func (c *Client) ServiceProviders(ctx context.Context) (Envelope, error) {
	return c.Get(ctx, "/admin/service-providers", nil)
}

func (c *Client) PotentialProviders(ctx context.Context) (Envelope, error) {
	return c.Get(ctx, "/admin/potential-providers", nil)
}

func (c *Client) Deliveries(ctx context.Context, status string) (Envelope, error) {
	q := url.Values{}
	if status != "" && status != "all" {
		q.Set("status", status)
	}
	return c.Get(ctx, "/admin/deliveries", q)
}

func (c *Client) SupportRequests(ctx context.Context) (Envelope, error) {
	return c.Get(ctx, "/admin/support/requests", nil)
}

func (c *Client) SupportMessages(ctx context.Context) (Envelope, error) {
	return c.Get(ctx, "/admin/support/messages", nil)
}

func (c *Client) SendSupportMessage(ctx context.Context, text string) (Envelope, error) {
	return c.Send(ctx, http.MethodPost, "/admin/support/messages", map[string]string{"text": text})
}
