// internal/domain/models/analytics.go
package models

// CompanyAnalytics is the payload of /admin/analytics/summary.
type CompanyAnalytics struct {
	Totals           AnalyticsTotals `json:"totals"`
	CompletedOrders  int             `json:"completedOrders"`
	PendingOrders    int             `json:"pendingOrders"`
	ServiceBreakdown []ServiceCount  `json:"serviceBreakdown"`
}

type AnalyticsTotals struct {
	Orders  int    `json:"orders"`
	Revenue Amount `json:"revenue"`
}

// ServiceCount is one row of the per-category order breakdown. ID is the
// service category id.
type ServiceCount struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

// TrendPoint is one bar of the company analytics chart.
type TrendPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
