// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/runpro9ja/adminhub/internal/app/store/audit"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

// listItem is one audit row as displayed.
type listItem struct {
	ID        string
	Timestamp time.Time
	Category  string
	EventType string
	Actor     string
	Target    string
	IP        string
	Success   bool
	Reason    string
	Details   map[string]string
}

// filters are the list's query parameters as typed.
type filters struct {
	Category  string
	EventType string
	StartDate string
	EndDate   string
}

type listData struct {
	viewdata.BaseVM
	filters

	Items []listItem
	Total int64
	Pager viewdata.Pager

	Categories []categoryOption
	EventTypes []string

	// Open deletion requests from the public form.
	Pending []models.DeletionRequest
}

type categoryOption struct {
	Value string
	Label string
}

func allCategories() []categoryOption {
	return []categoryOption{
		{Value: audit.CategoryAuth, Label: "Authentication"},
		{Value: audit.CategoryAdmin, Label: "Administration"},
		{Value: audit.CategoryPublic, Label: "Public forms"},
	}
}

// eventTypesFor returns the event types of category, or all of them.
func eventTypesFor(category string) []string {
	if category != "" {
		return audit.EventTypes[category]
	}
	var all []string
	for _, c := range allCategories() {
		all = append(all, audit.EventTypes[c.Value]...)
	}
	return all
}
