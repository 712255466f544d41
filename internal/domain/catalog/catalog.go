// Package catalog maps the marketplace's service category ids to display
// names. The API reports order breakdowns keyed by category id only.
package catalog

import (
	"fmt"
	"sort"
)

// Service is one professional service category.
type Service struct {
	Key        string
	Name       string
	Slug       string
	CategoryID string
}

// services is the catalog in definition order. Grocery shares its category
// with errand; the first entry wins on reverse lookup.
var services = []Service{
	{"plumbing", "Professional Plumbing", "professional-plumbing", "68eab131001131897a342d85"},
	{"electrical", "Electrical Services", "electrical-services", "68eab131001131897a342d8f"},
	{"mechanical", "Mechanical Services", "mechanical-services", "68eab132001131897a342d99"},
	{"carpentry", "Carpentry Services", "carpentry-services", "68eab132001131897a342da2"},
	{"painting", "Painting Services", "painting-services", "68eab133001131897a342dac"},
	{"fashion", "Fashion Services", "fashion-services", "68eab133001131897a342db6"},
	{"beauty", "Beauty Services", "beauty-services", "68eab134001131897a342dbf"},
	{"errand", "Errand Services", "errand-services", "68eab134001131897a342dc9"},
	{"delivery", "Delivery Services", "delivery-services", "68eab134001131897a342dd2"},
	{"moving", "Moving Services", "moving-services", "68eab135001131897a342ddb"},
	{"cleaning", "Cleaning Services", "cleaning-services", "68eab135001131897a342de4"},
	{"babysitting", "Babysitting Services", "babysitting-services", "68eab136001131897a342ded"},
	{"personal", "Personal Assistance", "personal-assistance", "68eab136001131897a342df5"},
	{"grocery", "Grocery Shopping", "grocery-shopping", "68eab134001131897a342dc9"},
}

var (
	byCategory = map[string]Service{}
	byKey      = map[string]Service{}
)

func init() {
	for _, s := range services {
		if _, dup := byCategory[s.CategoryID]; !dup {
			byCategory[s.CategoryID] = s
		}
		byKey[s.Key] = s
	}
}

// All returns the catalog in definition order.
func All() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// ByCategoryID looks up a service by its category id.
func ByCategoryID(id string) (Service, bool) {
	s, ok := byCategory[id]
	return s, ok
}

// ByKey looks up a service by its short key ("plumbing").
func ByKey(key string) (Service, bool) {
	s, ok := byKey[key]
	return s, ok
}

// NameFor returns the display name for a category id, or
// "Unknown Service (<id>)".
func NameFor(categoryID string) string {
	if s, ok := byCategory[categoryID]; ok {
		return s.Name
	}
	return fmt.Sprintf("Unknown Service (%s)", categoryID)
}

// Share is one slice of the services-provided breakdown.
type Share struct {
	CategoryID string
	Name       string
	Count      int
	Percent    float64
}

// Label renders the percentage with one decimal, e.g. "41.9%".
func (s Share) Label() string {
	return fmt.Sprintf("%.1f%%", s.Percent)
}

// Breakdown resolves names and percentages for per-category counts, in the
// order given. The second return value is the total count.
func Breakdown(counts []Count) ([]Share, int) {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	out := make([]Share, 0, len(counts))
	for _, c := range counts {
		sh := Share{CategoryID: c.CategoryID, Name: NameFor(c.CategoryID), Count: c.Count}
		if total > 0 {
			sh.Percent = float64(c.Count) * 100 / float64(total)
		}
		out = append(out, sh)
	}
	return out, total
}

// Count is an order count for a category.
type Count struct {
	CategoryID string
	Count      int
}

// SortByCount orders shares largest first, keeping input order for ties.
func SortByCount(shares []Share) {
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].Count > shares[j].Count })
}
