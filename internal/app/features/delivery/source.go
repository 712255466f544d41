package delivery

import (
	"context"
	"net/url"

	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

const (
	fromJeobel = "From: Jeobel, Atakuko To: Quanna Micaline, Lekki Teligate"
	fromCasso  = "From: 23. Sukenu Qie Road Casso To: Quanna Micaline, Lekki Teligate"
)

var sampleDeliveries = viewload.NewFixture(
	models.Delivery{OrderID: "RP -267", DeliveryType: "Errand service", PickupDestination: fromJeobel, Date: "09/10/25", EstimatedTime: "2 Hours", RiderInCharge: "Samuel Biyomi", OrderBy: "Mariam Hassan", DeliveredTo: "Mariam Hassan", Status: "delivered"},
	models.Delivery{OrderID: "RP -267", DeliveryType: "Dispatch delivery", PickupDestination: fromCasso, Date: "09/10/25", EstimatedTime: "2 Hours", RiderInCharge: "Samuel Biyomi", OrderBy: "Mariam Hassan", DeliveredTo: "Chakouma Berry", Status: "in_transit"},
	models.Delivery{OrderID: "RP -267", DeliveryType: "Plumbing service", PickupDestination: fromCasso, Date: "09/10/25", EstimatedTime: "5 Hours", RiderInCharge: "Samuel Biyomi", OrderBy: "Mariam Hassan", DeliveredTo: "Shade Labah", Status: "pending"},
	models.Delivery{OrderID: "RP -267", DeliveryType: "Errand service", PickupDestination: fromCasso, Date: "09/10/25", EstimatedTime: "23 Hours", RiderInCharge: "Samuel Biyomi", OrderBy: "Abayemi Kawabe", DeliveredTo: "Mariam Hassan", Status: "delivered"},
)

// NormalizeStatus maps an unknown filter to "all".
func NormalizeStatus(s string) string {
	for _, v := range models.DeliveryStatuses {
		if v == s {
			return s
		}
	}
	return "all"
}

// StatusQuery is the section query for a status filter.
func StatusQuery(status string) url.Values {
	return url.Values{"status": {NormalizeStatus(status)}}
}

// Source lists deliveries, filtered by the "status" query value. The
// services page shares it.
func Source(api *runapi.Client) viewload.Source[models.Delivery] {
	return viewload.Source[models.Delivery]{
		Name: "deliveries",
		Fetch: func(ctx context.Context, q url.Values) (runapi.Envelope, error) {
			return api.Deliveries(ctx, q.Get("status"))
		},
		Decode:       viewload.Field[models.Delivery](runapi.KeyDeliveries, runapi.KeyData),
		Fixture:      sampleDeliveries,
		FailMessage:  "Failed to load delivery details",
		EmptyMessage: "No deliveries found.",
	}
}
