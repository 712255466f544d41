// internal/domain/models/delivery.go
package models

// Delivery is one tracked delivery.
type Delivery struct {
	OrderID           string `json:"orderId"`
	DeliveryType      string `json:"deliveryType"`
	PickupDestination string `json:"pickupDestination"`
	Date              string `json:"date"`
	EstimatedTime     string `json:"estimatedTime"`
	RiderInCharge     string `json:"riderInCharge"`
	OrderBy           string `json:"orderBy"`
	DeliveredTo       string `json:"deliveredTo"`
	Status            string `json:"status,omitempty"`
}

// Delivery status filter values.
var DeliveryStatuses = []string{"pending", "in_transit", "delivered", "cancelled"}

func (d Delivery) Tone() string { return StatusTone(d.Status) }
