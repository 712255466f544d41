// internal/domain/models/deletionrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeletionRequest is a public request to delete a customer account.
type DeletionRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference string             `bson:"reference" json:"reference"`
	Email     string             `bson:"email" json:"email"`
	EmailCI   string             `bson:"email_ci" json:"-"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	Status    string             `bson:"status" json:"status"` // received | processed
	IP        string             `bson:"ip,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// DeletionReasons are the options of the reason picker.
var DeletionReasons = []struct{ Value, Label string }{
	{"privacy-concerns", "Privacy concerns"},
	{"found-alternative", "Found an alternative service"},
	{"not-using", "Not using the service anymore"},
	{"technical-issues", "Technical issues"},
	{"customer-service", "Customer service experience"},
	{"other", "Other reason"},
}

// IsDeletionReason reports whether v is empty or a known reason.
func IsDeletionReason(v string) bool {
	if v == "" {
		return true
	}
	for _, r := range DeletionReasons {
		if r.Value == v {
			return true
		}
	}
	return false
}
