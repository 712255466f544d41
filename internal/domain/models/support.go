// internal/domain/models/support.go
package models

// SupportRequest is an open customer request waiting for the support team.
type SupportRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Service string `json:"service"`
}

// SupportMessage is one message of the team chat.
type SupportMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Time   string `json:"time"`
	Self   bool   `json:"self,omitempty"`
}
