package events

import (
	"encoding/json"
	"time"

	"github.com/farihasabaya/storefront/pkg/messaging"
)

// InquirySubmitted is emitted after a contact or quote request was stored.
type InquirySubmitted struct {
	InquiryID         string    `json:"inquiry_id"`
	Kind              string    `json:"kind"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Topic             string    `json:"subject,omitempty"`
	Priority          string    `json:"priority"`
	EstimatedResponse string    `json:"estimated_response"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

// Subject returns the NATS subject the event is published on.
func (e InquirySubmitted) Subject() string {
	return messaging.InquirySubmittedSubject
}

func (e InquirySubmitted) Payload() ([]byte, error) {
	return json.Marshal(e)
}
