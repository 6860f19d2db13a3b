package events

import (
	"encoding/json"
	"time"

	"github.com/farihasabaya/storefront/pkg/messaging"
)

// SubscriptionChanged is emitted when a newsletter subscription starts, restarts or ends.
type SubscriptionChanged struct {
	SubscriberID string    `json:"subscriber_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	Active       bool      `json:"active"`
	Reactivated  bool      `json:"reactivated,omitempty"`
	Source       string    `json:"source,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func (e SubscriptionChanged) Subject() string {
	if e.Active {
		return messaging.NewsletterSubscribedSubject
	}
	return messaging.NewsletterUnsubscribedSubject
}

func (e SubscriptionChanged) Payload() ([]byte, error) {
	return json.Marshal(e)
}
