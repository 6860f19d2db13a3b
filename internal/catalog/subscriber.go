package catalog

import "time"

// Preferences selects which newsletter streams a subscriber receives.
type Preferences struct {
	NewArrivals     bool `json:"newArrivals"`
	Sales           bool `json:"sales"`
	StyleGuides     bool `json:"styleGuides"`
	ExclusiveOffers bool `json:"exclusiveOffers"`
}

// AllPreferences opts into every stream.
func AllPreferences() Preferences {
	return Preferences{NewArrivals: true, Sales: true, StyleGuides: true, ExclusiveOffers: true}
}

// Subscriber is a newsletter recipient. Email is stored lower-cased.
type Subscriber struct {
	ID               string      `json:"id"`
	Email            string      `json:"email"`
	FirstName        string      `json:"firstName"`
	SubscribedAt     time.Time   `json:"subscribedAt"`
	UnsubscribedAt   *time.Time  `json:"unsubscribedAt,omitempty"`
	IsActive         bool        `json:"isActive"`
	Preferences      Preferences `json:"preferences"`
	Source           string      `json:"source"`
	UnsubscribeToken string      `json:"unsubscribeToken"`
}

// GetID returns the subscriber identifier.
func (s Subscriber) GetID() string { return s.ID }

// Clone returns a deep copy.
func (s Subscriber) Clone() Subscriber {
	c := s
	if s.UnsubscribedAt != nil {
		t := *s.UnsubscribedAt
		c.UnsubscribedAt = &t
	}
	return c
}
