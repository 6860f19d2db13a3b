package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/farihasabaya/storefront/pkg/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionChanged_Subject(t *testing.T) {
	assert.Equal(t, messaging.NewsletterSubscribedSubject, SubscriptionChanged{Active: true}.Subject())
	assert.Equal(t, messaging.NewsletterUnsubscribedSubject, SubscriptionChanged{Active: false}.Subject())
}

func TestInquirySubmitted_Payload(t *testing.T) {
	// given
	e := InquirySubmitted{
		InquiryID:   "inq-1",
		Kind:        "contact",
		Email:       "a@b.com",
		Priority:    "high",
		SubmittedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	// when
	data, err := e.Payload()

	// then
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "inq-1", got["inquiry_id"])
	assert.Equal(t, "high", got["priority"])
	assert.NotContains(t, got, "subject")
	assert.Equal(t, messaging.InquirySubmittedSubject, e.Subject())
}

func TestInquirySubmitted_PayloadCarriesTopic(t *testing.T) {
	// given
	e := InquirySubmitted{InquiryID: "inq-2", Kind: "contact", Topic: "Sizing question"}

	// when
	data, err := e.Payload()

	// then
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Sizing question", got["subject"])
	assert.Equal(t, messaging.InquirySubmittedSubject, e.Subject())
}
