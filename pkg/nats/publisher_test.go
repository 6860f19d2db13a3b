package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/farihasabaya/storefront/pkg/messaging/events"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockJetStream struct {
	mock.Mock
}

func (m *mockJetStream) Publish(ctx context.Context, subject string, payload []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	args := m.Called(ctx, subject, payload)
	ack, _ := args.Get(0).(*jetstream.PubAck)
	return ack, args.Error(1)
}

func TestNatsPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	event := events.InquirySubmitted{InquiryID: "inq-1", Kind: "quote"}
	payload, err := event.Payload()
	require.NoError(t, err)

	t.Run("publishes payload on event subject", func(t *testing.T) {
		js := new(mockJetStream)
		js.On("Publish", ctx, "inquiries.submitted", payload).Return(&jetstream.PubAck{Stream: "STOREFRONT"}, nil).Once()

		err := NewNatsPublisher(js).Publish(ctx, event)

		require.NoError(t, err)
		js.AssertExpectations(t)
	})

	t.Run("wraps broker error", func(t *testing.T) {
		js := new(mockJetStream)
		boom := errors.New("no responders")
		js.On("Publish", ctx, "inquiries.submitted", payload).Return(nil, boom).Once()

		err := NewNatsPublisher(js).Publish(ctx, event)

		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "inquiries.submitted")
	})
}
