package service

import (
	"context"
	"log/slog"

	"github.com/farihasabaya/storefront/pkg/messaging"
	"github.com/farihasabaya/storefront/pkg/metrics"
)

// notifier publishes domain events after the state change they describe is stored.
// Delivery failures are logged and counted but never undo or fail the request.
type notifier struct {
	publisher messaging.Publisher
	logger    *slog.Logger
}

func (n notifier) publish(ctx context.Context, event messaging.Event) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		metrics.EventsPublished.WithLabelValues(event.Subject(), "error").Inc()
		n.logger.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(event.Subject(), "ok").Inc()
}
