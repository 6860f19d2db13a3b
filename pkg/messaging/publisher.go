// Package messaging defines the events the storefront emits for downstream consumers such as a mailer.
package messaging

import (
	"context"
	"log/slog"
)

const (
	InquirySubmittedSubject       = "inquiries.submitted"
	NewsletterSubscribedSubject   = "newsletter.subscribed"
	NewsletterUnsubscribedSubject = "newsletter.unsubscribed"
)

// StreamSubjects are the subject filters of the storefront stream.
var StreamSubjects = []string{"inquiries.>", "newsletter.>"}

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to the log instead of a broker. It is used when NATS is disabled.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "log_publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	data, err := event.Payload()
	if err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "event published", "subject", event.Subject(), "payload", string(data))
	return nil
}
