package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/farihasabaya/storefront/internal/catalog"
	apperrors "github.com/farihasabaya/storefront/internal/errors"
	"github.com/farihasabaya/storefront/internal/store"
	"github.com/farihasabaya/storefront/pkg/messaging"
	"github.com/farihasabaya/storefront/pkg/messaging/events"
	"github.com/farihasabaya/storefront/pkg/metrics"
	"github.com/google/uuid"
)

const defaultSource = "website"

// NewsletterService manages newsletter subscriptions.
type NewsletterService interface {
	// Subscribe starts a subscription or reactivates a lapsed one.
	// created is true for a new subscriber. Returns ErrAlreadySubscribed for an active email.
	Subscribe(ctx context.Context, dto SubscribeDto) (sub catalog.Subscriber, created bool, err error)

	// Unsubscribe ends the subscription matching email and token.
	// Returns ErrSubscriberNotFound when nothing matches and ErrAlreadyUnsubscribed when it already ended.
	Unsubscribe(ctx context.Context, dto UnsubscribeDto) (catalog.Subscriber, error)
}

// PreferencesDto carries optional opt-ins. Missing entries default to true.
type PreferencesDto struct {
	NewArrivals     *bool `json:"newArrivals"`
	Sales           *bool `json:"sales"`
	StyleGuides     *bool `json:"styleGuides"`
	ExclusiveOffers *bool `json:"exclusiveOffers"`
}

// SubscribeDto represents the data transfer object for a newsletter signup.
type SubscribeDto struct {
	Email       string          `json:"email"       validate:"required,email"`
	FirstName   string          `json:"firstName"   validate:"required,min=2,max=100"`
	Preferences *PreferencesDto `json:"preferences"`
	Source      string          `json:"source"      validate:"omitempty,max=50"`
}

// UnsubscribeDto represents the data transfer object for leaving the newsletter.
type UnsubscribeDto struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

// Newsletter implements NewsletterService.
// Subscriptions are keyed by email, which the repository cannot look up atomically,
// so subscribe and unsubscribe are serialized.
type Newsletter struct {
	mu         sync.Mutex
	repository store.Repository[catalog.Subscriber]
	notifier   notifier
	now        func() time.Time
	newID      func() string
}

// NewNewsletter creates a NewsletterService that announces changes through publisher.
func NewNewsletter(repo store.Repository[catalog.Subscriber], publisher messaging.Publisher, logger *slog.Logger) *Newsletter {
	return &Newsletter{
		repository: repo,
		notifier:   notifier{publisher: publisher, logger: logger.With("component", "newsletter")},
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (n *Newsletter) Subscribe(ctx context.Context, dto SubscribeDto) (catalog.Subscriber, bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	email := normalizeEmail(dto.Email)
	existing, found, err := n.findByEmail(ctx, email)
	if err != nil {
		return catalog.Subscriber{}, false, err
	}

	now := n.now().UTC()
	if found {
		if existing.IsActive {
			return catalog.Subscriber{}, false, fmt.Errorf("subscribe %s: %w", email, apperrors.ErrAlreadySubscribed)
		}
		reactivated, err := n.repository.Mutate(ctx, existing.ID, func(s *catalog.Subscriber) error {
			s.IsActive = true
			s.FirstName = strings.TrimSpace(dto.FirstName)
			s.SubscribedAt = now
			s.UnsubscribedAt = nil
			s.Preferences = mergePreferences(s.Preferences, dto.Preferences)
			return nil
		})
		if err != nil {
			return catalog.Subscriber{}, false, fmt.Errorf("failed to reactivate subscriber: %w", err)
		}
		n.announce(ctx, reactivated, true)
		return reactivated, false, nil
	}

	source := strings.TrimSpace(dto.Source)
	if source == "" {
		source = defaultSource
	}
	created, err := n.repository.Create(ctx, catalog.Subscriber{
		ID:               n.newID(),
		Email:            email,
		FirstName:        strings.TrimSpace(dto.FirstName),
		SubscribedAt:     now,
		IsActive:         true,
		Preferences:      mergePreferences(catalog.AllPreferences(), dto.Preferences),
		Source:           source,
		UnsubscribeToken: uuid.NewString(),
	})
	if err != nil {
		return catalog.Subscriber{}, false, fmt.Errorf("failed to create subscriber: %w", err)
	}
	n.announce(ctx, created, false)
	return created, true, nil
}

func (n *Newsletter) Unsubscribe(ctx context.Context, dto UnsubscribeDto) (catalog.Subscriber, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	email := normalizeEmail(dto.Email)
	existing, found, err := n.findByEmail(ctx, email)
	if err != nil {
		return catalog.Subscriber{}, err
	}
	if !found || subtle.ConstantTimeCompare([]byte(existing.UnsubscribeToken), []byte(dto.Token)) != 1 {
		return catalog.Subscriber{}, fmt.Errorf("unsubscribe %s: %w", email, apperrors.ErrSubscriberNotFound)
	}
	if !existing.IsActive {
		return catalog.Subscriber{}, fmt.Errorf("unsubscribe %s: %w", email, apperrors.ErrAlreadyUnsubscribed)
	}

	updated, err := n.repository.Mutate(ctx, existing.ID, func(s *catalog.Subscriber) error {
		now := n.now().UTC()
		s.IsActive = false
		s.UnsubscribedAt = &now
		return nil
	})
	if err != nil {
		return catalog.Subscriber{}, fmt.Errorf("failed to unsubscribe: %w", err)
	}
	metrics.SubmissionsTotal.WithLabelValues("unsubscribe").Inc()
	n.notifier.publish(ctx, events.SubscriptionChanged{
		SubscriberID: updated.ID,
		Email:        updated.Email,
		Active:       false,
		OccurredAt:   *updated.UnsubscribedAt,
	})
	return updated, nil
}

func (n *Newsletter) findByEmail(ctx context.Context, email string) (catalog.Subscriber, bool, error) {
	subscribers, err := n.repository.List(ctx)
	if err != nil {
		return catalog.Subscriber{}, false, fmt.Errorf("failed to fetch subscribers: %w", err)
	}
	for _, s := range subscribers {
		if s.Email == email {
			return s, true, nil
		}
	}
	return catalog.Subscriber{}, false, nil
}

func (n *Newsletter) announce(ctx context.Context, s catalog.Subscriber, reactivated bool) {
	metrics.SubmissionsTotal.WithLabelValues("subscribe").Inc()
	n.notifier.publish(ctx, events.SubscriptionChanged{
		SubscriberID: s.ID,
		Email:        s.Email,
		FirstName:    s.FirstName,
		Active:       true,
		Reactivated:  reactivated,
		Source:       s.Source,
		OccurredAt:   s.SubscribedAt,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mergePreferences(base catalog.Preferences, in *PreferencesDto) catalog.Preferences {
	if in == nil {
		return base
	}
	setIf(&base.NewArrivals, in.NewArrivals)
	setIf(&base.Sales, in.Sales)
	setIf(&base.StyleGuides, in.StyleGuides)
	setIf(&base.ExclusiveOffers, in.ExclusiveOffers)
	return base
}
