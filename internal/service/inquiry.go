package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/farihasabaya/storefront/internal/catalog"
	"github.com/farihasabaya/storefront/internal/store"
	"github.com/farihasabaya/storefront/pkg/messaging"
	"github.com/farihasabaya/storefront/pkg/messaging/events"
	"github.com/farihasabaya/storefront/pkg/metrics"
	"github.com/google/uuid"
)

// InquiryService handles contact messages and quote requests.
type InquiryService interface {
	// SubmitContact stores a contact message and announces it.
	SubmitContact(ctx context.Context, dto ContactDto) (catalog.Inquiry, error)

	// SubmitQuote stores a quote request and announces it.
	SubmitQuote(ctx context.Context, dto QuoteDto) (catalog.Inquiry, error)

	// List returns inquiries newest first with inbox statistics over every inquiry.
	List(ctx context.Context, q catalog.InquiryQuery) (catalog.Result[catalog.Inquiry, catalog.InquiryStats], error)

	// UpdateStatus moves an inquiry through the back-office workflow.
	// Returns ErrInquiryNotFound if no inquiry exists with the given ID.
	UpdateStatus(ctx context.Context, id string, dto InquiryStatusDto) (catalog.Inquiry, error)
}

// ContactDto represents the data transfer object for a contact message.
type ContactDto struct {
	Name        string           `json:"name"        validate:"required,min=2,max=100"`
	Email       string           `json:"email"       validate:"required,email"`
	Phone       string           `json:"phone"       validate:"omitempty,max=20"`
	Subject     string           `json:"subject"     validate:"required,min=5,max=200"`
	Message     string           `json:"message"     validate:"required,min=10,max=5000"`
	InquiryType string           `json:"inquiryType" validate:"omitempty,oneof=general order size custom wholesale press"`
	OrderNumber string           `json:"orderNumber" validate:"omitempty,max=50"`
	Urgency     catalog.Priority `json:"urgency"     validate:"omitempty,oneof=low medium high"`
}

// QuoteDto represents the data transfer object for a wholesale or custom quote request.
type QuoteDto struct {
	Name           string   `json:"name"           validate:"required,min=2,max=100"`
	Email          string   `json:"email"          validate:"required,email"`
	Phone          string   `json:"phone"          validate:"required,min=10,max=20"`
	Company        string   `json:"company"        validate:"omitempty,max=120"`
	Quantity       int      `json:"quantity"       validate:"required,min=1"`
	ProductType    string   `json:"productType"    validate:"required,min=1,max=100"`
	Budget         string   `json:"budget"         validate:"omitempty,max=100"`
	Timeline       string   `json:"timeline"       validate:"omitempty,max=100"`
	Specifications string   `json:"specifications" validate:"required,min=20,max=5000"`
	Attachments    []string `json:"attachments"    validate:"omitempty,max=10,dive,url"`
}

// InquiryStatusDto is the back-office update of an inquiry.
type InquiryStatusDto struct {
	Status   catalog.InquiryStatus `json:"status"   validate:"required,oneof=new in-progress resolved"`
	Response string                `json:"response" validate:"omitempty,max=5000"`
}

// Inquiries implements InquiryService.
type Inquiries struct {
	repository store.Repository[catalog.Inquiry]
	notifier   notifier
	now        func() time.Time
	newID      func() string
}

// NewInquiries creates an InquiryService that announces submissions through publisher.
func NewInquiries(repo store.Repository[catalog.Inquiry], publisher messaging.Publisher, logger *slog.Logger) *Inquiries {
	return &Inquiries{
		repository: repo,
		notifier:   notifier{publisher: publisher, logger: logger.With("component", "inquiries")},
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (s *Inquiries) SubmitContact(ctx context.Context, dto ContactDto) (catalog.Inquiry, error) {
	inquiryType := dto.InquiryType
	if inquiryType == "" {
		inquiryType = "general"
	}
	urgency := dto.Urgency
	if urgency == "" {
		urgency = catalog.PriorityMedium
	}
	orderNumber := strings.TrimSpace(dto.OrderNumber)
	priority := catalog.ContactPriority(inquiryType, orderNumber, urgency)

	inquiry := catalog.Inquiry{
		ID:                s.newID(),
		Kind:              catalog.KindContact,
		Name:              strings.TrimSpace(dto.Name),
		Email:             strings.ToLower(strings.TrimSpace(dto.Email)),
		Phone:             strings.TrimSpace(dto.Phone),
		Subject:           strings.TrimSpace(dto.Subject),
		Message:           strings.TrimSpace(dto.Message),
		InquiryType:       inquiryType,
		OrderNumber:       orderNumber,
		Urgency:           urgency,
		Priority:          priority,
		Status:            catalog.StatusNew,
		EstimatedResponse: catalog.EstimatedResponse(catalog.KindContact, priority),
		SubmittedAt:       s.now().UTC(),
	}
	return s.submit(ctx, inquiry)
}

func (s *Inquiries) SubmitQuote(ctx context.Context, dto QuoteDto) (catalog.Inquiry, error) {
	inquiry := catalog.Inquiry{
		ID:                s.newID(),
		Kind:              catalog.KindQuote,
		Name:              strings.TrimSpace(dto.Name),
		Email:             strings.ToLower(strings.TrimSpace(dto.Email)),
		Phone:             strings.TrimSpace(dto.Phone),
		Company:           strings.TrimSpace(dto.Company),
		Quantity:          dto.Quantity,
		ProductType:       strings.TrimSpace(dto.ProductType),
		Specifications:    strings.TrimSpace(dto.Specifications),
		Budget:            strings.TrimSpace(dto.Budget),
		Timeline:          strings.TrimSpace(dto.Timeline),
		Attachments:       slices.Clone(dto.Attachments),
		Priority:          catalog.PriorityMedium,
		Status:            catalog.StatusNew,
		EstimatedResponse: catalog.EstimatedResponse(catalog.KindQuote, catalog.PriorityMedium),
		SubmittedAt:       s.now().UTC(),
	}
	return s.submit(ctx, inquiry)
}

func (s *Inquiries) submit(ctx context.Context, inquiry catalog.Inquiry) (catalog.Inquiry, error) {
	created, err := s.repository.Create(ctx, inquiry)
	if err != nil {
		return catalog.Inquiry{}, fmt.Errorf("failed to store %s inquiry: %w", inquiry.Kind, err)
	}
	metrics.SubmissionsTotal.WithLabelValues(string(created.Kind)).Inc()
	s.notifier.publish(ctx, events.InquirySubmitted{
		InquiryID:         created.ID,
		Kind:              string(created.Kind),
		Name:              created.Name,
		Email:             created.Email,
		Topic:             created.Subject,
		Priority:          string(created.Priority),
		EstimatedResponse: created.EstimatedResponse,
		SubmittedAt:       created.SubmittedAt,
	})
	return created, nil
}

func (s *Inquiries) List(ctx context.Context, q catalog.InquiryQuery) (catalog.Result[catalog.Inquiry, catalog.InquiryStats], error) {
	inquiries, err := s.repository.List(ctx)
	if err != nil {
		return catalog.Result[catalog.Inquiry, catalog.InquiryStats]{}, fmt.Errorf("failed to fetch inquiries: %w", err)
	}
	return catalog.QueryInquiries(inquiries, q)
}

func (s *Inquiries) UpdateStatus(ctx context.Context, id string, dto InquiryStatusDto) (catalog.Inquiry, error) {
	updated, err := s.repository.Mutate(ctx, id, func(i *catalog.Inquiry) error {
		i.Status = dto.Status
		if response := strings.TrimSpace(dto.Response); response != "" {
			i.Response = response
			now := s.now().UTC()
			i.RespondedAt = &now
		}
		return nil
	})
	if err != nil {
		return catalog.Inquiry{}, fmt.Errorf("failed to update inquiry with ID %s: %w", id, err)
	}
	return updated, nil
}
