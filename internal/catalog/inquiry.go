package catalog

import (
	"slices"
	"time"
)

// InquiryKind distinguishes plain contact messages from wholesale quote requests.
type InquiryKind string

const (
	KindContact InquiryKind = "contact"
	KindQuote   InquiryKind = "quote"
)

// InquiryStatus tracks the back-office handling of an inquiry.
type InquiryStatus string

const (
	StatusNew        InquiryStatus = "new"
	StatusInProgress InquiryStatus = "in-progress"
	StatusResolved   InquiryStatus = "resolved"
)

// Priority is the urgency with which an inquiry is answered.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Inquiry is a contact message or quote request submitted through the site.
// Quote-only fields are empty for contact messages and vice versa.
type Inquiry struct {
	ID                string        `json:"id"`
	Kind              InquiryKind   `json:"type"`
	Name              string        `json:"name"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone,omitempty"`
	Subject           string        `json:"subject,omitempty"`
	Message           string        `json:"message,omitempty"`
	InquiryType       string        `json:"inquiryType,omitempty"`
	OrderNumber       string        `json:"orderNumber,omitempty"`
	Urgency           Priority      `json:"urgency,omitempty"`
	Company           string        `json:"company,omitempty"`
	Quantity          int           `json:"quantity,omitempty"`
	ProductType       string        `json:"productType,omitempty"`
	Specifications    string        `json:"specifications,omitempty"`
	Budget            string        `json:"budget,omitempty"`
	Timeline          string        `json:"timeline,omitempty"`
	Attachments       []string      `json:"attachments,omitempty"`
	Priority          Priority      `json:"priority"`
	Status            InquiryStatus `json:"status"`
	Response          string        `json:"response,omitempty"`
	EstimatedResponse string        `json:"estimatedResponse"`
	SubmittedAt       time.Time     `json:"submittedAt"`
	RespondedAt       *time.Time    `json:"respondedAt,omitempty"`
}

// GetID returns the inquiry identifier.
func (i Inquiry) GetID() string { return i.ID }

// Clone returns a deep copy.
func (i Inquiry) Clone() Inquiry {
	c := i
	c.Attachments = slices.Clone(i.Attachments)
	if i.RespondedAt != nil {
		t := *i.RespondedAt
		c.RespondedAt = &t
	}
	return c
}

// InquiryQuery holds the back-office listing parameters. Status "all" or empty disables the filter.
type InquiryQuery struct {
	Status string
	Kind   InquiryKind
	Page   PageRequest
}

// InquiryStats summarizes the whole inquiry inbox regardless of filters.
type InquiryStats struct {
	Total        int `json:"total"`
	New          int `json:"new"`
	InProgress   int `json:"inProgress"`
	Resolved     int `json:"resolved"`
	HighPriority int `json:"highPriority"`
}

// QueryInquiries lists inquiries newest first.
func QueryInquiries(inquiries []Inquiry, q InquiryQuery) (Result[Inquiry, InquiryStats], error) {
	if err := q.Page.validate(MaxPageSize); err != nil {
		return Result[Inquiry, InquiryStats]{}, err
	}

	p := plan[Inquiry]{
		compare: func(a, b Inquiry) int { return b.SubmittedAt.Compare(a.SubmittedAt) },
	}
	if q.Status != "" && q.Status != AllCategories {
		p.filters = append(p.filters, func(i Inquiry) bool { return string(i.Status) == q.Status })
	}
	if q.Kind != "" {
		p.filters = append(p.filters, func(i Inquiry) bool { return i.Kind == q.Kind })
	}

	items, pagination, stats := execute(inquiries, p, q.Page)
	return Result[Inquiry, InquiryStats]{
		Items:      items,
		Pagination: pagination,
		Statistics: stats,
		Facets:     InquiryStatsOf(inquiries),
	}, nil
}

// InquiryStatsOf counts inquiries per status and high-priority ones.
func InquiryStatsOf(inquiries []Inquiry) InquiryStats {
	s := InquiryStats{Total: len(inquiries)}
	for _, i := range inquiries {
		switch i.Status {
		case StatusNew:
			s.New++
		case StatusInProgress:
			s.InProgress++
		case StatusResolved:
			s.Resolved++
		}
		if i.Priority == PriorityHigh {
			s.HighPriority++
		}
	}
	return s
}

// ContactPriority escalates order inquiries that quote an order number.
func ContactPriority(inquiryType, orderNumber string, urgency Priority) Priority {
	if inquiryType == "order" && orderNumber != "" {
		return PriorityHigh
	}
	if urgency == "" {
		return PriorityMedium
	}
	return urgency
}

// EstimatedResponse is the promised reply window for an inquiry.
func EstimatedResponse(kind InquiryKind, p Priority) string {
	if kind == KindQuote {
		return "24-48 hours"
	}
	switch p {
	case PriorityHigh:
		return "2-4 hours"
	case PriorityMedium:
		return "4-8 hours"
	default:
		return "8-24 hours"
	}
}
