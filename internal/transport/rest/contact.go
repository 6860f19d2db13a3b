package rest

import (
	"net/http"

	"github.com/farihasabaya/storefront/internal/catalog"
	"github.com/farihasabaya/storefront/internal/service"
	"github.com/farihasabaya/storefront/pkg/web"
)

type inquiryReceipt struct {
	ID                string              `json:"id"`
	Type              catalog.InquiryKind `json:"type"`
	Priority          catalog.Priority    `json:"priority"`
	EstimatedResponse string              `json:"estimatedResponse"`
}

// SubmitInquiry accepts a contact message or, with ?type=quote, a quote request.
func (h *Handler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	kind := catalog.InquiryKind(r.URL.Query().Get("type"))
	if kind == "" {
		kind = catalog.KindContact
	}

	var (
		submitted catalog.Inquiry
		err       error
	)
	switch kind {
	case catalog.KindContact:
		var dto service.ContactDto
		if !h.decodeValid(w, r, mLogger, &dto, false) {
			return
		}
		submitted, err = h.services.Inquiries.SubmitContact(r.Context(), dto)
	case catalog.KindQuote:
		var dto service.QuoteDto
		if !h.decodeValid(w, r, mLogger, &dto, false) {
			return
		}
		submitted, err = h.services.Inquiries.SubmitQuote(r.Context(), dto)
	default:
		web.RespondValidationErrors(w, mLogger, map[string]string{"type": "failed on rule: oneof"})
		return
	}
	if err != nil {
		respondServiceError(w, r, mLogger, err, "submit inquiry")
		return
	}
	mLogger.InfoContext(r.Context(), "Inquiry submitted", "ID", submitted.ID, "type", submitted.Kind, "priority", submitted.Priority)

	message := "Thank you for contacting us! We will get back to you soon."
	if kind == catalog.KindQuote {
		message = "Thank you for your quote request! Our team will prepare a proposal for you."
	}
	web.RespondMessage(w, mLogger, http.StatusCreated, message, inquiryReceipt{
		ID:                submitted.ID,
		Type:              submitted.Kind,
		Priority:          submitted.Priority,
		EstimatedResponse: submitted.EstimatedResponse,
	})
}
