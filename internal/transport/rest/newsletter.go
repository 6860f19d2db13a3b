package rest

import (
	"net/http"
	"time"

	"github.com/farihasabaya/storefront/internal/catalog"
	"github.com/farihasabaya/storefront/internal/service"
	"github.com/farihasabaya/storefront/pkg/web"
)

type subscriptionView struct {
	ID               string              `json:"id"`
	Email            string              `json:"email"`
	FirstName        string              `json:"firstName"`
	Preferences      catalog.Preferences `json:"preferences"`
	SubscribedAt     time.Time           `json:"subscribedAt"`
	UnsubscribeToken string              `json:"unsubscribeToken,omitempty"`
}

// Subscribe signs an email up for the newsletter or reactivates a lapsed subscription.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var dto service.SubscribeDto
	if !h.decodeValid(w, r, mLogger, &dto, false) {
		return
	}

	sub, created, err := h.services.Newsletter.Subscribe(r.Context(), dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "subscribe to newsletter")
		return
	}

	view := subscriptionView{
		ID:           sub.ID,
		Email:        sub.Email,
		FirstName:    sub.FirstName,
		Preferences:  sub.Preferences,
		SubscribedAt: sub.SubscribedAt,
	}
	// the token only goes back to the caller that created the subscription; knowing an
	// email is not enough to obtain it
	if !created {
		mLogger.InfoContext(r.Context(), "Newsletter subscription reactivated", "ID", sub.ID)
		web.RespondMessage(w, mLogger, http.StatusOK, "Welcome back! Your subscription has been reactivated.", view)
		return
	}
	view.UnsubscribeToken = sub.UnsubscribeToken
	mLogger.InfoContext(r.Context(), "Newsletter subscription created", "ID", sub.ID, "source", sub.Source)
	web.RespondMessage(w, mLogger, http.StatusCreated, "Successfully subscribed to our newsletter!", view)
}

// Unsubscribe ends a subscription identified by email and unsubscribe token.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var dto service.UnsubscribeDto
	if !h.decodeValid(w, r, mLogger, &dto, false) {
		return
	}

	sub, err := h.services.Newsletter.Unsubscribe(r.Context(), dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "unsubscribe from newsletter")
		return
	}
	mLogger.InfoContext(r.Context(), "Newsletter subscription ended", "ID", sub.ID)
	web.RespondMessage(w, mLogger, http.StatusOK, "Successfully unsubscribed from our newsletter", nil)
}
