package rest

import (
	"net/http"

	"github.com/farihasabaya/storefront/internal/auth"
	"github.com/farihasabaya/storefront/internal/catalog"
	"github.com/farihasabaya/storefront/internal/service"
	"github.com/farihasabaya/storefront/pkg/web"
)

const defaultInquiryPageSize = 10

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges admin credentials for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var req loginRequest
	if !h.decodeValid(w, r, mLogger, &req, false) {
		return
	}

	session, err := h.services.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "log in")
		return
	}
	mLogger.InfoContext(r.Context(), "Admin logged in", "expires_at", session.ExpiresAt)
	web.RespondMessage(w, mLogger, http.StatusOK, "Login successful", session)
}

// DashboardStats returns the back-office overview counters.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	stats, err := h.services.Admin.DashboardStats(r.Context())
	if err != nil {
		respondServiceError(w, r, mLogger, err, "fetch dashboard statistics")
		return
	}
	web.RespondData(w, mLogger, http.StatusOK, stats)
}

// CreateProduct adds a product to the catalog.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var dto service.ProductCreateDto
	if !h.decodeValid(w, r, mLogger, &dto, true) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "name", dto.Name)

	created, err := h.services.Admin.CreateProduct(r.Context(), dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created", "ID", created.ID, "admin", auth.SubjectFromContext(r.Context()))
	web.RespondMessage(w, mLogger, http.StatusCreated, "Product created successfully", created)
}

// UpdateProduct applies a partial update to a product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.PathID(w, r, mLogger)
	if !ok {
		return
	}

	var patch service.ProductPatch
	if !h.decodeValid(w, r, mLogger, &patch, true) {
		return
	}

	updated, err := h.services.Admin.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "update product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated", "ID", updated.ID)
	web.RespondMessage(w, mLogger, http.StatusOK, "Product updated successfully", updated)
}

// ToggleStock flips the in-stock flag of a product.
func (h *Handler) ToggleStock(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.PathID(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.services.Admin.ToggleStock(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "update stock status")
		return
	}
	mLogger.InfoContext(r.Context(), "Product stock toggled", "ID", updated.ID, "in_stock", updated.InStock)
	message := "Product marked as out of stock"
	if updated.InStock {
		message = "Product marked as in stock"
	}
	web.RespondMessage(w, mLogger, http.StatusOK, message, updated)
}

// DeleteProduct removes a product from the catalog.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.PathID(w, r, mLogger)
	if !ok {
		return
	}

	if err := h.services.Admin.DeleteProduct(r.Context(), id); err != nil {
		respondServiceError(w, r, mLogger, err, "delete product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStore applies a partial update to a store.
func (h *Handler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.PathID(w, r, mLogger)
	if !ok {
		return
	}

	var patch service.StorePatch
	if !h.decodeValid(w, r, mLogger, &patch, true) {
		return
	}

	updated, err := h.services.Admin.UpdateStore(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "update store")
		return
	}
	mLogger.InfoContext(r.Context(), "Store updated", "ID", updated.ID)
	web.RespondMessage(w, mLogger, http.StatusOK, "Store updated successfully", updated)
}

// ModerateTestimonial publishes or hides a review.
func (h *Handler) ModerateTestimonial(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.PathID(w, r, mLogger)
	if !ok {
		return
	}

	var patch service.TestimonialPatch
	if !h.decodeValid(w, r, mLogger, &patch, true) {
		return
	}

	updated, err := h.services.Admin.SetTestimonialVerified(r.Context(), id, *patch.Verified)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "moderate testimonial")
		return
	}
	mLogger.InfoContext(r.Context(), "Testimonial moderated", "ID", updated.ID, "verified", updated.Verified)
	web.RespondData(w, mLogger, http.StatusOK, updated)
}

type inquiryListParams struct {
	Status string `json:"status" validate:"omitempty,oneof=all new in-progress resolved"`
	Type   string `json:"type"   validate:"omitempty,oneof=contact quote"`
	Page   int    `json:"page"   validate:"min=1"`
	Limit  int    `json:"limit"  validate:"min=1,max=50"`
}

type inquiryListResponse struct {
	Submissions []catalog.Inquiry    `json:"submissions"`
	Pagination  map[string]any       `json:"pagination"`
	Statistics  catalog.InquiryStats `json:"statistics"`
}

// ListInquiries lists the inquiry inbox newest first.
func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	q := web.NewQueryReader(r)
	params := inquiryListParams{
		Status: q.String("status"),
		Type:   q.String("type"),
		Page:   q.Int("page", catalog.DefaultPage),
		Limit:  q.Int("limit", defaultInquiryPageSize),
	}
	if !queryValid(w, r, mLogger, q) || !h.valid(w, r, mLogger, params) {
		return
	}

	result, err := h.services.Inquiries.List(r.Context(), catalog.InquiryQuery{
		Status: params.Status,
		Kind:   catalog.InquiryKind(params.Type),
		Page:   catalog.PageRequest{Page: params.Page, PageSize: params.Limit},
	})
	if err != nil {
		respondServiceError(w, r, mLogger, err, "fetch inquiries")
		return
	}
	web.RespondData(w, mLogger, http.StatusOK, inquiryListResponse{
		Submissions: result.Items,
		Pagination:  pagination(result.Pagination, "totalSubmissions"),
		Statistics:  result.Facets,
	})
}

// UpdateInquiry moves an inquiry through the back-office workflow.
func (h *Handler) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.PathID(w, r, mLogger)
	if !ok {
		return
	}

	var dto service.InquiryStatusDto
	if !h.decodeValid(w, r, mLogger, &dto, true) {
		return
	}

	updated, err := h.services.Inquiries.UpdateStatus(r.Context(), id, dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "update inquiry")
		return
	}
	mLogger.InfoContext(r.Context(), "Inquiry updated", "ID", updated.ID, "status", updated.Status)
	web.RespondMessage(w, mLogger, http.StatusOK, "Inquiry updated successfully", updated)
}
