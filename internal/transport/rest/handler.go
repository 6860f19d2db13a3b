// Package rest provides the HTTP handlers of the storefront API.
package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/farihasabaya/storefront/internal/auth"
	"github.com/farihasabaya/storefront/internal/catalog"
	apperrors "github.com/farihasabaya/storefront/internal/errors"
	"github.com/farihasabaya/storefront/internal/service"
	"github.com/farihasabaya/storefront/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Authenticator exchanges admin credentials for a session.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*auth.Session, error)
}

// Services bundles the collaborators the handlers delegate to.
type Services struct {
	Catalog    service.CatalogService
	Admin      service.AdminService
	Inquiries  service.InquiryService
	Newsletter service.NewsletterService
	Auth       Authenticator
	Verifier   auth.Verifier
}

type Handler struct {
	services Services
	validate *validator.Validate
	limiter  func(http.Handler) http.Handler
	logger   *slog.Logger
}

// NewHandler creates the API handler. A nil limiter leaves submission endpoints unthrottled.
func NewHandler(services Services, limiter *web.RateLimiter, logger *slog.Logger) *Handler {
	h := &Handler{
		services: services,
		validate: newValidator(),
		limiter:  func(next http.Handler) http.Handler { return next },
		logger:   logger.With("component", "rest"),
	}
	if limiter != nil {
		h.limiter = limiter.Middleware(h.logger)
	}
	return h
}

// newValidator reports fields by their JSON name so errors match the request payload.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// RegisterRoutes registers the HTTP routes of the storefront API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.FindProduct)

		r.Get("/stores", h.ListStores)
		r.Get("/stores/{id}", h.FindStore)

		r.Get("/testimonials", h.ListTestimonials)
		r.With(h.limiter).Post("/testimonials", h.SubmitTestimonial)
		r.With(h.limiter).Post("/testimonials/{id}/helpful", h.MarkHelpful)

		r.With(h.limiter).Post("/contact", h.SubmitInquiry)

		r.With(h.limiter).Post("/newsletter", h.Subscribe)
		r.With(h.limiter).Delete("/newsletter", h.Unsubscribe)

		r.Route("/admin", func(r chi.Router) {
			r.With(h.limiter).Post("/login", h.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin(h.services.Verifier, h.logger))

				r.Get("/dashboard/stats", h.DashboardStats)

				r.Get("/products", h.AdminListProducts)
				r.Post("/products", h.CreateProduct)
				r.Route("/products/{id}", func(r chi.Router) {
					r.Get("/", h.AdminFindProduct)
					r.Patch("/", h.UpdateProduct)
					r.Delete("/", h.DeleteProduct)
					r.Put("/stock", h.ToggleStock)
				})

				r.Patch("/stores/{id}", h.UpdateStore)
				r.Patch("/testimonials/{id}", h.ModerateTestimonial)

				r.Get("/inquiries", h.ListInquiries)
				r.Patch("/inquiries/{id}", h.UpdateInquiry)
			})
		})
	})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}

// decodeValid decodes the body into dst and validates it. On failure the response is written
// and false is returned.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dst any, strict bool) bool {
	decode := web.DecodeJSON
	if strict {
		decode = web.DecodeJSONStrict
	}
	if err := decode(r, dst); err != nil {
		mLogger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return h.valid(w, r, mLogger, dst)
}

// valid validates a decoded body or query DTO. On failure the response is written and false is returned.
func (h *Handler) valid(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dto any) bool {
	err := h.validate.Struct(dto)
	if err == nil {
		return true
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errorResponse := make(map[string]string)
		for _, fieldErr := range validationErrors {
			errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
		}
		mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
		web.RespondValidationErrors(w, mLogger, errorResponse)
		return false
	}
	mLogger.ErrorContext(r.Context(), "Error validating request", "error", err)
	web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request")
	return false
}

// queryValid reports query parse failures collected by q in the validation error format.
func queryValid(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, q *web.QueryReader) bool {
	if errs := q.Errors(); errs != nil {
		mLogger.WarnContext(r.Context(), "Invalid query parameters", "errors", errs)
		web.RespondValidationErrors(w, mLogger, errs)
		return false
	}
	return true
}

type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{apperrors.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{apperrors.ErrStoreNotFound, http.StatusNotFound, "Store not found"},
	{apperrors.ErrTestimonialNotFound, http.StatusNotFound, "Testimonial not found"},
	{apperrors.ErrInquiryNotFound, http.StatusNotFound, "Inquiry not found"},
	{apperrors.ErrSubscriberNotFound, http.StatusNotFound, "Subscription not found or invalid token"},
	{apperrors.ErrAlreadySubscribed, http.StatusConflict, "Email is already subscribed to our newsletter"},
	{apperrors.ErrAlreadyUnsubscribed, http.StatusConflict, "Email is already unsubscribed"},
	{apperrors.ErrDuplicateID, http.StatusConflict, "A record with this ID already exists"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{apperrors.ErrForbidden, http.StatusForbidden, "Forbidden"},
}

// respondServiceError maps a service error to its HTTP status. Unknown errors become a 500
// that names the failed action without leaking details.
func respondServiceError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, err error, action string) {
	if errors.Is(err, catalog.ErrInvalidQuery) || errors.Is(err, apperrors.ErrInvalidInput) {
		mLogger.WarnContext(r.Context(), "Rejected request", "action", action, "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, clientMessage(err))
		return
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			mLogger.WarnContext(r.Context(), m.message, "action", action, "error", err)
			web.RespondError(w, mLogger, m.status, m.message)
			return
		}
	}
	mLogger.ErrorContext(r.Context(), "Request failed", "action", action, "error", err)
	web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to "+action)
}

// clientMessage keeps the innermost detail of a rule violation, which is safe to show.
func clientMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && i+2 < len(msg) {
		msg = msg[i+2:]
	}
	if msg == "" {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// pagination renders the page metadata with a domain specific name for the total.
func pagination(p catalog.Pagination, totalKey string) map[string]any {
	return map[string]any{
		"currentPage": p.CurrentPage,
		"pageSize":    p.PageSize,
		"totalPages":  p.TotalPages,
		totalKey:      p.TotalMatches,
		"hasNextPage": p.HasNextPage,
		"hasPrevPage": p.HasPrevPage,
	}
}
