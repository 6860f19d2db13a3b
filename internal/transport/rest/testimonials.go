package rest

import (
	"net/http"

	"github.com/farihasabaya/storefront/internal/catalog"
	"github.com/farihasabaya/storefront/internal/service"
	"github.com/farihasabaya/storefront/pkg/web"
)

const defaultTestimonialPageSize = 6

type testimonialListParams struct {
	ProductID string `json:"productId" validate:"max=64"`
	Verified  *bool  `json:"verified"`
	MinRating int    `json:"minRating" validate:"min=0,max=5"`
	SortBy    string `json:"sortBy"    validate:"omitempty,oneof=newest oldest rating helpful"`
	Page      int    `json:"page"      validate:"min=1"`
	Limit     int    `json:"limit"     validate:"min=1,max=20"`
}

type testimonialStatistics struct {
	AverageRating      float64                    `json:"averageRating"`
	TotalReviews       int                        `json:"totalReviews"`
	RatingDistribution catalog.RatingDistribution `json:"ratingDistribution"`
}

type testimonialListResponse struct {
	Testimonials []catalog.Testimonial     `json:"testimonials"`
	Pagination   map[string]any            `json:"pagination"`
	Filters      catalog.TestimonialFacets `json:"filters"`
	Statistics   testimonialStatistics     `json:"statistics"`
}

// ListTestimonials lists customer reviews.
func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	q := web.NewQueryReader(r)
	params := testimonialListParams{
		ProductID: q.String("productId"),
		Verified:  q.Bool("verified"),
		MinRating: q.Int("minRating", 0),
		SortBy:    q.String("sortBy"),
		Page:      q.Int("page", catalog.DefaultPage),
		Limit:     q.Int("limit", defaultTestimonialPageSize),
	}
	if !queryValid(w, r, mLogger, q) || !h.valid(w, r, mLogger, params) {
		return
	}

	result, err := h.services.Catalog.ListTestimonials(r.Context(), catalog.TestimonialQuery{
		ProductID: params.ProductID,
		Verified:  params.Verified,
		MinRating: params.MinRating,
		Sort:      catalog.SortKey(params.SortBy),
		Page:      catalog.PageRequest{Page: params.Page, PageSize: params.Limit},
	})
	if err != nil {
		respondServiceError(w, r, mLogger, err, "fetch testimonials")
		return
	}
	web.RespondData(w, mLogger, http.StatusOK, testimonialListResponse{
		Testimonials: result.Items,
		Pagination:   pagination(result.Pagination, "totalTestimonials"),
		Filters:      result.Facets,
		Statistics: testimonialStatistics{
			AverageRating:      result.Statistics.AverageRating,
			TotalReviews:       result.Statistics.TotalMatches,
			RatingDistribution: result.Statistics.RatingDistribution,
		},
	})
}

// SubmitTestimonial stores a review for moderation.
func (h *Handler) SubmitTestimonial(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var dto service.TestimonialCreateDto
	if !h.decodeValid(w, r, mLogger, &dto, false) {
		return
	}

	created, err := h.services.Catalog.SubmitTestimonial(r.Context(), dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "submit testimonial")
		return
	}
	mLogger.InfoContext(r.Context(), "Testimonial submitted", "ID", created.ID, "rating", created.Rating)

	created.Email = ""
	web.RespondMessage(w, mLogger, http.StatusCreated,
		"Thank you for your review! It will be published after verification.", created)
}

// MarkHelpful records a helpful vote on a review.
func (h *Handler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.PathID(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.services.Catalog.MarkHelpful(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "mark testimonial helpful")
		return
	}
	mLogger.DebugContext(r.Context(), "Testimonial marked helpful", "ID", id, "helpful", updated.Helpful)
	web.RespondData(w, mLogger, http.StatusOK, map[string]any{"id": updated.ID, "helpful": updated.Helpful})
}
