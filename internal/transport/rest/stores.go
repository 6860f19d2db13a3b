package rest

import (
	"net/http"

	"github.com/farihasabaya/storefront/internal/catalog"
	"github.com/farihasabaya/storefront/pkg/web"
)

const defaultStorePageSize = 10

type storeListParams struct {
	Search   string   `json:"search"   validate:"max=100"`
	City     string   `json:"city"     validate:"max=100"`
	Country  string   `json:"country"  validate:"max=100"`
	Lat      *float64 `json:"lat"      validate:"required_with=Lng,omitempty,latitude"`
	Lng      *float64 `json:"lng"      validate:"required_with=Lat,omitempty,longitude"`
	Radius   *float64 `json:"radius"   validate:"omitempty,gt=0,max=20000"`
	Features []string `json:"feature"  validate:"max=20,dive,max=50"`
	OnlyOpen *bool    `json:"onlyOpen"`
	SortBy   string   `json:"sortBy"   validate:"omitempty,oneof=rating name distance"`
	Page     int      `json:"page"     validate:"min=1"`
	Limit    int      `json:"limit"    validate:"min=1,max=50"`
}

type storeListResponse struct {
	Stores     []catalog.StoreView `json:"stores"`
	Pagination map[string]any      `json:"pagination"`
	Filters    catalog.StoreFacets `json:"filters"`
	Statistics catalog.Statistics  `json:"statistics"`
}

// ListStores runs the store locator.
func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	q := web.NewQueryReader(r)
	params := storeListParams{
		Search:   q.String("search"),
		City:     q.String("city"),
		Country:  q.String("country"),
		Lat:      q.Float("lat"),
		Lng:      q.Float("lng"),
		Radius:   q.Float("radius"),
		Features: q.CSV("feature"),
		OnlyOpen: q.Bool("onlyOpen"),
		SortBy:   q.String("sortBy"),
		Page:     q.Int("page", catalog.DefaultPage),
		Limit:    q.Int("limit", defaultStorePageSize),
	}
	if !queryValid(w, r, mLogger, q) || !h.valid(w, r, mLogger, params) {
		return
	}

	query := catalog.StoreQuery{
		Search:   params.Search,
		City:     params.City,
		Country:  params.Country,
		Features: params.Features,
		OnlyOpen: params.OnlyOpen != nil && *params.OnlyOpen,
		Sort:     catalog.SortKey(params.SortBy),
		Page:     catalog.PageRequest{Page: params.Page, PageSize: params.Limit},
	}
	if params.Lat != nil && params.Lng != nil {
		query.Near = &catalog.GeoPoint{Lat: *params.Lat, Lng: *params.Lng}
	}
	if params.Radius != nil {
		query.RadiusKm = *params.Radius
	}

	mLogger.DebugContext(r.Context(), "Received request to list stores", "query", query)
	result, err := h.services.Catalog.ListStores(r.Context(), query)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "fetch stores")
		return
	}
	web.RespondData(w, mLogger, http.StatusOK, storeListResponse{
		Stores:     result.Items,
		Pagination: pagination(result.Pagination, "totalStores"),
		Filters:    result.Facets,
		Statistics: result.Statistics,
	})
}

// FindStore retrieves an active store by its ID.
func (h *Handler) FindStore(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.PathID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find store by ID", "ID", id)
	found, err := h.services.Catalog.FindStore(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "retrieve store")
		return
	}
	web.RespondData(w, mLogger, http.StatusOK, found)
}
