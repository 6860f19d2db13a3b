package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/farihasabaya/storefront/internal/catalog"
	"github.com/farihasabaya/storefront/pkg/web"
)

const defaultProductPageSize = 12

// productListParams are the validated query parameters of a product listing.
type productListParams struct {
	Search   string   `json:"search"   validate:"max=100"`
	Category string   `json:"category" validate:"max=50"`
	MinPrice *float64 `json:"minPrice" validate:"omitempty,min=0"`
	MaxPrice *float64 `json:"maxPrice" validate:"omitempty,min=0"`
	Colors   []string `json:"colors"   validate:"max=20,dive,max=30"`
	Sizes    []string `json:"sizes"    validate:"max=20,dive,max=10"`
	InStock  *bool    `json:"inStock"`
	SortBy   string   `json:"sortBy"   validate:"omitempty,oneof=newest price-low price-high popular rating name"`
	Page     int      `json:"page"     validate:"min=1"`
	Limit    int      `json:"limit"    validate:"min=1,max=50"`
}

type productListResponse struct {
	Products   []catalog.Product     `json:"products"`
	Pagination map[string]any        `json:"pagination"`
	Filters    catalog.ProductFacets `json:"filters"`
	Statistics catalog.Statistics    `json:"statistics"`
}

// parseProductQuery reads and validates the listing parameters. On failure the response is written.
func (h *Handler) parseProductQuery(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (catalog.ProductQuery, bool) {
	q := web.NewQueryReader(r)
	params := productListParams{
		Search:   q.String("search"),
		Category: q.String("category"),
		MinPrice: q.Float("minPrice"),
		MaxPrice: q.Float("maxPrice"),
		Colors:   q.CSV("colors"),
		Sizes:    q.CSV("sizes"),
		InStock:  q.Bool("inStock"),
		SortBy:   q.String("sortBy"),
		Page:     q.Int("page", catalog.DefaultPage),
		Limit:    q.Int("limit", defaultProductPageSize),
	}
	if !queryValid(w, r, mLogger, q) || !h.valid(w, r, mLogger, params) {
		return catalog.ProductQuery{}, false
	}
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		web.RespondValidationErrors(w, mLogger, map[string]string{"maxPrice": "failed on rule: gtefield"})
		return catalog.ProductQuery{}, false
	}
	return catalog.ProductQuery{
		Search:   params.Search,
		Category: params.Category,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
		Colors:   params.Colors,
		Sizes:    params.Sizes,
		InStock:  params.InStock,
		Sort:     catalog.SortKey(params.SortBy),
		Page:     catalog.PageRequest{Page: params.Page, PageSize: params.Limit},
	}, true
}

// ListProducts searches the catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, h.services.Catalog.ListProducts)
}

// AdminListProducts is ListProducts for the back-office.
func (h *Handler) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, h.services.Admin.ListProducts)
}

type productLister func(ctx context.Context, q catalog.ProductQuery) (catalog.Result[catalog.Product, catalog.ProductFacets], error)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request, list productLister) {
	mLogger := h.loggerWithReqID(r)
	query, ok := h.parseProductQuery(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to list products", "query", query)
	result, err := list(r.Context(), query)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully listed products", "count", len(result.Items), "total", result.Pagination.TotalMatches)
	web.RespondData(w, mLogger, http.StatusOK, productListResponse{
		Products:   result.Items,
		Pagination: pagination(result.Pagination, "totalProducts"),
		Filters:    result.Facets,
		Statistics: result.Statistics,
	})
}

// FindProduct retrieves a product by its ID.
func (h *Handler) FindProduct(w http.ResponseWriter, r *http.Request) {
	h.findProduct(w, r, h.services.Catalog.FindProduct)
}

// AdminFindProduct is FindProduct for the back-office.
func (h *Handler) AdminFindProduct(w http.ResponseWriter, r *http.Request) {
	h.findProduct(w, r, h.services.Admin.FindProduct)
}

func (h *Handler) findProduct(w http.ResponseWriter, r *http.Request, find func(ctx context.Context, id string) (catalog.Product, error)) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.PathID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := find(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "retrieve product")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondData(w, mLogger, http.StatusOK, found)
}
