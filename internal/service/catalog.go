// Package service provides the storefront business logic on top of the catalog query engine
// and the record repositories.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/farihasabaya/storefront/internal/catalog"
	apperrors "github.com/farihasabaya/storefront/internal/errors"
	"github.com/farihasabaya/storefront/internal/store"
	"github.com/farihasabaya/storefront/pkg/metrics"
	"github.com/google/uuid"
)

// CatalogService answers the public storefront reads and the review submissions.
type CatalogService interface {
	// ListProducts runs a product query over the current catalog snapshot.
	// Returns an error wrapping catalog.ErrInvalidQuery when the query breaks its contract.
	ListProducts(ctx context.Context, q catalog.ProductQuery) (catalog.Result[catalog.Product, catalog.ProductFacets], error)

	// FindProduct returns a single product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindProduct(ctx context.Context, id string) (catalog.Product, error)

	// ListStores searches the active stores. A zero q.Now is replaced with the current time.
	ListStores(ctx context.Context, q catalog.StoreQuery) (catalog.Result[catalog.StoreView, catalog.StoreFacets], error)

	// FindStore returns an active store with its open status.
	// Returns ErrStoreNotFound for unknown and inactive stores.
	FindStore(ctx context.Context, id string) (catalog.StoreView, error)

	// ListTestimonials lists reviews. Reviewer emails are never part of the result.
	ListTestimonials(ctx context.Context, q catalog.TestimonialQuery) (catalog.Result[catalog.Testimonial, catalog.TestimonialFacets], error)

	// SubmitTestimonial stores a new, unverified review.
	SubmitTestimonial(ctx context.Context, dto TestimonialCreateDto) (catalog.Testimonial, error)

	// MarkHelpful increments the helpful counter of a review.
	// Returns ErrTestimonialNotFound if no review exists with the given ID.
	MarkHelpful(ctx context.Context, id string) (catalog.Testimonial, error)
}

// TestimonialCreateDto represents the data transfer object for a review submission.
type TestimonialCreateDto struct {
	Name      string `json:"name"      validate:"required,min=2,max=100"`
	Email     string `json:"email"     validate:"required,email"`
	Rating    int    `json:"rating"    validate:"required,min=1,max=5"`
	Comment   string `json:"comment"   validate:"required,min=10,max=2000"`
	ProductID string `json:"productId" validate:"omitempty,max=64"`
	Location  string `json:"location"  validate:"omitempty,max=100"`
}

// Catalog implements CatalogService.
type Catalog struct {
	products     store.Repository[catalog.Product]
	stores       store.Repository[catalog.Store]
	testimonials store.Repository[catalog.Testimonial]
	location     *time.Location
	now          func() time.Time
	newID        func() string
}

// NewCatalog creates a CatalogService. Stores without a time zone are evaluated in location.
func NewCatalog(
	products store.Repository[catalog.Product],
	stores store.Repository[catalog.Store],
	testimonials store.Repository[catalog.Testimonial],
	location *time.Location,
) *Catalog {
	if location == nil {
		location = time.UTC
	}
	return &Catalog{
		products:     products,
		stores:       stores,
		testimonials: testimonials,
		location:     location,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

func (c *Catalog) ListProducts(ctx context.Context, q catalog.ProductQuery) (catalog.Result[catalog.Product, catalog.ProductFacets], error) {
	products, err := c.products.List(ctx)
	if err != nil {
		return catalog.Result[catalog.Product, catalog.ProductFacets]{}, fmt.Errorf("failed to fetch products: %w", err)
	}
	return catalog.QueryProducts(products, q)
}

func (c *Catalog) FindProduct(ctx context.Context, id string) (catalog.Product, error) {
	product, err := c.products.FindByID(ctx, id)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return product, nil
}

func (c *Catalog) ListStores(ctx context.Context, q catalog.StoreQuery) (catalog.Result[catalog.StoreView, catalog.StoreFacets], error) {
	stores, err := c.stores.List(ctx)
	if err != nil {
		return catalog.Result[catalog.StoreView, catalog.StoreFacets]{}, fmt.Errorf("failed to fetch stores: %w", err)
	}
	if q.Now.IsZero() {
		q.Now = c.now()
	}
	if q.Location == nil {
		q.Location = c.location
	}
	return catalog.QueryStores(stores, q)
}

func (c *Catalog) FindStore(ctx context.Context, id string) (catalog.StoreView, error) {
	s, err := c.stores.FindByID(ctx, id)
	if err != nil {
		return catalog.StoreView{}, fmt.Errorf("failed to fetch store by ID %s: %w", id, err)
	}
	if !s.IsActive {
		return catalog.StoreView{}, fmt.Errorf("store %s is inactive: %w", id, apperrors.ErrStoreNotFound)
	}
	return catalog.ViewOf(s, c.now(), c.location), nil
}

func (c *Catalog) ListTestimonials(ctx context.Context, q catalog.TestimonialQuery) (catalog.Result[catalog.Testimonial, catalog.TestimonialFacets], error) {
	testimonials, err := c.testimonials.List(ctx)
	if err != nil {
		return catalog.Result[catalog.Testimonial, catalog.TestimonialFacets]{}, fmt.Errorf("failed to fetch testimonials: %w", err)
	}
	result, err := catalog.QueryTestimonials(testimonials, q)
	if err != nil {
		return result, err
	}
	for i := range result.Items {
		result.Items[i].Email = ""
	}
	return result, nil
}

func (c *Catalog) SubmitTestimonial(ctx context.Context, dto TestimonialCreateDto) (catalog.Testimonial, error) {
	t := catalog.Testimonial{
		ID:        c.newID(),
		Name:      strings.TrimSpace(dto.Name),
		Email:     strings.ToLower(strings.TrimSpace(dto.Email)),
		Location:  strings.TrimSpace(dto.Location),
		Rating:    dto.Rating,
		Comment:   strings.TrimSpace(dto.Comment),
		ProductID: dto.ProductID,
		Date:      c.now().UTC(),
	}
	created, err := c.testimonials.Create(ctx, t)
	if err != nil {
		return catalog.Testimonial{}, fmt.Errorf("failed to create testimonial: %w", err)
	}
	metrics.SubmissionsTotal.WithLabelValues("review").Inc()
	return created, nil
}

func (c *Catalog) MarkHelpful(ctx context.Context, id string) (catalog.Testimonial, error) {
	updated, err := c.testimonials.Mutate(ctx, id, func(t *catalog.Testimonial) error {
		t.Helpful++
		return nil
	})
	if err != nil {
		return catalog.Testimonial{}, fmt.Errorf("failed to mark testimonial %s helpful: %w", id, err)
	}
	updated.Email = ""
	return updated, nil
}
