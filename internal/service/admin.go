package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/farihasabaya/storefront/internal/catalog"
	apperrors "github.com/farihasabaya/storefront/internal/errors"
	"github.com/farihasabaya/storefront/internal/store"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AdminService defines the back-office operations. Callers must have passed the admin check.
type AdminService interface {
	// DashboardStats counts catalog, review, inquiry and subscriber totals.
	DashboardStats(ctx context.Context) (*DashboardStats, error)

	// ListProducts runs a product query over the full catalog, stock status included.
	ListProducts(ctx context.Context, q catalog.ProductQuery) (catalog.Result[catalog.Product, catalog.ProductFacets], error)

	// FindProduct returns a single product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindProduct(ctx context.Context, id string) (catalog.Product, error)

	// CreateProduct adds a product. Returns ErrInvalidInput when the discount is not below the price.
	CreateProduct(ctx context.Context, dto ProductCreateDto) (catalog.Product, error)

	// UpdateProduct merges a validated patch into a product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (catalog.Product, error)

	// ToggleStock flips the in-stock flag of a product.
	ToggleStock(ctx context.Context, id string) (catalog.Product, error)

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, id string) error

	// UpdateStore merges a validated patch into a store.
	// Returns ErrStoreNotFound if no store exists with the given ID.
	UpdateStore(ctx context.Context, id string, patch StorePatch) (catalog.Store, error)

	// SetTestimonialVerified publishes or hides a review.
	SetTestimonialVerified(ctx context.Context, id string, verified bool) (catalog.Testimonial, error)
}

// DashboardStats is the overview shown on the back-office landing page.
type DashboardStats struct {
	TotalProducts      int `json:"totalProducts"`
	FeaturedProducts   int `json:"featuredProducts"`
	InStockProducts    int `json:"inStockProducts"`
	OutOfStockProducts int `json:"outOfStockProducts"`
	ActiveTestimonials int `json:"activeTestimonials"`
	TotalInquiries     int `json:"totalInquiries"`
	NewInquiries       int `json:"newInquiries"`
	TotalSubscribers   int `json:"totalSubscribers"`
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name          string   `json:"name"          validate:"required,min=2,max=120"`
	Description   string   `json:"description"   validate:"required,min=10,max=2000"`
	Category      string   `json:"category"      validate:"required,min=2,max=50"`
	Price         float64  `json:"price"         validate:"required,gt=0"`
	DiscountPrice *float64 `json:"discountPrice" validate:"omitempty,gt=0"`
	Colors        []string `json:"colors"        validate:"required,min=1,dive,required"`
	Sizes         []string `json:"sizes"         validate:"required,min=1,dive,required"`
	Image         string   `json:"image"         validate:"required"`
	Images        []string `json:"images"        validate:"omitempty,dive,required"`
	Features      []string `json:"features"      validate:"omitempty,dive,required"`
	InStock       bool     `json:"inStock"`
	IsNew         bool     `json:"isNew"`
	IsFeatured    bool     `json:"isFeatured"`
}

// ProductPatch names every product field an admin may change. Nil fields are left untouched.
type ProductPatch struct {
	Name          *string   `json:"name"          validate:"omitempty,min=2,max=120"`
	Description   *string   `json:"description"   validate:"omitempty,min=10,max=2000"`
	Category      *string   `json:"category"      validate:"omitempty,min=2,max=50"`
	Price         *float64  `json:"price"         validate:"omitempty,gt=0"`
	DiscountPrice *float64  `json:"discountPrice" validate:"omitempty,gt=0"`
	ClearDiscount bool      `json:"clearDiscount"`
	Colors        *[]string `json:"colors"        validate:"omitempty,min=1,dive,required"`
	Sizes         *[]string `json:"sizes"         validate:"omitempty,min=1,dive,required"`
	Image         *string   `json:"image"         validate:"omitempty,min=1"`
	Images        *[]string `json:"images"        validate:"omitempty,dive,required"`
	Features      *[]string `json:"features"      validate:"omitempty,dive,required"`
	InStock       *bool     `json:"inStock"`
	IsNew         *bool     `json:"isNew"`
	IsFeatured    *bool     `json:"isFeatured"`
}

// StorePatch names every store field an admin may change. Nil fields are left untouched.
type StorePatch struct {
	Name        *string              `json:"name"        validate:"omitempty,min=2,max=120"`
	Description *string              `json:"description" validate:"omitempty,max=2000"`
	Phone       *string              `json:"phone"       validate:"omitempty,min=7,max=20"`
	Email       *string              `json:"email"       validate:"omitempty,email"`
	WhatsApp    *string              `json:"whatsapp"    validate:"omitempty,max=20"`
	Hours       *catalog.WeeklyHours `json:"hours"`
	Features    *[]string            `json:"features"    validate:"omitempty,dive,required"`
	IsActive    *bool                `json:"isActive"`
	IsFlagship  *bool                `json:"isFlagship"`
}

// TestimonialPatch is the moderation change of a review.
type TestimonialPatch struct {
	Verified *bool `json:"verified" validate:"required"`
}

// Admin implements AdminService.
type Admin struct {
	products     store.Repository[catalog.Product]
	stores       store.Repository[catalog.Store]
	testimonials store.Repository[catalog.Testimonial]
	inquiries    store.Repository[catalog.Inquiry]
	subscribers  store.Repository[catalog.Subscriber]
	now          func() time.Time
	newID        func() string
}

// NewAdmin creates an AdminService over all record repositories.
func NewAdmin(
	products store.Repository[catalog.Product],
	stores store.Repository[catalog.Store],
	testimonials store.Repository[catalog.Testimonial],
	inquiries store.Repository[catalog.Inquiry],
	subscribers store.Repository[catalog.Subscriber],
) *Admin {
	return &Admin{
		products:     products,
		stores:       stores,
		testimonials: testimonials,
		inquiries:    inquiries,
		subscribers:  subscribers,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// DashboardStats loads every repository concurrently; the first failure cancels the rest.
func (a *Admin) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var (
		products     []catalog.Product
		testimonials []catalog.Testimonial
		inquiries    []catalog.Inquiry
		subscribers  []catalog.Subscriber
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { products, err = a.products.List(gCtx); return })
	g.Go(func() (err error) { testimonials, err = a.testimonials.List(gCtx); return })
	g.Go(func() (err error) { inquiries, err = a.inquiries.List(gCtx); return })
	g.Go(func() (err error) { subscribers, err = a.subscribers.List(gCtx); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	stats := &DashboardStats{
		TotalProducts:  len(products),
		TotalInquiries: len(inquiries),
	}
	for _, p := range products {
		if p.IsFeatured {
			stats.FeaturedProducts++
		}
		if p.InStock {
			stats.InStockProducts++
		} else {
			stats.OutOfStockProducts++
		}
	}
	for _, t := range testimonials {
		if t.Verified {
			stats.ActiveTestimonials++
		}
	}
	stats.NewInquiries = catalog.InquiryStatsOf(inquiries).New
	for _, s := range subscribers {
		if s.IsActive {
			stats.TotalSubscribers++
		}
	}
	return stats, nil
}

func (a *Admin) ListProducts(ctx context.Context, q catalog.ProductQuery) (catalog.Result[catalog.Product, catalog.ProductFacets], error) {
	products, err := a.products.List(ctx)
	if err != nil {
		return catalog.Result[catalog.Product, catalog.ProductFacets]{}, fmt.Errorf("failed to fetch products: %w", err)
	}
	return catalog.QueryProducts(products, q)
}

func (a *Admin) FindProduct(ctx context.Context, id string) (catalog.Product, error) {
	product, err := a.products.FindByID(ctx, id)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return product, nil
}

func (a *Admin) CreateProduct(ctx context.Context, dto ProductCreateDto) (catalog.Product, error) {
	now := a.now().UTC()
	p := catalog.Product{
		ID:            a.newID(),
		Name:          strings.TrimSpace(dto.Name),
		Description:   strings.TrimSpace(dto.Description),
		Category:      strings.TrimSpace(dto.Category),
		Price:         dto.Price,
		DiscountPrice: dto.DiscountPrice,
		Colors:        slices.Clone(dto.Colors),
		Sizes:         slices.Clone(dto.Sizes),
		Image:         dto.Image,
		Images:        slices.Clone(dto.Images),
		Features:      slices.Clone(dto.Features),
		InStock:       dto.InStock,
		IsNew:         dto.IsNew,
		IsFeatured:    dto.IsFeatured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if len(p.Images) == 0 {
		p.Images = []string{p.Image}
	}
	if err := checkDiscount(p); err != nil {
		return catalog.Product{}, err
	}
	created, err := a.products.Create(ctx, p)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

func (a *Admin) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (catalog.Product, error) {
	updated, err := a.products.Mutate(ctx, id, func(p *catalog.Product) error {
		patch.apply(p)
		p.UpdatedAt = a.now().UTC()
		return checkDiscount(*p)
	})
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	return updated, nil
}

func (a *Admin) ToggleStock(ctx context.Context, id string) (catalog.Product, error) {
	updated, err := a.products.Mutate(ctx, id, func(p *catalog.Product) error {
		p.InStock = !p.InStock
		p.UpdatedAt = a.now().UTC()
		return nil
	})
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to toggle stock for product with ID %s: %w", id, err)
	}
	return updated, nil
}

func (a *Admin) DeleteProduct(ctx context.Context, id string) error {
	if err := a.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	return nil
}

func (a *Admin) UpdateStore(ctx context.Context, id string, patch StorePatch) (catalog.Store, error) {
	if patch.Hours != nil {
		if err := patch.Hours.Validate(); err != nil {
			return catalog.Store{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
		}
	}
	updated, err := a.stores.Mutate(ctx, id, func(s *catalog.Store) error {
		patch.apply(s)
		return nil
	})
	if err != nil {
		return catalog.Store{}, fmt.Errorf("failed to update store with ID %s: %w", id, err)
	}
	return updated, nil
}

func (a *Admin) SetTestimonialVerified(ctx context.Context, id string, verified bool) (catalog.Testimonial, error) {
	updated, err := a.testimonials.Mutate(ctx, id, func(t *catalog.Testimonial) error {
		t.Verified = verified
		return nil
	})
	if err != nil {
		return catalog.Testimonial{}, fmt.Errorf("failed to moderate testimonial with ID %s: %w", id, err)
	}
	return updated, nil
}

func checkDiscount(p catalog.Product) error {
	if p.DiscountPrice != nil && *p.DiscountPrice >= p.Price {
		return fmt.Errorf("%w: discount price %.2f must be below price %.2f", apperrors.ErrInvalidInput, *p.DiscountPrice, p.Price)
	}
	return nil
}

func (patch ProductPatch) apply(p *catalog.Product) {
	setIf(&p.Name, patch.Name)
	setIf(&p.Description, patch.Description)
	setIf(&p.Category, patch.Category)
	setIf(&p.Price, patch.Price)
	setIf(&p.Image, patch.Image)
	setIf(&p.InStock, patch.InStock)
	setIf(&p.IsNew, patch.IsNew)
	setIf(&p.IsFeatured, patch.IsFeatured)
	setSliceIf(&p.Colors, patch.Colors)
	setSliceIf(&p.Sizes, patch.Sizes)
	setSliceIf(&p.Images, patch.Images)
	setSliceIf(&p.Features, patch.Features)
	switch {
	case patch.ClearDiscount:
		p.DiscountPrice = nil
	case patch.DiscountPrice != nil:
		d := *patch.DiscountPrice
		p.DiscountPrice = &d
	}
}

func (patch StorePatch) apply(s *catalog.Store) {
	setIf(&s.Name, patch.Name)
	setIf(&s.Description, patch.Description)
	setIf(&s.Contact.Phone, patch.Phone)
	setIf(&s.Contact.Email, patch.Email)
	setIf(&s.Contact.WhatsApp, patch.WhatsApp)
	setIf(&s.Hours, patch.Hours)
	setIf(&s.IsActive, patch.IsActive)
	setIf(&s.IsFlagship, patch.IsFlagship)
	setSliceIf(&s.Features, patch.Features)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setSliceIf[T any](dst *[]T, v *[]T) {
	if v != nil {
		*dst = slices.Clone(*v)
	}
}
