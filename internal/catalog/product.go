package catalog

import (
	"math"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Product is a catalog item. Price is the list price; DiscountPrice, when set, is what the item sells for.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discountPrice,omitempty"`
	Colors        []string  `json:"colors"`
	Sizes         []string  `json:"sizes"`
	Image         string    `json:"image"`
	Images        []string  `json:"images"`
	Features      []string  `json:"features"`
	InStock       bool      `json:"inStock"`
	IsNew         bool      `json:"isNew"`
	IsFeatured    bool      `json:"isFeatured"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GetID returns the product identifier.
func (p Product) GetID() string { return p.ID }

// Clone returns a deep copy so callers can never alias the slices of a stored product.
func (p Product) Clone() Product {
	c := p
	if p.DiscountPrice != nil {
		d := *p.DiscountPrice
		c.DiscountPrice = &d
	}
	c.Colors = slices.Clone(p.Colors)
	c.Sizes = slices.Clone(p.Sizes)
	c.Images = slices.Clone(p.Images)
	c.Features = slices.Clone(p.Features)
	return c
}

// EffectivePrice is the discount price if present, otherwise the list price.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// ProductQuery holds the typed, validated parameters of a product listing.
type ProductQuery struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Colors   []string
	Sizes    []string
	InStock  *bool
	Sort     SortKey
	Page     PageRequest
}

// PriceRange spans the effective prices of a product set.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProductFacets lists every selectable filter value of the unfiltered catalog.
type ProductFacets struct {
	Categories []string   `json:"availableCategories"`
	Colors     []string   `json:"availableColors"`
	Sizes      []string   `json:"availableSizes"`
	PriceRange PriceRange `json:"priceRange"`
}

// QueryProducts filters, sorts, summarizes and paginates products.
func QueryProducts(products []Product, q ProductQuery) (Result[Product, ProductFacets], error) {
	if err := q.Page.validate(MaxPageSize); err != nil {
		return Result[Product, ProductFacets]{}, err
	}
	compare, err := productComparator(q.Sort)
	if err != nil {
		return Result[Product, ProductFacets]{}, err
	}

	p := plan[Product]{
		compare: compare,
		rating:  func(p Product) float64 { return p.Rating },
	}
	if m := newMatcher(q.Search); m != nil {
		p.filters = append(p.filters, func(p Product) bool {
			return m.any(p.Name, p.Description) || m.any(p.Features...)
		})
	}
	if q.Category != "" && q.Category != AllCategories {
		p.filters = append(p.filters, func(p Product) bool { return p.Category == q.Category })
	}
	if q.MinPrice != nil {
		lo := *q.MinPrice
		p.filters = append(p.filters, func(p Product) bool { return p.EffectivePrice() >= lo })
	}
	if q.MaxPrice != nil {
		hi := *q.MaxPrice
		p.filters = append(p.filters, func(p Product) bool { return p.EffectivePrice() <= hi })
	}
	if len(q.Colors) > 0 {
		p.filters = append(p.filters, func(p Product) bool { return intersects(p.Colors, q.Colors) })
	}
	if len(q.Sizes) > 0 {
		p.filters = append(p.filters, func(p Product) bool { return intersects(p.Sizes, q.Sizes) })
	}
	if q.InStock != nil {
		want := *q.InStock
		p.filters = append(p.filters, func(p Product) bool { return p.InStock == want })
	}

	items, pagination, stats := execute(products, p, q.Page)
	return Result[Product, ProductFacets]{
		Items:      items,
		Pagination: pagination,
		Statistics: stats,
		Facets:     ProductFacetsOf(products),
	}, nil
}

// ProductFacetsOf computes facets over the full product set.
func ProductFacetsOf(products []Product) ProductFacets {
	f := ProductFacets{
		Categories: distinct(products, func(p Product) []string { return []string{p.Category} }),
		Colors:     distinct(products, func(p Product) []string { return p.Colors }),
		Sizes:      distinct(products, func(p Product) []string { return p.Sizes }),
	}
	if len(products) == 0 {
		return f
	}
	f.PriceRange = PriceRange{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, p := range products {
		price := p.EffectivePrice()
		f.PriceRange.Min = math.Min(f.PriceRange.Min, price)
		f.PriceRange.Max = math.Max(f.PriceRange.Max, price)
	}
	return f
}

func productComparator(key SortKey) (func(a, b Product) int, error) {
	switch key {
	case SortDefault:
		return func(a, b Product) int {
			if c := cmpBoolFirst(a.IsFeatured, b.IsFeatured); c != 0 {
				return c
			}
			return b.CreatedAt.Compare(a.CreatedAt)
		}, nil
	case SortPriceLow:
		return func(a, b Product) int { return cmpAsc(a.EffectivePrice(), b.EffectivePrice()) }, nil
	case SortPriceHigh:
		return func(a, b Product) int { return cmpDesc(a.EffectivePrice(), b.EffectivePrice()) }, nil
	case SortNewest:
		return func(a, b Product) int { return b.CreatedAt.Compare(a.CreatedAt) }, nil
	case SortOldest:
		return func(a, b Product) int { return a.CreatedAt.Compare(b.CreatedAt) }, nil
	case SortPopular:
		return func(a, b Product) int { return cmpDesc(a.ReviewCount, b.ReviewCount) }, nil
	case SortRating:
		return func(a, b Product) int { return cmpDesc(a.Rating, b.Rating) }, nil
	case SortName:
		col := collate.New(language.English, collate.IgnoreCase)
		return func(a, b Product) int { return col.CompareString(a.Name, b.Name) }, nil
	default:
		return nil, unknownSort(key)
	}
}
