package catalog

import "time"

// MaxTestimonialPageSize caps testimonial pages.
const MaxTestimonialPageSize = 20

// Testimonial is a customer review.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Location  string    `json:"location,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	ProductID string    `json:"productId,omitempty"`
	Verified  bool      `json:"verified"`
	Date      time.Time `json:"date"`
	Helpful   int       `json:"helpful"`
	Avatar    string    `json:"avatar,omitempty"`
}

// GetID returns the testimonial identifier.
func (t Testimonial) GetID() string { return t.ID }

// Clone returns a copy; testimonials hold no reference fields.
func (t Testimonial) Clone() Testimonial { return t }

// TestimonialQuery holds the typed, validated parameters of a review listing.
type TestimonialQuery struct {
	ProductID string
	Verified  *bool
	MinRating int
	Sort      SortKey
	Page      PageRequest
}

// TestimonialFacets lists the products that carry at least one review.
type TestimonialFacets struct {
	ProductIDs []string `json:"productIds"`
}

// QueryTestimonials filters, sorts, summarizes and paginates reviews. The default order is newest first.
func QueryTestimonials(testimonials []Testimonial, q TestimonialQuery) (Result[Testimonial, TestimonialFacets], error) {
	if err := q.Page.validate(MaxTestimonialPageSize); err != nil {
		return Result[Testimonial, TestimonialFacets]{}, err
	}
	compare, err := testimonialComparator(q.Sort)
	if err != nil {
		return Result[Testimonial, TestimonialFacets]{}, err
	}

	p := plan[Testimonial]{
		compare: compare,
		rating:  func(t Testimonial) float64 { return float64(t.Rating) },
	}
	if q.ProductID != "" {
		p.filters = append(p.filters, func(t Testimonial) bool { return t.ProductID == q.ProductID })
	}
	if q.Verified != nil {
		want := *q.Verified
		p.filters = append(p.filters, func(t Testimonial) bool { return t.Verified == want })
	}
	if q.MinRating > 0 {
		p.filters = append(p.filters, func(t Testimonial) bool { return t.Rating >= q.MinRating })
	}

	items, pagination, stats := execute(testimonials, p, q.Page)
	return Result[Testimonial, TestimonialFacets]{
		Items:      items,
		Pagination: pagination,
		Statistics: stats,
		Facets: TestimonialFacets{
			ProductIDs: distinct(testimonials, func(t Testimonial) []string { return []string{t.ProductID} }),
		},
	}, nil
}

func testimonialComparator(key SortKey) (func(a, b Testimonial) int, error) {
	switch key {
	case SortDefault, SortNewest:
		return func(a, b Testimonial) int { return b.Date.Compare(a.Date) }, nil
	case SortOldest:
		return func(a, b Testimonial) int { return a.Date.Compare(b.Date) }, nil
	case SortRating:
		return func(a, b Testimonial) int { return cmpDesc(a.Rating, b.Rating) }, nil
	case SortHelpful:
		return func(a, b Testimonial) int { return cmpDesc(a.Helpful, b.Helpful) }, nil
	default:
		return nil, unknownSort(key)
	}
}
