// Package catalog implements the storefront query engine.
//
// Every Query* function is a pure transformation of an immutable record snapshot into a Result:
// records are filtered, stably sorted, summarized and finally sliced into a page. Nothing in this
// package performs I/O, spawns goroutines or keeps state between calls, so concurrent queries need
// no coordination. Callers are expected to validate user input first; parameters that break the
// contract (non-positive page size, unknown sort key) fail the call with ErrInvalidQuery.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

const (
	// DefaultPage is the page used when the caller does not ask for one.
	DefaultPage = 1
	// MaxPageSize is the absolute ceiling for any page size.
	MaxPageSize = 50
	// AllCategories is the sentinel category value meaning "no category filter".
	AllCategories = "all"
)

// ErrInvalidQuery signals a contract violation in the query parameters.
var ErrInvalidQuery = errors.New("invalid catalog query")

// SortKey selects one of the fixed comparators.
type SortKey string

const (
	SortDefault   SortKey = ""
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPopular   SortKey = "popular"
	SortHelpful   SortKey = "helpful"
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
	SortDistance  SortKey = "distance"
)

// PageRequest is the 1-based page selection of a query.
type PageRequest struct {
	Page     int
	PageSize int
}

func (p PageRequest) validate(ceiling int) error {
	if p.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidQuery, p.Page)
	}
	if p.PageSize < 1 || p.PageSize > ceiling {
		return fmt.Errorf("%w: page size must be within [1, %d], got %d", ErrInvalidQuery, ceiling, p.PageSize)
	}
	return nil
}

// Pagination describes where a page sits within the full filtered set.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	PageSize     int  `json:"pageSize"`
	TotalPages   int  `json:"totalPages"`
	TotalMatches int  `json:"totalMatches"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// Statistics is computed over the whole filtered set, before pagination.
// The rating fields stay zero for domains that carry no rating.
type Statistics struct {
	TotalMatches       int                `json:"totalMatches"`
	AverageRating      float64            `json:"averageRating"`
	RatingDistribution RatingDistribution `json:"ratingDistribution,omitempty"`
}

// RatingDistribution counts records per whole-star rating, keys 1 through 5.
type RatingDistribution map[int]int

// Result is the envelope produced by a query: the page slice, pagination metadata,
// statistics over the filtered set and facets over the unfiltered set.
type Result[T any, F any] struct {
	Items      []T
	Pagination Pagination
	Statistics Statistics
	Facets     F
}

// predicate keeps a record when it returns true.
type predicate[T any] func(T) bool

// plan is the per-domain configuration of the pipeline.
type plan[T any] struct {
	filters []predicate[T]
	compare func(a, b T) int
	rating  func(T) float64
}

// execute runs filter, stable sort, statistics and pagination, in that order.
// The input slice is never modified.
func execute[T any](records []T, p plan[T], page PageRequest) ([]T, Pagination, Statistics) {
	matches := make([]T, 0, len(records))
	for _, rec := range records {
		if keep(rec, p.filters) {
			matches = append(matches, rec)
		}
	}
	if p.compare != nil {
		slices.SortStableFunc(matches, p.compare)
	}
	stats := summarize(matches, p.rating)
	items, pagination := Paginate(matches, page)
	return items, pagination, stats
}

func keep[T any](rec T, filters []predicate[T]) bool {
	for _, f := range filters {
		if !f(rec) {
			return false
		}
	}
	return true
}

// Paginate slices items into the requested page. A page past the end yields an empty,
// non-nil slice. The caller guarantees page.Page >= 1 and page.PageSize >= 1.
func Paginate[T any](items []T, page PageRequest) ([]T, Pagination) {
	total := len(items)
	totalPages := total / page.PageSize
	if total%page.PageSize != 0 {
		totalPages++
	}
	// Bounds are only multiplied out for pages that exist, so huge page numbers cannot overflow.
	start, end := total, total
	if page.Page <= totalPages {
		start = (page.Page - 1) * page.PageSize
		end = min(start+page.PageSize, total)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, Pagination{
		CurrentPage:  page.Page,
		PageSize:     page.PageSize,
		TotalPages:   totalPages,
		TotalMatches: total,
		HasNextPage:  page.Page < totalPages,
		HasPrevPage:  page.Page > 1,
	}
}

// summarize computes the count and, when rating is set, the star histogram and the mean
// rounded to one decimal. Ratings below one star are treated as unrated.
func summarize[T any](items []T, rating func(T) float64) Statistics {
	stats := Statistics{TotalMatches: len(items)}
	if rating == nil {
		return stats
	}
	stats.RatingDistribution = RatingDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var sum float64
	var rated int
	for _, it := range items {
		r := rating(it)
		if r < 1 {
			continue
		}
		sum += r
		rated++
		stats.RatingDistribution[starBucket(r)]++
	}
	if rated > 0 {
		stats.AverageRating = roundTo(sum/float64(rated), 1)
	}
	return stats
}

func starBucket(r float64) int {
	return int(math.Max(1, math.Min(5, math.Round(r))))
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// distinct collects the non-empty values produced by each record in first-seen order.
func distinct[T any](records []T, values func(T) []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, rec := range records {
		for _, v := range values(rec) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func cmpDesc[N int | float64](a, b N) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

func cmpAsc[N int | float64](a, b N) int {
	return -cmpDesc(a, b)
}

// cmpBoolFirst orders true before false.
func cmpBoolFirst(a, b bool) int {
	switch {
	case a && !b:
		return -1
	case !a && b:
		return 1
	}
	return 0
}

func unknownSort(key SortKey) error {
	return fmt.Errorf("%w: unsupported sort key %q", ErrInvalidQuery, key)
}
