package catalog

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		page     PageRequest
		want     []int
		wantMeta Pagination
	}{
		{
			name:     "first page",
			page:     PageRequest{Page: 1, PageSize: 2},
			want:     []int{1, 2},
			wantMeta: Pagination{CurrentPage: 1, PageSize: 2, TotalPages: 3, TotalMatches: 5, HasNextPage: true},
		},
		{
			name:     "last partial page",
			page:     PageRequest{Page: 3, PageSize: 2},
			want:     []int{5},
			wantMeta: Pagination{CurrentPage: 3, PageSize: 2, TotalPages: 3, TotalMatches: 5, HasPrevPage: true},
		},
		{
			name:     "page past the end is empty",
			page:     PageRequest{Page: 9, PageSize: 2},
			want:     []int{},
			wantMeta: Pagination{CurrentPage: 9, PageSize: 2, TotalPages: 3, TotalMatches: 5, HasPrevPage: true},
		},
		{
			name:     "largest page number is empty",
			page:     PageRequest{Page: math.MaxInt, PageSize: 12},
			want:     []int{},
			wantMeta: Pagination{CurrentPage: math.MaxInt, PageSize: 12, TotalPages: 1, TotalMatches: 5, HasPrevPage: true},
		},
		{
			name:     "page whose offset would wrap around",
			page:     PageRequest{Page: math.MaxInt/12 + 2, PageSize: 12},
			want:     []int{},
			wantMeta: Pagination{CurrentPage: math.MaxInt/12 + 2, PageSize: 12, TotalPages: 1, TotalMatches: 5, HasPrevPage: true},
		},
		{
			name:     "largest page size",
			page:     PageRequest{Page: 1, PageSize: math.MaxInt},
			want:     []int{1, 2, 3, 4, 5},
			wantMeta: Pagination{CurrentPage: 1, PageSize: math.MaxInt, TotalPages: 1, TotalMatches: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta := Paginate(items, tt.page)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMeta, meta)
		})
	}
}

func TestPaginate_NoMatches(t *testing.T) {
	got, meta := Paginate([]int{}, PageRequest{Page: 1, PageSize: 10})

	assert.Empty(t, got)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPrevPage)
}

func TestPaginate_CoversEverySortedRecordOnce(t *testing.T) {
	products := make([]Product, 0, 23)
	for i := range 23 {
		products = append(products, Product{ID: fmt.Sprintf("p%02d", i), Price: float64(i % 5)})
	}
	full, err := QueryProducts(products, ProductQuery{Sort: SortPriceHigh, Page: PageRequest{Page: 1, PageSize: MaxPageSize}})
	require.NoError(t, err)

	for _, size := range []int{1, 4, 7, 23} {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			var joined []string
			first, err := QueryProducts(products, ProductQuery{Sort: SortPriceHigh, Page: PageRequest{Page: 1, PageSize: size}})
			require.NoError(t, err)
			for page := 1; page <= first.Pagination.TotalPages; page++ {
				res, err := QueryProducts(products, ProductQuery{Sort: SortPriceHigh, Page: PageRequest{Page: page, PageSize: size}})
				require.NoError(t, err)
				joined = append(joined, ids(res.Items)...)
			}
			assert.Equal(t, ids(full.Items), joined)
		})
	}
}

func TestQueryProducts_HugePageNumber(t *testing.T) {
	// given
	q := ProductQuery{Page: PageRequest{Page: math.MaxInt/12 + 2, PageSize: 12}}

	// when
	res, err := QueryProducts(threeProducts(), q)

	// then
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 3, res.Pagination.TotalMatches)
	assert.False(t, res.Pagination.HasNextPage)
}

func TestQuery_Idempotent(t *testing.T) {
	products := threeProducts()
	q := ProductQuery{Search: "a", Sort: SortName, Page: PageRequest{Page: 1, PageSize: 2}}

	first, err := QueryProducts(products, q)
	require.NoError(t, err)
	second, err := QueryProducts(products, q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		ratings  []float64
		wantAvg  float64
		wantDist RatingDistribution
	}{
		{name: "empty", ratings: nil, wantAvg: 0, wantDist: RatingDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}},
		{name: "whole stars", ratings: []float64{5, 5, 4}, wantAvg: 4.7, wantDist: RatingDistribution{5: 2, 4: 1, 3: 0, 2: 0, 1: 0}},
		{name: "fractional ratings round to nearest star", ratings: []float64{4.8, 4.4, 1.2}, wantAvg: 3.5, wantDist: RatingDistribution{5: 1, 4: 1, 3: 0, 2: 0, 1: 1}},
		{name: "unrated records are skipped", ratings: []float64{0, 3}, wantAvg: 3, wantDist: RatingDistribution{5: 0, 4: 0, 3: 1, 2: 0, 1: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := summarize(tt.ratings, func(r float64) float64 { return r })
			assert.Equal(t, len(tt.ratings), stats.TotalMatches)
			assert.InDelta(t, tt.wantAvg, stats.AverageRating, 1e-9)
			assert.Equal(t, tt.wantDist, stats.RatingDistribution)
		})
	}
}
