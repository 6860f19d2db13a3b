package catalog

import (
	"math"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultRadiusKm is the search radius used when coordinates are given without one.
const DefaultRadiusKm = 50.0

const earthRadiusKm = 6371.0

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is a store's postal address.
type Address struct {
	Street      string   `json:"street"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Country     string   `json:"country"`
	ZipCode     string   `json:"zipCode"`
	Coordinates GeoPoint `json:"coordinates"`
}

// Contact lists the ways to reach a store.
type Contact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// Store is a physical boutique.
type Store struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Address     Address     `json:"address"`
	Contact     Contact     `json:"contact"`
	Hours       WeeklyHours `json:"hours"`
	TimeZone    string      `json:"timeZone"`
	Features    []string    `json:"features"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"reviewCount"`
	Image       string      `json:"image"`
	IsActive    bool        `json:"isActive"`
	IsFlagship  bool        `json:"isFlagship"`
}

// GetID returns the store identifier.
func (s Store) GetID() string { return s.ID }

// Clone returns a deep copy.
func (s Store) Clone() Store {
	c := s
	c.Features = slices.Clone(s.Features)
	return c
}

// StoreView is a store enriched with values computed at query time.
type StoreView struct {
	Store
	IsOpen     bool     `json:"isOpen"`
	TodayHours string   `json:"todayHours"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// ViewOf computes the open status of a single store at now. A store without its own
// time zone is evaluated in fallback.
func ViewOf(s Store, now time.Time, fallback *time.Location) StoreView {
	loc := ResolveLocation(s.TimeZone, fallback)
	return StoreView{
		Store:      s,
		IsOpen:     IsOpenAt(s.Hours, now, loc),
		TodayHours: HoursOn(s.Hours, now, loc),
	}
}

// StoreQuery holds the typed, validated parameters of a store search.
// Now and Location pin the clock so results are reproducible.
type StoreQuery struct {
	Search   string
	City     string
	Country  string
	Near     *GeoPoint
	RadiusKm float64
	Features []string
	OnlyOpen bool
	Sort     SortKey
	Page     PageRequest
	Now      time.Time
	Location *time.Location
}

// StoreFacets lists every selectable location and feature of the store network.
type StoreFacets struct {
	Countries []string `json:"countries"`
	Cities    []string `json:"cities"`
	Features  []string `json:"features"`
}

// QueryStores searches active stores.
func QueryStores(stores []Store, q StoreQuery) (Result[StoreView, StoreFacets], error) {
	if err := q.Page.validate(MaxPageSize); err != nil {
		return Result[StoreView, StoreFacets]{}, err
	}
	compare, err := storeComparator(q.Sort)
	if err != nil {
		return Result[StoreView, StoreFacets]{}, err
	}

	views := make([]StoreView, 0, len(stores))
	for _, s := range stores {
		if !s.IsActive {
			continue
		}
		v := ViewOf(s, q.Now, q.Location)
		if q.Near != nil {
			d := HaversineKm(*q.Near, s.Address.Coordinates)
			v.DistanceKm = &d
		}
		views = append(views, v)
	}

	p := plan[StoreView]{
		compare: compare,
		rating:  func(v StoreView) float64 { return v.Rating },
	}
	if m := newMatcher(q.Search); m != nil {
		p.filters = append(p.filters, func(v StoreView) bool {
			return m.any(v.Name, v.Description, v.Address.City, v.Address.Country) || m.any(v.Features...)
		})
	}
	if q.City != "" {
		p.filters = append(p.filters, func(v StoreView) bool { return containsFold(v.Address.City, q.City) })
	}
	if q.Country != "" {
		p.filters = append(p.filters, func(v StoreView) bool { return containsFold(v.Address.Country, q.Country) })
	}
	if q.Near != nil {
		radius := q.RadiusKm
		if radius <= 0 {
			radius = DefaultRadiusKm
		}
		p.filters = append(p.filters, func(v StoreView) bool { return *v.DistanceKm <= radius })
	}
	if len(q.Features) > 0 {
		p.filters = append(p.filters, func(v StoreView) bool { return intersects(v.Features, q.Features) })
	}
	if q.OnlyOpen {
		p.filters = append(p.filters, func(v StoreView) bool { return v.IsOpen })
	}

	items, pagination, stats := execute(views, p, q.Page)
	return Result[StoreView, StoreFacets]{
		Items:      items,
		Pagination: pagination,
		Statistics: stats,
		Facets:     StoreFacetsOf(stores),
	}, nil
}

// StoreFacetsOf computes facets over every store, active or not.
func StoreFacetsOf(stores []Store) StoreFacets {
	return StoreFacets{
		Countries: distinct(stores, func(s Store) []string { return []string{s.Address.Country} }),
		Cities:    distinct(stores, func(s Store) []string { return []string{s.Address.City} }),
		Features:  distinct(stores, func(s Store) []string { return s.Features }),
	}
}

// HaversineKm is the great-circle distance between two points.
func HaversineKm(a, b GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func storeComparator(key SortKey) (func(a, b StoreView) int, error) {
	switch key {
	case SortDefault:
		return func(a, b StoreView) int {
			if c := cmpBoolFirst(a.IsFlagship, b.IsFlagship); c != 0 {
				return c
			}
			return cmpDesc(a.Rating, b.Rating)
		}, nil
	case SortRating:
		return func(a, b StoreView) int { return cmpDesc(a.Rating, b.Rating) }, nil
	case SortName:
		col := collate.New(language.English, collate.IgnoreCase)
		return func(a, b StoreView) int { return col.CompareString(a.Name, b.Name) }, nil
	case SortDistance:
		// Stores without a distance keep their relative order after those with one.
		return func(a, b StoreView) int {
			switch {
			case a.DistanceKm == nil && b.DistanceKm == nil:
				return 0
			case a.DistanceKm == nil:
				return 1
			case b.DistanceKm == nil:
				return -1
			}
			return cmpAsc(*a.DistanceKm, *b.DistanceKm)
		}, nil
	default:
		return nil, unknownSort(key)
	}
}
