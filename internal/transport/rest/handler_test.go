package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/farihasabaya/storefront/internal/auth"
	"github.com/farihasabaya/storefront/internal/catalog"
	apperrors "github.com/farihasabaya/storefront/internal/errors"
	"github.com/farihasabaya/storefront/internal/service"
	"github.com/farihasabaya/storefront/internal/store"
	"github.com/farihasabaya/storefront/pkg/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@farihasabaya.com"
	adminPassword = "correct horse battery staple"
)

type envelope struct {
	Success          bool              `json:"success"`
	Data             json.RawMessage   `json:"data"`
	Message          string            `json:"message"`
	Error            string            `json:"error"`
	ValidationErrors map[string]string `json:"validation_errors"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seed[T store.Record[T]](t *testing.T, notFound error, records []T) *store.MemoryRepository[T] {
	t.Helper()
	repo := store.NewMemoryRepository[T](notFound)
	_, err := store.SeedIfEmpty(context.Background(), repo, records)
	require.NoError(t, err)
	return repo
}

// newTestRouter wires the handler over seeded in-memory repositories.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	products := seed(t, apperrors.ErrProductNotFound, store.SeedProducts())
	stores := seed(t, apperrors.ErrStoreNotFound, store.SeedStores())
	testimonials := seed(t, apperrors.ErrTestimonialNotFound, store.SeedTestimonials())
	inquiries := seed(t, apperrors.ErrInquiryNotFound, store.SeedInquiries())
	subscribers := seed(t, apperrors.ErrSubscriberNotFound, store.SeedSubscribers())

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	authenticator := auth.NewAuthenticator(config.AuthConfig{
		AdminEmail:   adminEmail,
		PasswordHash: string(hash),
		JWTSecret:    strings.Repeat("k", 32),
		Issuer:       "storefront",
		TokenTTL:     time.Hour,
	})

	log := discardLogger()
	return newRouter(Services{
		Catalog:    service.NewCatalog(products, stores, testimonials, time.UTC),
		Admin:      service.NewAdmin(products, stores, testimonials, inquiries, subscribers),
		Inquiries:  service.NewInquiries(inquiries, nil, log),
		Newsletter: service.NewNewsletter(subscribers, nil, log),
		Auth:       authenticator,
		Verifier:   authenticator,
	})
}

func newRouter(services Services) http.Handler {
	r := chi.NewRouter()
	NewHandler(services, nil, discardLogger()).RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	}
	return rr, env
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rr, env := do(t, h, http.MethodPost, "/api/admin/login",
		`{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var session auth.Session
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestHandler_ListProducts(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name           string
		query          string
		expectedCode   int
		expectedCount  int
		expectedTotal  int
		expectedErrors map[string]string
	}{
		{name: "Success - default page", query: "", expectedCode: http.StatusOK, expectedCount: 6, expectedTotal: 6},
		{name: "Success - second page of two", query: "?sortBy=price-low&limit=2&page=2", expectedCode: http.StatusOK, expectedCount: 2, expectedTotal: 6},
		{name: "Success - category filter", query: "?category=casual", expectedCode: http.StatusOK, expectedCount: 2, expectedTotal: 2},
		{name: "Success - no matches", query: "?search=nonexistent", expectedCode: http.StatusOK, expectedCount: 0, expectedTotal: 0},
		{name: "Success - page far past the end", query: "?page=768614336404564652", expectedCode: http.StatusOK, expectedCount: 0, expectedTotal: 6},
		{
			name: "Error - limit above ceiling", query: "?limit=51", expectedCode: http.StatusBadRequest,
			expectedErrors: map[string]string{"limit": "failed on rule: max"},
		},
		{
			name: "Error - unparsable price", query: "?minPrice=cheap", expectedCode: http.StatusBadRequest,
			expectedErrors: map[string]string{"minPrice": "failed on rule: numeric"},
		},
		{
			name: "Error - inverted price range", query: "?minPrice=300&maxPrice=100", expectedCode: http.StatusBadRequest,
			expectedErrors: map[string]string{"maxPrice": "failed on rule: gtefield"},
		},
		{
			name: "Error - unknown sort", query: "?sortBy=cheapest", expectedCode: http.StatusBadRequest,
			expectedErrors: map[string]string{"sortBy": "failed on rule: oneof"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr, env := do(t, router, http.MethodGet, "/api/products"+tc.query, "", "")

			// then
			require.Equal(t, tc.expectedCode, rr.Code, rr.Body.String())
			if tc.expectedErrors != nil {
				assert.False(t, env.Success)
				assert.Equal(t, tc.expectedErrors, env.ValidationErrors)
				return
			}
			var body struct {
				Products   []catalog.Product     `json:"products"`
				Pagination map[string]any        `json:"pagination"`
				Filters    catalog.ProductFacets `json:"filters"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &body))
			assert.True(t, env.Success)
			assert.Len(t, body.Products, tc.expectedCount)
			assert.EqualValues(t, tc.expectedTotal, body.Pagination["totalProducts"])
			assert.NotEmpty(t, body.Filters.Categories)
		})
	}
}

func TestHandler_FindProduct(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Success - product found", func(t *testing.T) {
		rr, env := do(t, router, http.MethodGet, "/api/products/1", "", "")

		require.Equal(t, http.StatusOK, rr.Code)
		var p catalog.Product
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.Equal(t, "Midnight Elegance Abaya", p.Name)
	})

	t.Run("Error - product not found", func(t *testing.T) {
		rr, env := do(t, router, http.MethodGet, "/api/products/999", "", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Product not found", env.Error)
	})
}

func TestHandler_ListStores(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Success - nearest store first", func(t *testing.T) {
		// given Dubai coordinates and a radius that also covers Doha
		rr, env := do(t, router, http.MethodGet, "/api/stores?lat=25.2&lng=55.27&radius=500&sortBy=distance", "", "")

		// then
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var body struct {
			Stores     []catalog.StoreView `json:"stores"`
			Pagination map[string]any      `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &body))
		require.Len(t, body.Stores, 2)
		assert.Equal(t, "1", body.Stores[0].ID)
		assert.Equal(t, "5", body.Stores[1].ID)
		require.NotNil(t, body.Stores[0].DistanceKm)
		assert.Less(t, *body.Stores[0].DistanceKm, 5.0)
		assert.EqualValues(t, 2, body.Pagination["totalStores"])
	})

	t.Run("Error - latitude without longitude", func(t *testing.T) {
		rr, env := do(t, router, http.MethodGet, "/api/stores?lat=25.2", "", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "failed on rule: required_with", env.ValidationErrors["lng"])
	})

	t.Run("Error - store not found", func(t *testing.T) {
		rr, _ := do(t, router, http.MethodGet, "/api/stores/42", "", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandler_Testimonials(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Success - statistics over filtered set", func(t *testing.T) {
		rr, env := do(t, router, http.MethodGet, "/api/testimonials?productId=1", "", "")

		require.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Testimonials []catalog.Testimonial `json:"testimonials"`
			Statistics   testimonialStatistics `json:"statistics"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &body))
		assert.Len(t, body.Testimonials, 2)
		assert.Equal(t, 2, body.Statistics.TotalReviews)
		assert.InDelta(t, 5.0, body.Statistics.AverageRating, 0.001)
	})

	t.Run("Success - submit review", func(t *testing.T) {
		payload := `{"name":"Amina","email":"Amina@Example.com","rating":4,"comment":"Lovely fabric and fit."}`

		rr, env := do(t, router, http.MethodPost, "/api/testimonials", payload, "")

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var created catalog.Testimonial
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.False(t, created.Verified)
		assert.Zero(t, created.Helpful)
		assert.Empty(t, created.Email)
		assert.NotContains(t, rr.Body.String(), "amina@example.com")
	})

	t.Run("Error - rating out of range", func(t *testing.T) {
		payload := `{"name":"Amina","email":"amina@example.com","rating":9,"comment":"Lovely fabric and fit."}`

		rr, env := do(t, router, http.MethodPost, "/api/testimonials", payload, "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "failed on rule: max", env.ValidationErrors["rating"])
	})

	t.Run("Success - helpful vote", func(t *testing.T) {
		rr, env := do(t, router, http.MethodPost, "/api/testimonials/1/helpful", "", "")

		require.Equal(t, http.StatusOK, rr.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &body))
		assert.EqualValues(t, 25, body["helpful"])
	})

	t.Run("Success - largest page number is empty", func(t *testing.T) {
		rr, env := do(t, router, http.MethodGet, "/api/testimonials?page=9223372036854775807&limit=20", "", "")

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var body struct {
			Testimonials []catalog.Testimonial `json:"testimonials"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &body))
		assert.Empty(t, body.Testimonials)
	})

	t.Run("Error - helpful vote on unknown review", func(t *testing.T) {
		rr, _ := do(t, router, http.MethodPost, "/api/testimonials/missing/helpful", "", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandler_SubmitInquiry(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name              string
		query             string
		payload           string
		expectedCode      int
		expectedPriority  catalog.Priority
		expectedResponse  string
		expectedErrorKeys []string
	}{
		{
			name:             "Success - order inquiry escalates",
			payload:          `{"name":"Sara","email":"sara@example.com","subject":"Where is my order","message":"It has been two weeks.","inquiryType":"order","orderNumber":"FA-1001","urgency":"low"}`,
			expectedCode:     http.StatusCreated,
			expectedPriority: catalog.PriorityHigh,
			expectedResponse: "2-4 hours",
		},
		{
			name:             "Success - default urgency",
			query:            "?type=contact",
			payload:          `{"name":"Sara","email":"sara@example.com","subject":"Sizing help","message":"Which size fits 165cm?"}`,
			expectedCode:     http.StatusCreated,
			expectedPriority: catalog.PriorityMedium,
			expectedResponse: "4-8 hours",
		},
		{
			name:             "Success - quote",
			query:            "?type=quote",
			payload:          `{"name":"Boutique","email":"buy@boutique.com","phone":"+971501234567","quantity":50,"productType":"abaya","specifications":"Black crepe with gold trim, sizes S-XL."}`,
			expectedCode:     http.StatusCreated,
			expectedPriority: catalog.PriorityMedium,
			expectedResponse: "24-48 hours",
		},
		{
			name:              "Error - quote missing fields",
			query:             "?type=quote",
			payload:           `{"name":"Boutique","email":"buy@boutique.com"}`,
			expectedCode:      http.StatusBadRequest,
			expectedErrorKeys: []string{"phone", "quantity", "productType", "specifications"},
		},
		{
			name:              "Error - unknown type",
			query:             "?type=complaint",
			payload:           `{}`,
			expectedCode:      http.StatusBadRequest,
			expectedErrorKeys: []string{"type"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr, env := do(t, router, http.MethodPost, "/api/contact"+tc.query, tc.payload, "")

			require.Equal(t, tc.expectedCode, rr.Code, rr.Body.String())
			if tc.expectedErrorKeys != nil {
				for _, key := range tc.expectedErrorKeys {
					assert.Contains(t, env.ValidationErrors, key)
				}
				return
			}
			var receipt inquiryReceipt
			require.NoError(t, json.Unmarshal(env.Data, &receipt))
			assert.NotEmpty(t, receipt.ID)
			assert.Equal(t, tc.expectedPriority, receipt.Priority)
			assert.Equal(t, tc.expectedResponse, receipt.EstimatedResponse)
		})
	}
}

func TestHandler_NewsletterLifecycle(t *testing.T) {
	router := newTestRouter(t)
	payload := `{"email":"New.Reader@Example.com","firstName":"Noor"}`

	// when subscribing
	rr, env := do(t, router, http.MethodPost, "/api/newsletter", payload, "")

	// then
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var view subscriptionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "new.reader@example.com", view.Email)
	assert.Equal(t, catalog.AllPreferences(), view.Preferences)
	require.NotEmpty(t, view.UnsubscribeToken)

	// when subscribing again with different casing
	rr, _ = do(t, router, http.MethodPost, "/api/newsletter", `{"email":"NEW.reader@example.com","firstName":"Noor"}`, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	// when unsubscribing with a wrong token
	rr, _ = do(t, router, http.MethodDelete, "/api/newsletter", `{"email":"new.reader@example.com","token":"nope"}`, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// when unsubscribing with the issued token
	rr, _ = do(t, router, http.MethodDelete, "/api/newsletter",
		`{"email":"new.reader@example.com","token":"`+view.UnsubscribeToken+`"}`, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	// when subscribing after leaving
	rr, env = do(t, router, http.MethodPost, "/api/newsletter", payload, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, env.Message, "reactivated")
	var reactivated subscriptionView
	require.NoError(t, json.Unmarshal(env.Data, &reactivated))
	assert.Equal(t, view.ID, reactivated.ID)
	assert.Empty(t, reactivated.UnsubscribeToken)
	assert.NotContains(t, rr.Body.String(), view.UnsubscribeToken)
}

func TestHandler_AdminAccess(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name         string
		method       string
		target       string
		payload      string
		expectedCode int
	}{
		{name: "Error - dashboard without token", method: http.MethodGet, target: "/api/admin/dashboard/stats", expectedCode: http.StatusUnauthorized},
		{name: "Error - delete without token", method: http.MethodDelete, target: "/api/admin/products/1", expectedCode: http.StatusUnauthorized},
		{name: "Error - wrong password", method: http.MethodPost, target: "/api/admin/login", payload: `{"email":"` + adminEmail + `","password":"guess"}`, expectedCode: http.StatusUnauthorized},
		{name: "Error - malformed login", method: http.MethodPost, target: "/api/admin/login", payload: `{"email":"not-an-email"}`, expectedCode: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr, _ := do(t, router, tc.method, tc.target, tc.payload, "")
			assert.Equal(t, tc.expectedCode, rr.Code)
		})
	}
}

func TestHandler_AdminProducts(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	t.Run("Success - dashboard", func(t *testing.T) {
		rr, env := do(t, router, http.MethodGet, "/api/admin/dashboard/stats", "", token)

		require.Equal(t, http.StatusOK, rr.Code)
		var stats service.DashboardStats
		require.NoError(t, json.Unmarshal(env.Data, &stats))
		assert.Equal(t, 6, stats.TotalProducts)
		assert.Equal(t, stats.TotalProducts, stats.InStockProducts+stats.OutOfStockProducts)
	})

	t.Run("Error - patch with unknown field", func(t *testing.T) {
		rr, _ := do(t, router, http.MethodPatch, "/api/admin/products/1", `{"price":199,"rating":5}`, token)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Error - discount not below price", func(t *testing.T) {
		rr, env := do(t, router, http.MethodPatch, "/api/admin/products/2", `{"discountPrice":500}`, token)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, env.Error, "must be below price")
	})

	t.Run("Success - patch price", func(t *testing.T) {
		rr, env := do(t, router, http.MethodPatch, "/api/admin/products/2", `{"price":199.5}`, token)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var p catalog.Product
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.InDelta(t, 199.5, p.Price, 0.001)
		assert.Equal(t, "Desert Rose Collection", p.Name)
	})

	t.Run("Success - toggle stock", func(t *testing.T) {
		rr, env := do(t, router, http.MethodPut, "/api/admin/products/4/stock", "", token)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Product marked as in stock", env.Message)
	})

	t.Run("Success - delete then gone", func(t *testing.T) {
		rr, _ := do(t, router, http.MethodDelete, "/api/admin/products/3", "", token)
		require.Equal(t, http.StatusNoContent, rr.Code)

		rr, _ = do(t, router, http.MethodGet, "/api/admin/products/3", "", token)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Success - create product", func(t *testing.T) {
		payload := `{"name":"Linen Summer Abaya","description":"Breathable linen for warm days.","category":"casual",
			"price":159,"colors":["sand"],"sizes":["M","L"],"image":"/images/linen.jpg","inStock":true}`

		rr, env := do(t, router, http.MethodPost, "/api/admin/products", payload, token)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var p catalog.Product
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.NotEmpty(t, p.ID)
	})
}

func TestHandler_AdminModeration(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	t.Run("Success - hide testimonial", func(t *testing.T) {
		rr, env := do(t, router, http.MethodPatch, "/api/admin/testimonials/2", `{"verified":false}`, token)

		require.Equal(t, http.StatusOK, rr.Code)
		var tm catalog.Testimonial
		require.NoError(t, json.Unmarshal(env.Data, &tm))
		assert.False(t, tm.Verified)
	})

	t.Run("Error - verified flag missing", func(t *testing.T) {
		rr, env := do(t, router, http.MethodPatch, "/api/admin/testimonials/2", `{}`, token)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "failed on rule: required", env.ValidationErrors["verified"])
	})

	t.Run("Error - invalid store hours", func(t *testing.T) {
		payload := `{"hours":{"monday":"whenever"}}`

		rr, _ := do(t, router, http.MethodPatch, "/api/admin/stores/1", payload, token)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Success - resolve inquiry", func(t *testing.T) {
		rr, env := do(t, router, http.MethodPatch, "/api/admin/inquiries/1", `{"status":"resolved","response":"Sent the size chart."}`, token)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var inquiry catalog.Inquiry
		require.NoError(t, json.Unmarshal(env.Data, &inquiry))
		assert.Equal(t, catalog.StatusResolved, inquiry.Status)
		assert.NotNil(t, inquiry.RespondedAt)
	})

	t.Run("Success - list inquiries with all sentinel", func(t *testing.T) {
		rr, env := do(t, router, http.MethodGet, "/api/admin/inquiries?status=all", "", token)

		require.Equal(t, http.StatusOK, rr.Code)
		var body inquiryListResponse
		require.NoError(t, json.Unmarshal(env.Data, &body))
		assert.Len(t, body.Submissions, 2)
		assert.Equal(t, 2, body.Statistics.Total)
		assert.Equal(t, 1, body.Statistics.Resolved)
	})

	t.Run("Error - unknown inquiry status filter", func(t *testing.T) {
		rr, _ := do(t, router, http.MethodGet, "/api/admin/inquiries?status=archived", "", token)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

// failingCatalog fails every product listing.
type failingCatalog struct {
	service.CatalogService
	err error
}

func (f failingCatalog) ListProducts(context.Context, catalog.ProductQuery) (catalog.Result[catalog.Product, catalog.ProductFacets], error) {
	return catalog.Result[catalog.Product, catalog.ProductFacets]{}, f.err
}

func TestHandler_ServiceErrors(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		expectedCode  int
		expectedError string
	}{
		{name: "Error - storage failure is hidden", err: errors.New("connection reset"), expectedCode: http.StatusInternalServerError, expectedError: "Failed to fetch products"},
		{name: "Error - engine contract violation", err: catalog.ErrInvalidQuery, expectedCode: http.StatusBadRequest, expectedError: "Invalid catalog query"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			router := newRouter(Services{Catalog: failingCatalog{err: tc.err}})

			// when
			rr, env := do(t, router, http.MethodGet, "/api/products", "", "")

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.Equal(t, tc.expectedError, env.Error)
			assert.NotContains(t, rr.Body.String(), "connection reset")
		})
	}
}
