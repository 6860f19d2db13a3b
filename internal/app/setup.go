// Package app contains the application setup for the storefront API.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/farihasabaya/storefront/internal/auth"
	"github.com/farihasabaya/storefront/internal/catalog"
	"github.com/farihasabaya/storefront/internal/config"
	apperrors "github.com/farihasabaya/storefront/internal/errors"
	"github.com/farihasabaya/storefront/internal/service"
	"github.com/farihasabaya/storefront/internal/store"
	"github.com/farihasabaya/storefront/internal/transport/rest"
	"github.com/farihasabaya/storefront/pkg/messaging"
	"github.com/farihasabaya/storefront/pkg/metrics"
	natsclient "github.com/farihasabaya/storefront/pkg/nats"
	"github.com/farihasabaya/storefront/pkg/server"
	"github.com/farihasabaya/storefront/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// defaultMaxBodyBytes caps request bodies when server.maxBodyBytes is unset.
const defaultMaxBodyBytes = 1 << 20

// Repositories holds one record store per domain.
type Repositories struct {
	Products     store.Repository[catalog.Product]
	Stores       store.Repository[catalog.Store]
	Testimonials store.Repository[catalog.Testimonial]
	Inquiries    store.Repository[catalog.Inquiry]
	Subscribers  store.Repository[catalog.Subscriber]
}

// NewMemoryRepositories creates empty in-process stores.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Products:     store.NewMemoryRepository[catalog.Product](apperrors.ErrProductNotFound),
		Stores:       store.NewMemoryRepository[catalog.Store](apperrors.ErrStoreNotFound),
		Testimonials: store.NewMemoryRepository[catalog.Testimonial](apperrors.ErrTestimonialNotFound),
		Inquiries:    store.NewMemoryRepository[catalog.Inquiry](apperrors.ErrInquiryNotFound),
		Subscribers:  store.NewMemoryRepository[catalog.Subscriber](apperrors.ErrSubscriberNotFound),
	}
}

// NewPgRepositories creates stores backed by the migrated PostgreSQL schema.
func NewPgRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Products:     store.NewPgRepository[catalog.Product](dbPool, store.ProductsTable, apperrors.ErrProductNotFound),
		Stores:       store.NewPgRepository[catalog.Store](dbPool, store.StoresTable, apperrors.ErrStoreNotFound),
		Testimonials: store.NewPgRepository[catalog.Testimonial](dbPool, store.TestimonialsTable, apperrors.ErrTestimonialNotFound),
		Inquiries:    store.NewPgRepository[catalog.Inquiry](dbPool, store.InquiriesTable, apperrors.ErrInquiryNotFound),
		Subscribers:  store.NewPgRepository[catalog.Subscriber](dbPool, store.SubscribersTable, apperrors.ErrSubscriberNotFound),
	}
}

// Seed loads the launch catalog into every empty store.
func (r *Repositories) Seed(ctx context.Context, logger *slog.Logger) error {
	steps := []struct {
		name string
		seed func() (int, error)
	}{
		{"products", func() (int, error) { return store.SeedIfEmpty(ctx, r.Products, store.SeedProducts()) }},
		{"stores", func() (int, error) { return store.SeedIfEmpty(ctx, r.Stores, store.SeedStores()) }},
		{"testimonials", func() (int, error) { return store.SeedIfEmpty(ctx, r.Testimonials, store.SeedTestimonials()) }},
		{"inquiries", func() (int, error) { return store.SeedIfEmpty(ctx, r.Inquiries, store.SeedInquiries()) }},
		{"subscribers", func() (int, error) { return store.SeedIfEmpty(ctx, r.Subscribers, store.SeedSubscribers()) }},
	}
	for _, step := range steps {
		n, err := step.seed()
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
		if n > 0 {
			logger.Info("Seeded records", "domain", step.name, "count", n)
		}
	}
	return nil
}

// SetupPublisher connects to NATS JetStream when enabled and otherwise logs events.
// The returned close function is never nil.
func SetupPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.NATS.Enabled {
		logger.Info("NATS is disabled, events are only logged")
		return messaging.NewLogPublisher(logger), func() {}, nil
	}
	nc, err := natsclient.NewClient(cfg.NATS.Url, cfg.NATS.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := natsclient.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	if err := natsclient.EnsureStream(ctx, js, cfg.NATS.Stream, messaging.StreamSubjects); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Info("Connected to NATS JetStream", "url", nc.ConnectedUrl(), "stream", cfg.NATS.Stream)
	return natsclient.NewNatsPublisher(js), func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("Failed to drain NATS connection", "error", err)
		}
	}, nil
}

type Dependencies struct {
	Services rest.Services
	Limiter  *web.RateLimiter
	// MaxBodyBytes caps every request body.
	MaxBodyBytes int64
	Tracing      bool
	TrustProxy   bool
	Logger       *slog.Logger
}

func SetupDependencies(repos *Repositories, publisher messaging.Publisher, cfg *config.Config, logger *slog.Logger) *Dependencies {
	location := catalog.ResolveLocation(cfg.Catalog.TimeZone, nil)
	authenticator := auth.NewAuthenticator(cfg.Auth)

	var limiter *web.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = web.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)
	}

	maxBody := cfg.HTTPServer.MaxBodyBytes
	if maxBody == 0 {
		maxBody = defaultMaxBodyBytes
	}

	return &Dependencies{
		Services: rest.Services{
			Catalog:    service.NewCatalog(repos.Products, repos.Stores, repos.Testimonials, location),
			Admin:      service.NewAdmin(repos.Products, repos.Stores, repos.Testimonials, repos.Inquiries, repos.Subscribers),
			Inquiries:  service.NewInquiries(repos.Inquiries, publisher, logger),
			Newsletter: service.NewNewsletter(repos.Subscribers, publisher, logger),
			Auth:       authenticator,
			Verifier:   authenticator,
		},
		Limiter:      limiter,
		MaxBodyBytes: maxBody,
		Tracing:      cfg.Telemetry.Traces.Enabled,
		TrustProxy:   cfg.HTTPServer.TrustProxy,
		Logger:       logger,
	}
}

// SetupHttpHandler initializes the routes and middleware of the storefront API.
// Used by tests to exercise the full HTTP stack.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger, deps.TrustProxy)
	mux.Use(web.BodyLimit(deps.MaxBodyBytes))
	wireRoutes(mux, deps)

	if !deps.Tracing {
		return mux
	}
	return otelhttp.NewHandler(mux, "storefront",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	mux.Handle("/metrics", metrics.Handler())
	rest.NewHandler(deps.Services, deps.Limiter, deps.Logger).RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the HTTP server of the storefront API.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
