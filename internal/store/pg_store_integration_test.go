package store

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/farihasabaya/storefront/internal/catalog"
	apperrors "github.com/farihasabaya/storefront/internal/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "STOREFRONT_SKIP_INTEGRATION_TESTS"

// PgRepositorySuite runs the generic repository against a real PostgreSQL.
type PgRepositorySuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	products    *PgRepository[catalog.Product]
	stores      *PgRepository[catalog.Store]
	logger      *slog.Logger
	ctx         context.Context
}

func (s *PgRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")
	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		if err = s.dbPool.Ping(s.ctx); err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	require.NoError(s.T(), Migrate(connStr), "Failed to apply migrations")
	s.logger.Info("Migrations applied")

	s.products = NewPgRepository[catalog.Product](s.dbPool, ProductsTable, apperrors.ErrProductNotFound)
	s.stores = NewPgRepository[catalog.Store](s.dbPool, StoresTable, apperrors.ErrStoreNotFound)
}

func (s *PgRepositorySuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}

func (s *PgRepositorySuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE products, stores RESTART IDENTITY")
	require.NoError(s.T(), err, "Failed to truncate tables")
}

func TestPgRepositoryIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(PgRepositorySuite))
}

func (s *PgRepositorySuite) TestSeedAndList() {
	n, err := SeedIfEmpty(s.ctx, s.products, SeedProducts())
	s.Require().NoError(err)
	s.Equal(6, n)

	list, err := s.products.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 6)
	s.Equal("1", list[0].ID)
	s.Equal("6", list[5].ID)
	s.Require().NotNil(list[0].DiscountPrice)
	s.InDelta(299.99, *list[0].DiscountPrice, 1e-9)
	s.Equal([]string{"black", "navy"}, list[0].Colors)
}

func (s *PgRepositorySuite) TestFindByID() {
	_, err := SeedIfEmpty(s.ctx, s.stores, SeedStores())
	s.Require().NoError(err)

	found, err := s.stores.FindByID(s.ctx, "2")
	s.Require().NoError(err)
	s.Equal("London", found.Address.City)
	s.Equal("Europe/London", found.TimeZone)

	_, err = s.stores.FindByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrStoreNotFound)
}

func (s *PgRepositorySuite) TestCreateDuplicate() {
	_, err := s.products.Create(s.ctx, catalog.Product{ID: "x"})
	s.Require().NoError(err)

	_, err = s.products.Create(s.ctx, catalog.Product{ID: "x"})
	s.ErrorIs(err, apperrors.ErrDuplicateID)
}

func (s *PgRepositorySuite) TestMutate() {
	_, err := SeedIfEmpty(s.ctx, s.products, SeedProducts())
	s.Require().NoError(err)

	updated, err := s.products.Mutate(s.ctx, "4", func(p *catalog.Product) error {
		p.InStock = true
		return nil
	})
	s.Require().NoError(err)
	s.True(updated.InStock)

	stored, err := s.products.FindByID(s.ctx, "4")
	s.Require().NoError(err)
	s.True(stored.InStock)

	_, err = s.products.Mutate(s.ctx, "missing", func(*catalog.Product) error { return nil })
	s.ErrorIs(err, apperrors.ErrProductNotFound)
}

func (s *PgRepositorySuite) TestDelete() {
	_, err := SeedIfEmpty(s.ctx, s.products, SeedProducts())
	s.Require().NoError(err)

	s.Require().NoError(s.products.Delete(s.ctx, "2"))
	s.ErrorIs(s.products.Delete(s.ctx, "2"), apperrors.ErrProductNotFound)

	list, err := s.products.List(s.ctx)
	s.Require().NoError(err)
	assert.Len(s.T(), list, 5)
}
