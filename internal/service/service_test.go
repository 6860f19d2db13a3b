package service

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/farihasabaya/storefront/internal/catalog"
	"github.com/farihasabaya/storefront/internal/store"
	"github.com/farihasabaya/storefront/pkg/messaging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var fixedNow = time.Date(2024, 3, 13, 9, 30, 0, 0, time.UTC) // a Wednesday

func clock() time.Time { return fixedNow }

func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

// mockPublisher is a mock implementation of the messaging.Publisher interface.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event messaging.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// mockRepository is a testify mock of store.Repository used to inject storage failures.
type mockRepository[T store.Record[T]] struct {
	mock.Mock
}

func (m *mockRepository[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]T)
	return list, args.Error(1)
}

func (m *mockRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(T)
	return rec, args.Error(1)
}

func (m *mockRepository[T]) Create(ctx context.Context, rec T) (T, error) {
	args := m.Called(ctx, rec)
	out, _ := args.Get(0).(T)
	return out, args.Error(1)
}

func (m *mockRepository[T]) Mutate(ctx context.Context, id string, fn func(*T) error) (T, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(T)
	return out, args.Error(1)
}

func (m *mockRepository[T]) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func seeded[T store.Record[T]](t *testing.T, notFound error, records ...T) *store.MemoryRepository[T] {
	t.Helper()
	repo := store.NewMemoryRepository[T](notFound)
	for _, rec := range records {
		_, err := repo.Create(context.Background(), rec)
		require.NoError(t, err)
	}
	return repo
}

func ptr[T any](v T) *T { return &v }

func fixtureProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Name: "Midnight", Category: "premium", Price: 349.99, DiscountPrice: ptr(299.99), Colors: []string{"black"}, Sizes: []string{"M"}, InStock: true, IsFeatured: true, CreatedAt: fixedNow.AddDate(0, -2, 0)},
		{ID: "p2", Name: "Desert Rose", Category: "casual", Price: 189.99, Colors: []string{"rose"}, Sizes: []string{"S"}, InStock: true, CreatedAt: fixedNow.AddDate(0, -1, 0)},
		{ID: "p3", Name: "Pearl Harbour", Category: "bridal", Price: 599.99, Colors: []string{"white"}, Sizes: []string{"L"}, InStock: false, IsFeatured: true, CreatedAt: fixedNow.AddDate(0, 0, -3)},
	}
}

func fixtureTestimonials() []catalog.Testimonial {
	return []catalog.Testimonial{
		{ID: "t1", Name: "Fatima", Email: "fatima@example.com", Rating: 5, Comment: "Wonderful quality", ProductID: "p1", Verified: true, Date: fixedNow.AddDate(0, 0, -1), Helpful: 3},
		{ID: "t2", Name: "Sarah", Email: "sarah@example.com", Rating: 4, Comment: "Lovely fabric", ProductID: "p2", Verified: false, Date: fixedNow.AddDate(0, 0, -2)},
	}
}
