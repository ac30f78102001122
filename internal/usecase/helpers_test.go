package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/infrastructure/storage"
)

var fixedTime = time.Date(2024, time.January, 15, 14, 30, 0, 0, time.Local)

type staticSession struct {
	session entity.Session
}

func (s staticSession) Current() entity.Session {
	return s.session
}

func adminSession() staticSession {
	return staticSession{session: entity.Session{ID: "s-1", Username: "admin", Role: entity.RoleAdmin}}
}

type fakeMetrics struct {
	ops           []string
	appendFailed  int
	productsGauge int
}

func (f *fakeMetrics) Operation(op, outcome string) {
	f.ops = append(f.ops, op+":"+outcome)
}

func (f *fakeMetrics) ActivityAppendFailed() {
	f.appendFailed++
}

func (f *fakeMetrics) SetProducts(n int) {
	f.productsGauge = n
}

type catalogFixture struct {
	catalog  ProductUseCase
	repo     *storage.MemoryProductRepository
	activity *storage.MemoryActivityRepository
	metrics  *fakeMetrics
}

func newCatalogFixture(t *testing.T, capacity int, initial ...entity.Product) catalogFixture {
	t.Helper()
	f := catalogFixture{
		repo:     storage.NewMemoryProductRepository(initial...),
		activity: storage.NewMemoryActivityRepository(),
		metrics:  &fakeMetrics{},
	}
	catalog, err := NewProductUseCase(context.Background(), f.repo, f.activity, adminSession(),
		WithCapacity(capacity),
		WithLogger(discardLogger()),
		WithMetrics(f.metrics),
		WithClock(func() time.Time { return fixedTime }),
	)
	require.NoError(t, err)
	f.catalog = catalog
	return f
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func steel() entity.Product {
	return entity.Product{ID: 1, Name: "Steel", Quantity: 50, Price: 12.5, Category: entity.RawMaterial}
}

func widget() entity.Product {
	return entity.Product{ID: 2, Name: "Widget", Quantity: 5, Price: 3, Category: entity.FinishedGood}
}
