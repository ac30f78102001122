package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
)

// MemoryProductRepository xotirada saqlanadigan product repository.
// Testlar va "memory" backend uchun.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []entity.Product
	saves    int
	failWith error
}

// NewMemoryProductRepository in-memory product repository yaratish
func NewMemoryProductRepository(initial ...entity.Product) *MemoryProductRepository {
	return &MemoryProductRepository{
		products: slices.Clone(initial),
	}
}

// Load oxirgi saqlangan katalog nusxasini olish
func (m *MemoryProductRepository) Load(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

// SaveAll katalogni almashtirish
func (m *MemoryProductRepository) SaveAll(ctx context.Context, products []entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	m.products = slices.Clone(products)
	m.saves++
	return nil
}

// Saves muvaffaqiyatli SaveAll chaqiruvlari soni
func (m *MemoryProductRepository) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.saves
}

// FailWith keyingi SaveAll chaqiruvlari shu xatoni qaytaradi (nil - tiklash)
func (m *MemoryProductRepository) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failWith = err
}
