package repository

import (
	"context"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
)

// ProductRepository katalogni saqlash uchun interface.
// Har bir o'zgarishdan keyin butun katalog qayta yoziladi.
type ProductRepository interface {
	// Load saqlangan barcha mahsulotlarni tartib bilan o'qish
	Load(ctx context.Context) ([]entity.Product, error)

	// SaveAll butun katalogni qayta yozish
	SaveAll(ctx context.Context, products []entity.Product) error
}
