package repository

import (
	"context"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
)

// Exporter katalogni tashqi formatga yozish uchun interface
type Exporter interface {
	// Export mahsulotlarni faylga yozish (fayl qayta yoziladi)
	Export(ctx context.Context, products []entity.Product) error

	// Path natija fayl yo'li
	Path() string
}
