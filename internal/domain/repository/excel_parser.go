package repository

import (
	"context"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
)

// ParseResult Excel dan o'qilgan mahsulotlar va tashlab ketilgan qatorlar soni
type ParseResult struct {
	Products []entity.Product
	Skipped  int
}

// ExcelParser Excel fayllarni parse qilish uchun interface
type ExcelParser interface {
	// ParseProducts Excel fayldan mahsulotlarni o'qish
	ParseProducts(ctx context.Context, filePath string) (ParseResult, error)

	// ParseProductsFromBytes byte array dan parse qilish
	ParseProductsFromBytes(ctx context.Context, data []byte) (ParseResult, error)
}
