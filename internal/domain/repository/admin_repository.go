package repository

import (
	"context"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
)

// AccountRepository hisoblar jadvali bilan ishlash uchun interface
type AccountRepository interface {
	// Find username bo'yicha hisobni olish
	Find(ctx context.Context, username string) (*entity.Account, error)
}
