package repository

import (
	"context"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
)

// ActivityRepository harakatlar jurnali uchun interface
type ActivityRepository interface {
	// Append jurnalga bitta qator qo'shish
	Append(ctx context.Context, entry entity.ActivityEntry) error

	// Recent oxirgi limit ta qatorni olish (fayldagi tartibda)
	Recent(ctx context.Context, limit int) ([]string, error)
}
