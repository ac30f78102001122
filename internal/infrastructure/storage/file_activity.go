package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
)

const maxActivityLine = 1 << 20

type fileActivityRepository struct {
	path string
}

// NewFileActivityRepository faylga yoziladigan harakatlar jurnali.
// Fayl faqat oxiriga qo'shiladi, hech qachon qisqartirilmaydi.
func NewFileActivityRepository(path string) repository.ActivityRepository {
	return &fileActivityRepository{path: path}
}

// Append jurnal oxiriga bitta qator qo'shish
func (r *fileActivityRepository) Append(ctx context.Context, entry entity.ActivityEntry) error {
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}

	if _, err := fmt.Fprintln(f, entry.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("append activity log: %w", err)
	}
	return f.Close()
}

// Recent oxirgi limit ta qatorni olish (limit <= 0 - hammasi)
func (r *fileActivityRepository) Recent(ctx context.Context, limit int) ([]string, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	lines := []string{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), maxActivityLine)
	for sc.Scan() {
		lines = append(lines, sc.Text())
		if limit > 0 && len(lines) > limit {
			lines = lines[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read activity log: %w", err)
	}
	return lines, nil
}
