package storage

import (
	"context"
	"sync"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
)

// MemoryActivityRepository xotiradagi harakatlar jurnali
type MemoryActivityRepository struct {
	mu       sync.RWMutex
	entries  []entity.ActivityEntry
	failWith error
}

// NewMemoryActivityRepository in-memory activity repository yaratish
func NewMemoryActivityRepository() *MemoryActivityRepository {
	return &MemoryActivityRepository{
		entries: []entity.ActivityEntry{},
	}
}

// Append yozuvni saqlash
func (m *MemoryActivityRepository) Append(ctx context.Context, entry entity.ActivityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	m.entries = append(m.entries, entry)
	return nil
}

// Recent oxirgi limit ta yozuvni qator ko'rinishida olish
func (m *MemoryActivityRepository) Recent(ctx context.Context, limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.entries
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return lines, nil
}

// Entries barcha yozuvlar nusxasi
func (m *MemoryActivityRepository) Entries() []entity.ActivityEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.ActivityEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Actions faqat harakat matnlari (testlar uchun qulay)
func (m *MemoryActivityRepository) Actions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

// FailWith keyingi Append chaqiruvlari shu xatoni qaytaradi
func (m *MemoryActivityRepository) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failWith = err
}
