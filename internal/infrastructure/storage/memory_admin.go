package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
)

type memoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]entity.Account
}

// DefaultAccounts dasturga kiritilgan hisoblar jadvali
func DefaultAccounts() []entity.Account {
	return []entity.Account{
		{Username: "admin", Password: "admin123", Role: entity.RoleAdmin},
		{Username: "staff", Password: "staff123", Role: entity.RoleStaff},
	}
}

// NewMemoryAccountRepository statik hisoblar jadvali yaratish
func NewMemoryAccountRepository(accounts ...entity.Account) repository.AccountRepository {
	m := &memoryAccountRepository{
		accounts: make(map[string]entity.Account, len(accounts)),
	}
	for _, a := range accounts {
		// birinchi yozuv ustun
		if _, exists := m.accounts[a.Username]; !exists {
			m.accounts[a.Username] = a
		}
	}
	return m
}

// Find username bo'yicha hisobni olish
func (m *memoryAccountRepository) Find(ctx context.Context, username string) (*entity.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, exists := m.accounts[username]
	if !exists {
		return nil, fmt.Errorf("account not found: %s", username)
	}
	return &account, nil
}
