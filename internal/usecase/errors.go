package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogFull        = errors.New("catalog is full")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrUnknownFormat      = errors.New("unknown export format")
)

// PersistError xotiradagi o'zgarish qo'llangan, lekin saqlash muvaffaqiyatsiz.
// Orqaga qaytarish yo'q: xotira va fayl farq qilishi mumkin.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: persist catalog: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// outcomeOf metrika yorlig'i uchun natija nomi
func outcomeOf(err error) string {
	var persistErr *PersistError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrProductNotFound):
		return "not_found"
	case errors.Is(err, ErrCatalogFull):
		return "capacity_exceeded"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.As(err, &persistErr):
		return "persist_failed"
	default:
		return "error"
	}
}

// ValidateNewProduct ekran darajasidagi tekshiruv: id musbat, nom bo'sh emas
func ValidateNewProduct(id int, name string) error {
	if id <= 0 || name == "" {
		return fmt.Errorf("%w: id must be positive and name must not be empty", ErrInvalidInput)
	}
	return nil
}

// ValidateTransaction sotuv/xarid kiritmasini tekshirish
func ValidateTransaction(id, quantity int) error {
	if id <= 0 || quantity <= 0 {
		return fmt.Errorf("%w: id and quantity must be positive", ErrInvalidInput)
	}
	return nil
}
