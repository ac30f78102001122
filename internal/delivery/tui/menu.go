package tui

import (
	"errors"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/usecase"
)

// screen joriy ekran
type screen int

const (
	screenLogin screen = iota
	screenMenu
	screenAdd
	screenView
	screenUpdate
	screenSale
	screenPurchase
	screenDelete
	screenSearch
	screenCharts
	screenLog
	screenExport
	screenLogout
)

// menuItem asosiy menyu bandi
type menuItem struct {
	label     string
	target    screen
	adminOnly bool
}

var menuItems = []menuItem{
	{label: "Add Product", target: screenAdd, adminOnly: true},
	{label: "View Inventory", target: screenView},
	{label: "Update Stock", target: screenUpdate},
	{label: "Process Sale", target: screenSale},
	{label: "Process Purchase", target: screenPurchase},
	{label: "Delete Product", target: screenDelete, adminOnly: true},
	{label: "Search Product", target: screenSearch},
	{label: "View Charts", target: screenCharts},
	{label: "Activity Log", target: screenLog},
	{label: "Export", target: screenExport},
	{label: "Logout", target: screenLogout},
}

// enabled band shu rol uchun ochiqmi
func (it menuItem) enabled(role entity.Role) bool {
	return !it.adminOnly || role.CanManageCatalog()
}

var errAccessDenied = errors.New("access denied")

// errorMessage xatoni foydalanuvchi xabariga aylantirish
func errorMessage(err error) string {
	var persistErr *usecase.PersistError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return "Invalid credentials!"
	case errors.Is(err, usecase.ErrInvalidInput):
		return "Invalid Input!"
	case errors.Is(err, usecase.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, usecase.ErrInsufficientStock):
		return "Insufficient stock"
	case errors.Is(err, usecase.ErrCatalogFull):
		return "Inventory is full"
	case errors.Is(err, usecase.ErrUnknownFormat):
		return "Unknown export format"
	case errors.Is(err, errAccessDenied):
		return "Admin only"
	case errors.As(err, &persistErr):
		return "Change applied, but saving the inventory file failed"
	default:
		return "Error: " + err.Error()
	}
}
