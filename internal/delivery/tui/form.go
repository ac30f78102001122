package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/usecase"
)

// form bir nechta textinput maydonlari
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

type field struct {
	label    string
	limit    int
	password bool
	hint     string
}

func newForm(fields ...field) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}
	for i, fd := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = fd.limit
		ti.Placeholder = fd.hint
		ti.Width = 30
		if fd.password {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		f.labels[i] = fd.label
		f.inputs[i] = ti
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *form) move(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
}

func loginForm() form {
	return newForm(
		field{label: "Username", limit: 49},
		field{label: "Password", limit: 49, password: true},
	)
}

func addForm() form {
	return newForm(
		field{label: "Product ID", limit: 10},
		field{label: "Name", limit: entity.MaxNameLength},
		field{label: "Quantity", limit: 10},
		field{label: "Price", limit: 12},
		field{label: "Type", limit: 14, hint: "raw | finished"},
	)
}

func idQuantityForm(qtyLabel string) form {
	return newForm(
		field{label: "Product ID", limit: 10},
		field{label: qtyLabel, limit: 10},
	)
}

func idForm() form {
	return newForm(field{label: "Product ID", limit: 10})
}

func searchForm() form {
	return newForm(field{label: "ID or name", limit: entity.MaxNameLength})
}

// newProduct Add ekranidagi qiymatlar
type newProduct struct {
	id       int
	name     string
	quantity int
	price    float64
	category entity.Category
}

// parseAddForm Add ekrani qiymatlarini o'qish: id > 0, nom bo'sh emas
func parseAddForm(id, name, quantity, price, category string) (newProduct, error) {
	var p newProduct
	var err error

	if p.id, err = strconv.Atoi(id); err != nil {
		return p, fmt.Errorf("%w: id %q", usecase.ErrInvalidInput, id)
	}
	p.name = name
	if err := usecase.ValidateNewProduct(p.id, p.name); err != nil {
		return p, err
	}
	if quantity != "" {
		if p.quantity, err = strconv.Atoi(quantity); err != nil {
			return p, fmt.Errorf("%w: quantity %q", usecase.ErrInvalidInput, quantity)
		}
	}
	if price != "" {
		if p.price, err = strconv.ParseFloat(price, 64); err != nil {
			return p, fmt.Errorf("%w: price %q", usecase.ErrInvalidInput, price)
		}
	}
	if category != "" {
		if p.category, err = entity.ParseCategory(category); err != nil {
			return p, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
	}
	return p, nil
}

// parseIDQuantity id va miqdor maydonlari
func parseIDQuantity(id, quantity string) (int, int, error) {
	i, err := strconv.Atoi(id)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: id %q", usecase.ErrInvalidInput, id)
	}
	q, err := strconv.Atoi(quantity)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: quantity %q", usecase.ErrInvalidInput, quantity)
	}
	return i, q, nil
}

// transaction miqdor o'zgartiruvchi ekranlar uchun umumiy strategiya
type transaction struct {
	title    string
	qtyLabel string
	success  string
	validate func(id, quantity int) error
	apply    func(ctx context.Context, id, quantity int) (entity.Product, error)
}

func transactionFor(s screen, catalog usecase.ProductUseCase) (transaction, bool) {
	switch s {
	case screenUpdate:
		return transaction{
			title:    "UPDATE STOCK",
			qtyLabel: "New Quantity",
			success:  "Stock updated!",
			validate: validateStockUpdate,
			apply:    catalog.SetQuantity,
		}, true
	case screenSale:
		return transaction{
			title:    "PROCESS SALE",
			qtyLabel: "Quantity",
			success:  "Transaction Success!",
			validate: usecase.ValidateTransaction,
			apply:    catalog.ApplySale,
		}, true
	case screenPurchase:
		return transaction{
			title:    "PROCESS PURCHASE",
			qtyLabel: "Quantity",
			success:  "Transaction Success!",
			validate: usecase.ValidateTransaction,
			apply:    catalog.ApplyPurchase,
		}, true
	default:
		return transaction{}, false
	}
}

// validateStockUpdate yangi miqdor istalgan butun son bo'lishi mumkin
func validateStockUpdate(id, _ int) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", usecase.ErrInvalidInput)
	}
	return nil
}
