package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
	"github.com/yourusername/inventory-tracker/internal/infrastructure/storage"
	"github.com/yourusername/inventory-tracker/internal/usecase"
)

type stubExporter struct {
	path string
}

func (s stubExporter) Export(ctx context.Context, products []entity.Product) error {
	return nil
}

func (s stubExporter) Path() string {
	return s.path
}

type harness struct {
	model    Model
	catalog  usecase.ProductUseCase
	activity *storage.MemoryActivityRepository
}

func newHarness(t *testing.T, initial ...entity.Product) *harness {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	activity := storage.NewMemoryActivityRepository()

	auth := usecase.NewAuthUseCase(storage.NewMemoryAccountRepository(storage.DefaultAccounts()...), activity,
		usecase.WithLogger(logger))
	catalog, err := usecase.NewProductUseCase(ctx, storage.NewMemoryProductRepository(initial...), activity, auth,
		usecase.WithLogger(logger))
	require.NoError(t, err)
	reports := usecase.NewReportUseCase(catalog, activity, auth,
		map[usecase.Format]repository.Exporter{
			usecase.FormatCSV:  stubExporter{path: "inventory_export.csv"},
			usecase.FormatXLSX: stubExporter{path: "inventory_export.xlsx"},
		}, nil, usecase.WithLogger(logger))

	return &harness{
		model: New(ctx, Deps{
			Auth:    auth,
			Catalog: catalog,
			Reports: reports,
			Logger:  logger,
		}),
		catalog:  catalog,
		activity: activity,
	}
}

func (h *harness) send(msg tea.Msg) {
	next, _ := h.model.Update(msg)
	h.model = next.(Model)
}

func (h *harness) key(t tea.KeyType) {
	h.send(tea.KeyMsg{Type: t})
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) login(username, password string) {
	h.typeText(username)
	h.key(tea.KeyEnter)
	h.typeText(password)
	h.key(tea.KeyEnter)
}

// openItem menyudagi bandga kursorni olib borib ochish
func (h *harness) openItem(label string) {
	for i, it := range menuItems {
		if it.label == label {
			h.model.cursor = i
		}
	}
	h.key(tea.KeyEnter)
}

func (h *harness) fill(values ...string) {
	for i, v := range values {
		h.typeText(v)
		if i < len(values)-1 {
			h.key(tea.KeyTab)
		}
	}
	h.key(tea.KeyEnter)
}

func steel() entity.Product {
	return entity.Product{ID: 1, Name: "Steel", Quantity: 50, Price: 12.5, Category: entity.RawMaterial}
}

func Test_Model_Login(t *testing.T) {
	testCases := []struct {
		name           string
		username       string
		password       string
		expectedScreen screen
		expectedMsg    string
	}{
		{name: "admin", username: "admin", password: "admin123", expectedScreen: screenMenu},
		{name: "staff", username: "staff", password: "staff123", expectedScreen: screenMenu},
		{name: "wrong password", username: "admin", password: "nope", expectedScreen: screenLogin, expectedMsg: "Invalid credentials!"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newHarness(t)
			// when
			h.login(tc.username, tc.password)
			// then
			assert.Equal(t, tc.expectedScreen, h.model.screen)
			assert.Equal(t, tc.expectedMsg, h.model.message)
		})
	}
}

func Test_Model_StaffCannotAddOrDelete(t *testing.T) {
	// given
	h := newHarness(t, steel())
	h.login("staff", "staff123")
	// when
	h.openItem("Add Product")
	// then
	assert.Equal(t, screenMenu, h.model.screen)
	assert.Equal(t, "Admin only", h.model.message)

	h.openItem("Delete Product")
	assert.Equal(t, screenMenu, h.model.screen)
	assert.Equal(t, 1, h.catalog.Len())
}

func Test_Model_AddProduct(t *testing.T) {
	// given
	h := newHarness(t)
	h.login("admin", "admin123")
	h.openItem("Add Product")
	require.Equal(t, screenAdd, h.model.screen)
	// when
	h.fill("7", "Copper Wire", "12", "4.75", "finished")
	// then
	assert.Equal(t, "Product added!", h.model.message)
	p, err := h.catalog.FindByID(7)
	require.NoError(t, err)
	assert.Equal(t, entity.Product{ID: 7, Name: "Copper Wire", Quantity: 12, Price: 4.75, Category: entity.FinishedGood}, p)
	assert.Equal(t, "", h.model.form.value(0), "form is cleared after success")
}

func Test_Model_AddProduct_InvalidInput(t *testing.T) {
	h := newHarness(t)
	h.login("admin", "admin123")
	h.openItem("Add Product")

	h.fill("0", "Nothing")

	assert.Equal(t, "Invalid Input!", h.model.message)
	assert.True(t, h.model.isError)
	assert.Zero(t, h.catalog.Len())
}

func Test_Model_Transactions(t *testing.T) {
	testCases := []struct {
		item        string
		values      []string
		expectedQty int
		expectedMsg string
	}{
		{item: "Process Sale", values: []string{"1", "20"}, expectedQty: 30, expectedMsg: "Transaction Success!"},
		{item: "Process Sale", values: []string{"1", "80"}, expectedQty: 50, expectedMsg: "Insufficient stock"},
		{item: "Process Sale", values: []string{"1", "0"}, expectedQty: 50, expectedMsg: "Invalid Input!"},
		{item: "Process Sale", values: []string{"9", "1"}, expectedQty: 50, expectedMsg: "Product not found"},
		{item: "Process Purchase", values: []string{"1", "5"}, expectedQty: 55, expectedMsg: "Transaction Success!"},
		{item: "Update Stock", values: []string{"1", "0"}, expectedQty: 0, expectedMsg: "Stock updated!"},
		{item: "Update Stock", values: []string{"1", "-4"}, expectedQty: -4, expectedMsg: "Stock updated!"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s %v", tc.item, tc.values), func(t *testing.T) {
			// given
			h := newHarness(t, steel())
			h.login("staff", "staff123")
			h.openItem(tc.item)
			// when
			h.fill(tc.values...)
			// then
			assert.Equal(t, tc.expectedMsg, h.model.message)
			p, err := h.catalog.FindByID(1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedQty, p.Quantity)
		})
	}
}

func Test_Model_DeleteAndSearch(t *testing.T) {
	// given
	widget := entity.Product{ID: 2, Name: "Widget", Quantity: 3, Category: entity.FinishedGood}
	h := newHarness(t, steel(), widget)
	h.login("admin", "admin123")
	// when
	h.openItem("Search Product")
	h.fill("widg")
	// then
	require.Len(t, h.model.found, 1)
	assert.Contains(t, h.model.View(), "PRODUCT FOUND")

	h.key(tea.KeyEsc)
	h.openItem("Delete Product")
	h.fill("2")
	assert.Equal(t, "Deleted Widget (ID: 2)", h.model.message)
	assert.Equal(t, 1, h.catalog.Len())

	h.key(tea.KeyEsc)
	h.openItem("Search Product")
	h.fill("widg")
	assert.Equal(t, "Product not found", h.model.message)
}

func Test_Model_LogoutReturnsToLogin(t *testing.T) {
	h := newHarness(t)
	h.login("admin", "admin123")

	h.openItem("Logout")

	assert.Equal(t, screenLogin, h.model.screen)
	assert.Equal(t, []string{"Logged in", "Logged out"}, h.activity.Actions())
	assert.Contains(t, h.model.View(), "INVENTORY MANAGEMENT SYSTEM")
}

func Test_Model_Views(t *testing.T) {
	// given
	products := []entity.Product{steel()}
	for i := 2; i <= 25; i++ {
		products = append(products, entity.Product{ID: i, Name: fmt.Sprintf("Part %d", i), Quantity: 100, Category: entity.FinishedGood})
	}
	h := newHarness(t, products...)
	h.login("admin", "admin123")
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})

	// menu + ogohlantirishlar paneli
	menu := h.model.View()
	assert.Contains(t, menu, "Welcome, admin (Admin)")
	assert.Contains(t, menu, "none")

	// inventory
	h.openItem("View Inventory")
	view := h.model.View()
	assert.Contains(t, view, "INVENTORY LIST")
	assert.Contains(t, view, "...More items hidden...")
	assert.NotContains(t, view, "Part 21")
	h.key(tea.KeyEsc)

	// charts
	h.openItem("View Charts")
	charts := h.model.View()
	assert.Contains(t, charts, "Raw: 1 | Finished: 24")
	assert.Contains(t, charts, "Stock Levels (First 8)")
	h.key(tea.KeyEsc)

	// export
	h.openItem("Export")
	h.typeText("x")
	assert.Equal(t, "Exported to inventory_export.xlsx", h.model.message)
	h.key(tea.KeyEsc)

	// log
	h.openItem("Activity Log")
	assert.Contains(t, h.model.View(), "Action: Exported inventory to XLSX")
}

func Test_Model_LowStockPanel(t *testing.T) {
	h := newHarness(t, entity.Product{ID: 3, Name: "Bolts", Quantity: 4})
	h.login("staff", "staff123")

	assert.Contains(t, h.model.View(), "- Bolts (4 left)")
}

func Test_Model_CtrlCQuits(t *testing.T) {
	h := newHarness(t)

	next, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View())
}

func Test_ErrorMessage(t *testing.T) {
	testCases := []struct {
		err      error
		expected string
	}{
		{err: nil, expected: ""},
		{err: usecase.ErrInvalidCredentials, expected: "Invalid credentials!"},
		{err: fmt.Errorf("x: %w", usecase.ErrInvalidInput), expected: "Invalid Input!"},
		{err: fmt.Errorf("%w: 4", usecase.ErrProductNotFound), expected: "Product not found"},
		{err: usecase.ErrInsufficientStock, expected: "Insufficient stock"},
		{err: usecase.ErrCatalogFull, expected: "Inventory is full"},
		{err: errAccessDenied, expected: "Admin only"},
		{err: &usecase.PersistError{Op: "sale", Err: errors.New("disk")}, expected: "Change applied, but saving the inventory file failed"},
		{err: errors.New("boom"), expected: "Error: boom"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, errorMessage(tc.err))
		})
	}
}

func Test_ParseAddForm(t *testing.T) {
	testCases := []struct {
		name      string
		fields    [5]string
		expected  newProduct
		expectErr bool
	}{
		{
			name:     "all fields",
			fields:   [5]string{"3", "Gear", "9", "2.5", "raw"},
			expected: newProduct{id: 3, name: "Gear", quantity: 9, price: 2.5, category: entity.RawMaterial},
		},
		{
			name:     "optional fields empty",
			fields:   [5]string{"4", "Nut", "", "", ""},
			expected: newProduct{id: 4, name: "Nut"},
		},
		{name: "non numeric id", fields: [5]string{"x", "Gear"}, expectErr: true},
		{name: "negative id", fields: [5]string{"-1", "Gear"}, expectErr: true},
		{name: "empty name", fields: [5]string{"3", ""}, expectErr: true},
		{name: "bad price", fields: [5]string{"3", "Gear", "1", "cheap"}, expectErr: true},
		{name: "bad type", fields: [5]string{"3", "Gear", "1", "1", "gadget"}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := parseAddForm(tc.fields[0], tc.fields[1], tc.fields[2], tc.fields[3], tc.fields[4])
			if tc.expectErr {
				assert.ErrorIs(t, err, usecase.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func Test_MenuItems(t *testing.T) {
	var labels []string
	for _, it := range menuItems {
		labels = append(labels, it.label)
		if it.adminOnly {
			assert.False(t, it.enabled(entity.RoleStaff), it.label)
		}
		assert.True(t, it.enabled(entity.RoleAdmin), it.label)
	}
	assert.Len(t, menuItems, 11)
	assert.True(t, strings.HasPrefix(strings.Join(labels, "|"), "Add Product|View Inventory"))
}
