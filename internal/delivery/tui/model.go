// Package tui ombor dasturining terminal interfeysi (bubbletea).
// Model bitta goroutine da, bubbletea event loop ichida ishlaydi.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/usecase"
)

const (
	// ViewRowLimit ro'yxat ekranidagi maksimal qatorlar
	ViewRowLimit = 20
)

// Deps interfeys uchun use case lar
type Deps struct {
	Auth     usecase.AuthUseCase
	Catalog  usecase.ProductUseCase
	Reports  usecase.ReportUseCase
	LowStock int
	Logger   *slog.Logger
}

// Model bubbletea modeli
type Model struct {
	// ctx use case chaqiruvlari uchun (Run dan)
	ctx  context.Context
	deps Deps

	screen screen
	cursor int
	form   form

	message string
	isError bool

	found    []entity.Product
	logLines []string

	width    int
	quitting bool
}

// New login ekranidan boshlanadigan model
func New(ctx context.Context, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.LowStock <= 0 {
		deps.LowStock = usecase.DefaultLowStockThreshold
	}
	return Model{
		ctx:    ctx,
		deps:   deps,
		screen: screenLogin,
		form:   loginForm(),
		width:  80,
	}
}

// Run interfeysni ishga tushirish (ctx bekor qilinsa to'xtaydi)
func Run(ctx context.Context, deps Deps, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, deps), opts...)
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenMenu:
			return m.updateMenu(msg)
		case screenView, screenCharts, screenLog:
			return m.updateStatic(msg)
		case screenExport:
			return m.updateExport(msg)
		default:
			return m.updateForm(msg)
		}
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		m.form.move(1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.form.move(-1)
		return m, nil
	case tea.KeyEnter:
		if m.form.focus == 0 {
			m.form.move(1)
			return m, nil
		}
		return m.submitLogin(), nil
	}
	return m, m.form.update(msg)
}

func (m Model) submitLogin() Model {
	session, err := m.deps.Auth.Login(m.ctx, m.form.value(0), m.form.inputs[1].Value())
	if err != nil {
		m.setError(err)
		m.form.inputs[1].SetValue("")
		return m
	}
	m.deps.Logger.DebugContext(m.ctx, "tui login", "user", session.Username)
	m.form = form{}
	m.clearMessage()
	m.screen = screenMenu
	m.cursor = 0
	return m
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(menuItems)) % len(menuItems)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(menuItems)
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		return m.open(menuItems[m.cursor]), nil
	}
	return m, nil
}

// open menyu bandini ochish (rol tekshiruvi shu yerda)
func (m Model) open(item menuItem) Model {
	m.clearMessage()
	if !item.enabled(m.deps.Auth.Current().Role) {
		m.setError(errAccessDenied)
		return m
	}

	m.found = nil
	m.form = form{}
	switch item.target {
	case screenLogout:
		if err := m.deps.Auth.Logout(m.ctx); err != nil {
			m.deps.Logger.WarnContext(m.ctx, "logout failed", "error", err)
		}
		m.screen = screenLogin
		m.form = loginForm()
		return m
	case screenAdd:
		m.form = addForm()
	case screenUpdate:
		m.form = idQuantityForm("New Quantity")
	case screenSale, screenPurchase:
		m.form = idQuantityForm("Quantity")
	case screenDelete:
		m.form = idForm()
	case screenSearch:
		m.form = searchForm()
	case screenLog:
		lines, err := m.deps.Reports.RecentActivity(m.ctx, usecase.RecentActivityLimit)
		if err != nil {
			m.setError(err)
		}
		m.logLines = lines
	}
	m.screen = item.target
	return m
}

func (m Model) updateStatic(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter", "backspace":
		m.back()
	}
	return m, nil
}

func (m Model) updateExport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.back()
	case "c", "enter":
		m.export(usecase.FormatCSV)
	case "x":
		m.export(usecase.FormatXLSX)
	}
	return m, nil
}

func (m *Model) export(format usecase.Format) {
	path, err := m.deps.Reports.Export(m.ctx, format)
	if err != nil {
		m.setError(err)
		return
	}
	m.setInfo("Exported to " + path)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.back()
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.form.move(1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.form.move(-1)
		return m, nil
	case tea.KeyEnter:
		return m.submit(), nil
	}
	return m, m.form.update(msg)
}

// submit joriy ekran formasini bajarish
func (m Model) submit() Model {
	m.clearMessage()

	switch m.screen {
	case screenAdd:
		p, err := parseAddForm(m.form.value(0), m.form.value(1), m.form.value(2), m.form.value(3), m.form.value(4))
		if err == nil {
			_, err = m.deps.Catalog.Add(m.ctx, p.id, p.name, p.quantity, p.price, p.category)
		}
		if err != nil {
			m.setError(err)
			return m
		}
		m.form.reset()
		m.setInfo("Product added!")

	case screenUpdate, screenSale, screenPurchase:
		tx, _ := transactionFor(m.screen, m.deps.Catalog)
		id, qty, err := parseIDQuantity(m.form.value(0), m.form.value(1))
		if err == nil {
			err = tx.validate(id, qty)
		}
		if err == nil {
			_, err = tx.apply(m.ctx, id, qty)
		}
		if err != nil {
			m.setError(err)
			return m
		}
		m.setInfo(tx.success)

	case screenDelete:
		id, _, err := parseIDQuantity(m.form.value(0), "0")
		if err == nil && id <= 0 {
			err = fmt.Errorf("%w: id must be positive", usecase.ErrInvalidInput)
		}
		var removed entity.Product
		if err == nil {
			removed, err = m.deps.Catalog.Delete(m.ctx, id)
		}
		if err != nil {
			m.setError(err)
			return m
		}
		m.form.reset()
		m.setInfo(fmt.Sprintf("Deleted %s (ID: %d)", removed.Name, removed.ID))

	case screenSearch:
		m.found = m.deps.Catalog.Search(m.form.value(0))
		if len(m.found) == 0 {
			m.setError(usecase.ErrProductNotFound)
		}
	}
	return m
}

func (m *Model) back() {
	m.screen = screenMenu
	m.form = form{}
	m.found = nil
	m.logLines = nil
	m.clearMessage()
}

func (m *Model) setError(err error) {
	m.message = errorMessage(err)
	m.isError = true
}

func (m *Model) setInfo(msg string) {
	m.message = msg
	m.isError = false
}

func (m *Model) clearMessage() {
	m.message = ""
	m.isError = false
}
