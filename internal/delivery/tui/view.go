package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/usecase"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("25")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Width(14)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("25")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	lowStockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginLeft(2)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	switch m.screen {
	case screenLogin:
		b.WriteString(titleStyle.Render("INVENTORY MANAGEMENT SYSTEM"))
		b.WriteString("\n")
		b.WriteString(m.renderForm())
		b.WriteString(helpStyle.Render("Demo: admin/admin123 or staff/staff123 • enter: login • esc: quit"))
	case screenMenu:
		b.WriteString(m.renderMenu())
	case screenAdd:
		b.WriteString(titleStyle.Render("ADD PRODUCT"))
		b.WriteString("\n")
		b.WriteString(m.renderForm())
		b.WriteString(helpStyle.Render("tab: next field • enter: add • esc: back"))
	case screenView:
		b.WriteString(titleStyle.Render("INVENTORY LIST"))
		b.WriteString("\n")
		b.WriteString(m.renderInventory())
		b.WriteString(helpStyle.Render("esc: back"))
	case screenUpdate, screenSale, screenPurchase:
		tx, _ := transactionFor(m.screen, m.deps.Catalog)
		b.WriteString(titleStyle.Render(tx.title))
		b.WriteString("\n")
		b.WriteString(m.renderForm())
		b.WriteString(helpStyle.Render("tab: next field • enter: process • esc: back"))
	case screenDelete:
		b.WriteString(titleStyle.Render("DELETE PRODUCT"))
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("(Admin Only)"))
		b.WriteString("\n\n")
		b.WriteString(m.renderForm())
		b.WriteString(helpStyle.Render("enter: delete • esc: back"))
	case screenSearch:
		b.WriteString(titleStyle.Render("SEARCH PRODUCT"))
		b.WriteString("\n")
		b.WriteString(m.renderForm())
		b.WriteString(renderFound(m.found))
		b.WriteString(helpStyle.Render("enter: search • esc: back"))
	case screenCharts:
		b.WriteString(titleStyle.Render("DATA VISUALIZATION"))
		b.WriteString("\n")
		b.WriteString(m.renderCharts())
		b.WriteString(helpStyle.Render("esc: back"))
	case screenLog:
		b.WriteString(titleStyle.Render("ACTIVITY LOG"))
		b.WriteString("\n")
		for _, line := range m.logLines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(m.logLines) == 0 {
			b.WriteString("(empty)\n")
		}
		b.WriteString(helpStyle.Render("esc: back"))
	case screenExport:
		b.WriteString(titleStyle.Render("EXPORT"))
		b.WriteString("\n")
		b.WriteString("c / enter: export CSV\nx: export XLSX\n")
		b.WriteString(helpStyle.Render("esc: back"))
	}

	if m.message != "" {
		b.WriteString("\n\n")
		if m.isError {
			b.WriteString(errorStyle.Render(m.message))
		} else {
			b.WriteString(infoStyle.Render(m.message))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, in := range m.form.inputs {
		b.WriteString(labelStyle.Render(m.form.labels[i] + ":"))
		b.WriteString(" ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMenu() string {
	session := m.deps.Auth.Current()

	var menu strings.Builder
	menu.WriteString(titleStyle.Render(fmt.Sprintf("Welcome, %s (%s)", session.Username, session.Role)))
	menu.WriteString("\n")
	for i, item := range menuItems {
		switch {
		case i == m.cursor:
			menu.WriteString(selectedStyle.Render(item.label))
		case !item.enabled(session.Role):
			menu.WriteString(disabledStyle.Render(item.label))
		default:
			menu.WriteString(itemStyle.Render(item.label))
		}
		menu.WriteString("\n")
	}
	menu.WriteString(helpStyle.Render("↑/↓: move • enter: open • q: quit"))

	alerts := m.deps.Reports.LowStockAlerts(m.deps.LowStock)
	var panel strings.Builder
	panel.WriteString(lowStockStyle.Render("LOW STOCK ALERTS:"))
	for _, p := range alerts {
		panel.WriteString("\n")
		panel.WriteString(alertStyle.Render(lowStockAlert(p)))
	}
	if len(alerts) == 0 {
		panel.WriteString("\nnone")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, menu.String(), panelStyle.Render(panel.String()))
}

func (m Model) renderInventory() string {
	products := m.deps.Catalog.All()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-4s %-20s %-6s %-7s %s\n", "ID", "Name", "Qty", "Price", "Type"))
	b.WriteString(strings.Repeat("─", 48))
	b.WriteString("\n")
	for i, p := range products {
		if i >= ViewRowLimit {
			b.WriteString(disabledStyle.Render("...More items hidden..."))
			b.WriteString("\n")
			break
		}
		line := inventoryRow(p)
		if p.Quantity < m.deps.LowStock {
			line = lowStockStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCharts() string {
	width := min(max(m.width-32, 10), usecase.BarMaxHeight)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Stock Levels (First %d)\n", usecase.ChartProducts))
	for _, bar := range m.deps.Reports.StockLevels(usecase.ChartProducts, width) {
		name := []rune(bar.Product.Name)
		if len(name) > 12 {
			name = name[:12]
		}
		b.WriteString(fmt.Sprintf("%-12s %6d ", string(name), bar.Product.Quantity))
		b.WriteString(barStyle.Render(strings.Repeat("█", bar.Height)))
		b.WriteString("\n")
	}

	d := m.deps.Reports.TypeDistribution()
	b.WriteString("\nType Distribution\n")
	b.WriteString(fmt.Sprintf("Raw: %d | Finished: %d\n", d.Raw, d.Finished))
	return b.String()
}

func renderFound(products []entity.Product) string {
	if len(products) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("PRODUCT FOUND"))
	b.WriteString("\n")
	for _, p := range products {
		b.WriteString(fmt.Sprintf("ID: %d | Name: %s\n", p.ID, p.Name))
		b.WriteString(fmt.Sprintf("Qty: %d | Price: $%.2f\n", p.Quantity, p.Price))
	}
	return b.String()
}

// inventoryRow ro'yxat ekranidagi bitta qator
func inventoryRow(p entity.Product) string {
	return fmt.Sprintf("%-4d %-20s %-6d %-7.2f %s", p.ID, p.Name, p.Quantity, p.Price, shortCategory(p.Category))
}

func shortCategory(c entity.Category) string {
	if c == entity.RawMaterial {
		return "Raw"
	}
	return "Fin"
}

// lowStockAlert menyu panelidagi ogohlantirish qatori
func lowStockAlert(p entity.Product) string {
	return fmt.Sprintf("- %s (%d left)", p.Name, p.Quantity)
}
