package parser

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
)

const (
	colID       = "id"
	colName     = "name"
	colQuantity = "quantity"
	colPrice    = "price"
	colType     = "type"
)

// defaultColumns header bo'lmasa ustunlar tartibi (eksport bilan bir xil)
var defaultColumns = map[string]int{
	colID:       0,
	colName:     1,
	colQuantity: 2,
	colPrice:    3,
	colType:     4,
}

type excelParser struct {
	logger *slog.Logger
}

// NewExcelParser yangi Excel parser yaratish
func NewExcelParser(logger *slog.Logger) repository.ExcelParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &excelParser{logger: logger}
}

// ParseProducts Excel fayldan mahsulotlarni o'qish
func (e *excelParser) ParseProducts(ctx context.Context, filePath string) (repository.ParseResult, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return repository.ParseResult{}, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(ctx, f)
}

// ParseProductsFromBytes byte array dan parse qilish
func (e *excelParser) ParseProductsFromBytes(ctx context.Context, data []byte) (repository.ParseResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return repository.ParseResult{}, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(ctx, f)
}

// parseExcelFile birinchi sheet ni parse qilish
func (e *excelParser) parseExcelFile(ctx context.Context, f *excelize.File) (repository.ParseResult, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return repository.ParseResult{}, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return repository.ParseResult{}, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return repository.ParseResult{}, fmt.Errorf("excel file is empty")
	}

	// Birinchi katak butun son bo'lsa header yo'q
	startRow := 1
	columnMap := defaultColumns
	if len(rows[0]) > 0 {
		if _, err := parseInt(rows[0][0]); err == nil {
			startRow = 0
		}
	}
	if startRow == 1 {
		columnMap = mapColumns(rows[0])
		if _, ok := columnMap[colID]; !ok {
			return repository.ParseResult{}, fmt.Errorf("excel header has no id column: %v", rows[0])
		}
		if _, ok := columnMap[colName]; !ok {
			return repository.ParseResult{}, fmt.Errorf("excel header has no name column: %v", rows[0])
		}
	}
	e.logger.DebugContext(ctx, "excel column mapping", "sheet", sheets[0], "header", startRow == 1, "columns", columnMap)

	var result repository.ParseResult
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		product, err := parseRow(row, columnMap)
		if err != nil {
			result.Skipped++
			e.logger.DebugContext(ctx, "excel row skipped", "row", i+1, "error", err)
			continue
		}
		result.Products = append(result.Products, product)
	}

	return result, nil
}

// parseRow bitta qatordan mahsulot yasash
func parseRow(row []string, columnMap map[string]int) (entity.Product, error) {
	cell := func(key string) string {
		idx, ok := columnMap[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	id, err := parseInt(cell(colID))
	if err != nil || id <= 0 {
		return entity.Product{}, fmt.Errorf("invalid id %q", cell(colID))
	}

	name := cell(colName)
	if name == "" {
		return entity.Product{}, fmt.Errorf("empty name")
	}

	var quantity int
	if s := cell(colQuantity); s != "" {
		if quantity, err = parseInt(s); err != nil {
			return entity.Product{}, fmt.Errorf("invalid quantity %q", s)
		}
	}

	var price float64
	if s := cell(colPrice); s != "" {
		if price, err = parsePrice(s); err != nil {
			return entity.Product{}, err
		}
	}

	category := entity.RawMaterial
	if s := cell(colType); s != "" {
		if category, err = entity.ParseCategory(s); err != nil {
			return entity.Product{}, err
		}
	}

	return entity.Product{
		ID:       id,
		Name:     name,
		Quantity: quantity,
		Price:    price,
		Category: category,
	}, nil
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// mapColumns header qatoridan column mapping yaratish.
// Tekshirish tartibi muhim: "product id" id ga tushishi kerak.
func mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)
	set := func(key string, i int) {
		if _, ok := columnMap[key]; !ok {
			columnMap[key] = i
		}
	}

	for i, col := range header {
		label := strings.ToLower(strings.TrimSpace(col))

		switch {
		case label == "":
			continue
		case label == "id" || label == "#" || contains(label, " id", "id ", "kod", "code", "sku"):
			set(colID, i)
		case contains(label, "quantity", "qty", "stock", "miqdor", "soni", "количество"):
			set(colQuantity, i)
		case contains(label, "price", "narx", "cost", "summa", "цена"):
			set(colPrice, i)
		case contains(label, "type", "category", "kategoriya", "tur", "тип"):
			set(colType, i)
		case contains(label, "name", "nom", "product", "mahsulot", "tovar", "название"):
			set(colName, i)
		}
	}

	return columnMap
}

// contains tekshirish uchun helper
func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}

// parseInt butun son ("50" yoki "50.0" ko'rinishida)
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

// parsePrice narxni parse qilish
func parsePrice(priceStr string) (float64, error) {
	priceStr = strings.ToLower(strings.TrimSpace(priceStr))
	if priceStr == "" {
		return 0, fmt.Errorf("empty price")
	}

	cleaned := strings.NewReplacer(
		",", "",
		" ", "",
		"$", "",
		"€", "",
		"£", "",
		"usd", "",
		"eur", "",
	).Replace(priceStr)

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price format: %s", priceStr)
	}
	return price, nil
}
