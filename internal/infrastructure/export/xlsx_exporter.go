package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
	"github.com/yourusername/inventory-tracker/internal/infrastructure/storage"
)

// SheetName XLSX eksportdagi sheet nomi
const SheetName = "Inventory"

type xlsxExporter struct {
	path string
}

// NewXLSXExporter Excel eksport
func NewXLSXExporter(path string) repository.Exporter {
	return &xlsxExporter{path: path}
}

// Export mahsulotlarni "Inventory" sheet ga yozish
func (e *xlsxExporter) Export(ctx context.Context, products []entity.Product) error {
	f, err := buildWorkbook(products)
	if err != nil {
		return fmt.Errorf("export xlsx %s: %w", e.path, err)
	}
	defer f.Close()

	err = storage.WriteFileAtomic(e.path, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("export xlsx %s: %w", e.path, err)
	}
	return nil
}

// Path natija fayl yo'li
func (e *xlsxExporter) Path() string {
	return e.path
}

func buildWorkbook(products []entity.Product) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, err
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, p := range products {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{p.ID, p.Name, p.Quantity, p.Price, p.Category.String()}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return f, nil
}
