package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
	"github.com/yourusername/inventory-tracker/internal/infrastructure/storage"
)

// Header eksport fayllari sarlavhasi
var Header = []string{"ID", "Name", "Quantity", "Price", "Type"}

type csvExporter struct {
	path string
}

// NewCSVExporter CSV eksport (fayl har safar qayta yoziladi)
func NewCSVExporter(path string) repository.Exporter {
	return &csvExporter{path: path}
}

// Export mahsulotlarni CSV ga yozish
func (e *csvExporter) Export(ctx context.Context, products []entity.Product) error {
	err := storage.WriteFileAtomic(e.path, func(w io.Writer) error {
		return WriteCSV(w, products)
	})
	if err != nil {
		return fmt.Errorf("export csv %s: %w", e.path, err)
	}
	return nil
}

// Path natija fayl yo'li
func (e *csvExporter) Path() string {
	return e.path
}

// WriteCSV sarlavha va har bir mahsulot uchun bitta qator
func WriteCSV(w io.Writer, products []entity.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range products {
		if err := cw.Write(Record(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Record mahsulotni eksport ustunlariga aylantirish
func Record(p entity.Product) []string {
	return []string{
		strconv.Itoa(p.ID),
		p.Name,
		strconv.Itoa(p.Quantity),
		strconv.FormatFloat(p.Price, 'f', 2, 64),
		p.Category.String(),
	}
}
