package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
)

const (
	// ChartProducts grafikda ko'rsatiladigan mahsulotlar soni
	ChartProducts = 8
	// BarMaxHeight eng katta ustun balandligi
	BarMaxHeight = 240
	// RecentActivityLimit jurnal ekranidagi qatorlar soni
	RecentActivityLimit = 20
)

// Format eksport formati
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat matndan formatni aniqlash
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// StockBar grafikdagi bitta ustun
type StockBar struct {
	Product entity.Product
	Height  int
}

// Distribution turlar bo'yicha mahsulotlar soni
type Distribution struct {
	Raw      int
	Finished int
}

// ImportSummary import natijasi
type ImportSummary struct {
	Added   int
	Skipped int
}

// ReportUseCase eksport, import, grafik va jurnal ko'rinishlari
type ReportUseCase interface {
	// Export katalogni tanlangan formatda faylga yozish, fayl yo'lini qaytaradi
	Export(ctx context.Context, format Format) (string, error)

	// Import Excel fayldagi qatorlarni katalogga qo'shish (sig'im tugaguncha)
	Import(ctx context.Context, path string) (ImportSummary, error)

	// ImportData baytlar ko'rinishidagi workbook dan import (source faqat log uchun)
	ImportData(ctx context.Context, source string, data []byte) (ImportSummary, error)

	// StockLevels birinchi limit ta mahsulot va ularning ustun balandligi
	StockLevels(limit, maxHeight int) []StockBar

	// TypeDistribution xom ashyo / tayyor mahsulot soni
	TypeDistribution() Distribution

	// RecentActivity jurnalning oxirgi limit ta qatori
	RecentActivity(ctx context.Context, limit int) ([]string, error)

	// LowStockAlerts miqdori threshold dan kam mahsulotlar
	LowStockAlerts(threshold int) []entity.Product
}

type reportUseCase struct {
	catalog   ProductUseCase
	exporters map[Format]repository.Exporter
	parser    repository.ExcelParser
	activity  *activityLogger
	activityR repository.ActivityRepository
	sessions  SessionProvider
	logger    *slog.Logger
	metrics   MetricsRecorder
}

// NewReportUseCase yangi ReportUseCase yaratish
func NewReportUseCase(
	catalog ProductUseCase,
	activityRepo repository.ActivityRepository,
	sessions SessionProvider,
	exporters map[Format]repository.Exporter,
	parser repository.ExcelParser,
	opts ...Option,
) ReportUseCase {
	o := newOptions(opts)
	return &reportUseCase{
		catalog:   catalog,
		exporters: exporters,
		parser:    parser,
		activity:  newActivityLogger(activityRepo, o),
		activityR: activityRepo,
		sessions:  sessions,
		logger:    o.logger,
		metrics:   o.metrics,
	}
}

// Export katalogni faylga yozib, jurnalga qayd qilish
func (u *reportUseCase) Export(ctx context.Context, format Format) (string, error) {
	exporter, ok := u.exporters[format]
	if !ok {
		u.metrics.Operation("export", outcomeOf(ErrUnknownFormat))
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := exporter.Export(ctx, u.catalog.All()); err != nil {
		u.logger.ErrorContext(ctx, "export failed", "format", string(format), "path", exporter.Path(), "error", err)
		u.metrics.Operation("export", outcomeOf(err))
		return "", err
	}

	u.activity.record(ctx, u.username(), "Exported inventory to "+strings.ToUpper(string(format)))
	u.metrics.Operation("export", outcomeOf(nil))
	return exporter.Path(), nil
}

// Import fayldagi qatorlarni birma-bir Add orqali qo'shish
func (u *reportUseCase) Import(ctx context.Context, path string) (ImportSummary, error) {
	if u.parser == nil {
		return ImportSummary{}, fmt.Errorf("import: no parser configured")
	}

	parsed, err := u.parser.ParseProducts(ctx, path)
	if err != nil {
		u.metrics.Operation("import", outcomeOf(err))
		return ImportSummary{}, fmt.Errorf("import %s: %w", path, err)
	}
	return u.addParsed(ctx, path, parsed)
}

// ImportData xotiradagi workbook (masalan stdin) dan import
func (u *reportUseCase) ImportData(ctx context.Context, source string, data []byte) (ImportSummary, error) {
	if u.parser == nil {
		return ImportSummary{}, fmt.Errorf("import: no parser configured")
	}

	parsed, err := u.parser.ParseProductsFromBytes(ctx, data)
	if err != nil {
		u.metrics.Operation("import", outcomeOf(err))
		return ImportSummary{}, fmt.Errorf("import %s: %w", source, err)
	}
	return u.addParsed(ctx, source, parsed)
}

func (u *reportUseCase) addParsed(ctx context.Context, source string, parsed repository.ParseResult) (ImportSummary, error) {
	summary := ImportSummary{Skipped: parsed.Skipped}
	for i, p := range parsed.Products {
		_, err := u.catalog.Add(ctx, p.ID, p.Name, p.Quantity, p.Price, p.Category)
		var persistErr *PersistError
		switch {
		case err == nil:
			summary.Added++
		case errors.Is(err, ErrCatalogFull):
			summary.Skipped += len(parsed.Products) - i
			u.logger.WarnContext(ctx, "catalog full, import stopped", "source", source, "remaining", len(parsed.Products)-i)
			return summary, u.finishImport(ctx, source, summary, nil)
		case errors.As(err, &persistErr):
			// yozuv xotirada qoldi, lekin keyingilarini qo'shmaymiz
			summary.Added++
			return summary, u.finishImport(ctx, source, summary, err)
		default:
			summary.Skipped++
		}
	}

	return summary, u.finishImport(ctx, source, summary, nil)
}

func (u *reportUseCase) finishImport(ctx context.Context, source string, summary ImportSummary, err error) error {
	u.logger.InfoContext(ctx, "import finished", "source", source, "added", summary.Added, "skipped", summary.Skipped)
	u.metrics.Operation("import", outcomeOf(err))
	if err != nil {
		return fmt.Errorf("import %s: %w", source, err)
	}
	return nil
}

// StockLevels eng katta miqdor maxHeight ga teng bo'ladigan ustunlar
func (u *reportUseCase) StockLevels(limit, maxHeight int) []StockBar {
	products := u.catalog.All()
	if limit >= 0 && len(products) > limit {
		products = products[:limit]
	}

	maxQty := 1
	for _, p := range products {
		maxQty = max(maxQty, p.Quantity)
	}

	bars := make([]StockBar, 0, len(products))
	for _, p := range products {
		// float da hisoblanadi: katta miqdorlarda int ko'paytmasi to'lib ketadi
		h := int(float64(max(p.Quantity, 0)) / float64(maxQty) * float64(maxHeight))
		h = min(max(h, 0), maxHeight)
		bars = append(bars, StockBar{Product: p, Height: h})
	}
	return bars
}

// TypeDistribution xom ashyo / tayyor mahsulot soni
func (u *reportUseCase) TypeDistribution() Distribution {
	var d Distribution
	for _, p := range u.catalog.All() {
		if p.Category == entity.RawMaterial {
			d.Raw++
		} else {
			d.Finished++
		}
	}
	return d
}

// RecentActivity jurnalning oxirgi qatorlari
func (u *reportUseCase) RecentActivity(ctx context.Context, limit int) ([]string, error) {
	lines, err := u.activityR.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("read activity log: %w", err)
	}
	return lines, nil
}

// LowStockAlerts LowStock ketma-ketligini slice ga yig'ish
func (u *reportUseCase) LowStockAlerts(threshold int) []entity.Product {
	return slices.Collect(u.catalog.LowStock(threshold))
}

func (u *reportUseCase) username() string {
	if u.sessions == nil {
		return ""
	}
	return u.sessions.Current().Username
}
