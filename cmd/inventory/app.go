package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/yourusername/inventory-tracker/config"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
	"github.com/yourusername/inventory-tracker/internal/infrastructure/export"
	"github.com/yourusername/inventory-tracker/internal/infrastructure/metrics"
	"github.com/yourusername/inventory-tracker/internal/infrastructure/parser"
	"github.com/yourusername/inventory-tracker/internal/infrastructure/storage"
	"github.com/yourusername/inventory-tracker/internal/usecase"
)

// app bitta buyruq davomidagi barcha bog'liqliklar
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Recorder

	auth    usecase.AuthUseCase
	catalog usecase.ProductUseCase
	reports usecase.ReportUseCase

	closers []io.Closer
}

// newApp konfiguratsiya bo'yicha repository va use case larni yig'ish
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, metrics: metrics.New()}

	logOut, err := config.OpenLogOutput(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, logOut)
	a.logger = config.NewLogger(cfg.Log.Level, logOut)

	productRepo, activityRepo, err := a.openStorage()
	if err != nil {
		_ = a.close()
		return nil, err
	}

	opts := []usecase.Option{
		usecase.WithCapacity(cfg.Catalog.Capacity),
		usecase.WithLogger(a.logger),
		usecase.WithMetrics(a.metrics),
	}

	a.auth = usecase.NewAuthUseCase(
		storage.NewMemoryAccountRepository(storage.DefaultAccounts()...),
		activityRepo,
		opts...,
	)

	a.catalog, err = usecase.NewProductUseCase(ctx, productRepo, activityRepo, a.auth, opts...)
	if err != nil {
		_ = a.close()
		return nil, err
	}

	a.reports = usecase.NewReportUseCase(
		a.catalog,
		activityRepo,
		a.auth,
		map[usecase.Format]repository.Exporter{
			usecase.FormatCSV:  export.NewCSVExporter(cfg.Export.CSVPath),
			usecase.FormatXLSX: export.NewXLSXExporter(cfg.Export.XLSXPath),
		},
		parser.NewExcelParser(a.logger),
		opts...,
	)

	a.logger.DebugContext(ctx, "application wired", "config", cfg.String(), "products", a.catalog.Len())
	return a, nil
}

func (a *app) openStorage() (repository.ProductRepository, repository.ActivityRepository, error) {
	capacity := a.cfg.Catalog.Capacity

	switch a.cfg.Storage.Backend {
	case "sqlite":
		repo, err := storage.NewSQLiteProductRepository(a.cfg.Storage.Path, capacity)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, repo)
		return repo, storage.NewFileActivityRepository(a.cfg.Activity.Path), nil
	case "memory":
		return storage.NewMemoryProductRepository(), storage.NewMemoryActivityRepository(), nil
	case "file":
		return storage.NewFileProductRepository(a.cfg.Storage.Path, capacity),
			storage.NewFileActivityRepository(a.cfg.Activity.Path), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", a.cfg.Storage.Backend)
	}
}

// close metrikalarni yozish va resurslarni yopish
func (a *app) close() error {
	var errs []error
	if a.cfg.Metrics.Textfile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
