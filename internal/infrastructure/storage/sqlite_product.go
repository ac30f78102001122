package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
)

// SQLiteProductRepository SQLite asosidagi product repository
type SQLiteProductRepository struct {
	db       *sql.DB
	capacity int
}

// NewSQLiteProductRepository SQLite bazasini ochish va sxemani yaratish
func NewSQLiteProductRepository(dbPath string, capacity int) (*SQLiteProductRepository, error) {
	if dbPath == "" {
		return nil, errors.New("db path bo'sh bo'lmasligi kerak")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("db papkasini yaratib bo'lmadi: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite ochilmadi: %w", err)
	}

	if err := createProductSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteProductRepository{db: db, capacity: capacity}, nil
}

func createProductSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS products (
	position INTEGER PRIMARY KEY,
	id INTEGER NOT NULL,
	name TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price REAL NOT NULL,
	type INTEGER NOT NULL
);
`
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("schema yaratib bo'lmadi: %w", err)
	}
	return nil
}

// Load mahsulotlarni pozitsiya tartibida o'qish
func (s *SQLiteProductRepository) Load(ctx context.Context) ([]entity.Product, error) {
	limit := s.capacity
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, quantity, price, type FROM products ORDER BY position LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		var p entity.Product
		var tag int
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &tag); err != nil {
			return nil, err
		}
		category, err := entity.ParseCategoryTag(tag)
		if err != nil {
			// fayl kodeki kabi: birinchi noto'g'ri yozuvda to'xtaymiz
			break
		}
		p.Category = category
		p.Name = entity.TruncateName(p.Name)
		products = append(products, p)
	}
	return products, rows.Err()
}

// SaveAll jadvalni bitta tranzaksiyada to'liq qayta yozish
func (s *SQLiteProductRepository) SaveAll(ctx context.Context, products []entity.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO products (position, id, name, quantity, price, type) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, p := range products {
		if _, err := stmt.ExecContext(ctx, i, p.ID, p.Name, p.Quantity, p.Price, p.Category.Tag()); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// Close bazani yopish
func (s *SQLiteProductRepository) Close() error {
	return s.db.Close()
}
