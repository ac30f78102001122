package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
)

type fileProductRepository struct {
	path     string
	capacity int
}

// NewFileProductRepository matn fayl asosidagi product repository.
// capacity <= 0 bo'lsa o'qishda cheklov yo'q.
func NewFileProductRepository(path string, capacity int) repository.ProductRepository {
	return &fileProductRepository{path: path, capacity: capacity}
}

// Load fayldan mahsulotlarni o'qish. Fayl yo'q bo'lsa katalog bo'sh.
func (r *fileProductRepository) Load(ctx context.Context) ([]entity.Product, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []entity.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open inventory file: %w", err)
	}
	defer f.Close()

	products, err := DecodeProducts(f, r.capacity)
	if err != nil {
		return nil, fmt.Errorf("read inventory file: %w", err)
	}
	return products, nil
}

// SaveAll butun faylni qayta yozish (vaqtinchalik fayl + rename)
func (r *fileProductRepository) SaveAll(ctx context.Context, products []entity.Product) error {
	err := WriteFileAtomic(r.path, func(w io.Writer) error {
		return EncodeProducts(w, products)
	})
	if err != nil {
		return fmt.Errorf("save inventory file: %w", err)
	}
	return nil
}

// EncodeProducts har bir mahsulotni "id,name,quantity,price,type" qatori sifatida yozish
func EncodeProducts(w io.Writer, products []entity.Product) error {
	bw := bufio.NewWriter(w)
	for _, p := range products {
		if _, err := fmt.Fprintf(bw, "%d,%s,%d,%.2f,%d\n", p.ID, p.Name, p.Quantity, p.Price, p.Category.Tag()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeProducts qatorlarni o'qish. Birinchi noto'g'ri qatorda yoki capacity ga
// yetganda to'xtaydi; qolgan ma'lumot e'tiborsiz qoldiriladi.
func DecodeProducts(r io.Reader, capacity int) ([]entity.Product, error) {
	products := []entity.Product{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if capacity > 0 && len(products) >= capacity {
			break
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, ok := decodeLine(line)
		if !ok {
			break
		}
		products = append(products, p)
	}
	if err := sc.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
		return nil, err
	}
	return products, nil
}

func decodeLine(line string) (entity.Product, bool) {
	fields := strings.Split(line, ",")
	if len(fields) != 5 {
		return entity.Product{}, false
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return entity.Product{}, false
	}
	name := fields[1]
	if name == "" {
		return entity.Product{}, false
	}
	qty, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return entity.Product{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return entity.Product{}, false
	}
	tag, err := strconv.Atoi(strings.TrimSpace(fields[4]))
	if err != nil {
		return entity.Product{}, false
	}
	category, err := entity.ParseCategoryTag(tag)
	if err != nil {
		return entity.Product{}, false
	}

	return entity.Product{
		ID:       id,
		Name:     entity.TruncateName(name),
		Quantity: qty,
		Price:    price,
		Category: category,
	}, true
}
