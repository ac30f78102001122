package usecase

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
)

const (
	opAdd      = "add"
	opSetQty   = "set_quantity"
	opSale     = "sale"
	opPurchase = "purchase"
	opDelete   = "delete"
)

// ProductUseCase katalog (xotiradagi mahsulotlar ro'yxati) business logic.
// Har bir o'zgarish: tekshirish -> o'zgartirish -> saqlash -> jurnal.
// Bitta goroutine dan foydalaniladi.
type ProductUseCase interface {
	// Add yangi mahsulot qo'shish (id takrorlanishi mumkin)
	Add(ctx context.Context, id int, name string, quantity int, price float64, category entity.Category) (entity.Product, error)

	// FindByID birinchi mos mahsulotni olish
	FindByID(id int) (entity.Product, error)

	// SetQuantity miqdorni to'g'ridan-to'g'ri o'rnatish
	SetQuantity(ctx context.Context, id, quantity int) (entity.Product, error)

	// ApplySale sotuv: miqdor yetarli bo'lsagina kamaytiriladi
	ApplySale(ctx context.Context, id, quantity int) (entity.Product, error)

	// ApplyPurchase xarid: miqdor shartsiz oshiriladi
	ApplyPurchase(ctx context.Context, id, quantity int) (entity.Product, error)

	// Delete mahsulotni o'chirish (qolganlar tartibi saqlanadi)
	Delete(ctx context.Context, id int) (entity.Product, error)

	// LowStock miqdori threshold dan kam mahsulotlar ketma-ketligi
	LowStock(threshold int) iter.Seq[entity.Product]

	// Search nom yoki id bo'yicha qidirish
	Search(query string) []entity.Product

	// All barcha mahsulotlar nusxasi
	All() []entity.Product

	// Len mahsulotlar soni
	Len() int

	// Capacity maksimal sig'im
	Capacity() int
}

type productUseCase struct {
	products []entity.Product
	capacity int
	repo     repository.ProductRepository
	sessions SessionProvider
	activity *activityLogger
	logger   *slog.Logger
	metrics  MetricsRecorder
}

// NewProductUseCase katalogni repository dan bir marta yuklab yaratish
func NewProductUseCase(
	ctx context.Context,
	repo repository.ProductRepository,
	activityRepo repository.ActivityRepository,
	sessions SessionProvider,
	opts ...Option,
) (ProductUseCase, error) {
	o := newOptions(opts)

	products, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(products) > o.capacity {
		o.logger.WarnContext(ctx, "stored catalog exceeds capacity, extra records ignored",
			"stored", len(products), "capacity", o.capacity)
		products = products[:o.capacity]
	}

	u := &productUseCase{
		products: products,
		capacity: o.capacity,
		repo:     repo,
		sessions: sessions,
		activity: newActivityLogger(activityRepo, o),
		logger:   o.logger,
		metrics:  o.metrics,
	}
	u.metrics.SetProducts(len(u.products))
	return u, nil
}

// Add yangi mahsulot qo'shish
func (u *productUseCase) Add(ctx context.Context, id int, name string, quantity int, price float64, category entity.Category) (entity.Product, error) {
	if len(u.products) >= u.capacity {
		return entity.Product{}, u.done(opAdd, ErrCatalogFull)
	}
	if !category.Valid() {
		return entity.Product{}, u.done(opAdd, fmt.Errorf("%w: %d", ErrInvalidCategory, int(category)))
	}

	name = entity.SanitizeName(name)
	if name == "" {
		// bo'sh nomli qator faylni o'qishni shu joyda to'xtatadi
		return entity.Product{}, u.done(opAdd, fmt.Errorf("%w: name must not be empty", ErrInvalidInput))
	}

	product := entity.Product{
		ID:       id,
		Name:     name,
		Quantity: quantity,
		Price:    price,
		Category: category,
	}
	u.products = append(u.products, product)

	err := u.persist(ctx, opAdd)
	u.record(ctx, fmt.Sprintf("Added product: %s (ID: %d)", product.Name, product.ID))
	return product, u.done(opAdd, err)
}

// FindByID birinchi mos mahsulotni olish
func (u *productUseCase) FindByID(id int) (entity.Product, error) {
	i := u.indexOf(id)
	if i < 0 {
		return entity.Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return u.products[i], nil
}

// SetQuantity miqdorni o'rnatish (manfiy qiymat tekshirilmaydi)
func (u *productUseCase) SetQuantity(ctx context.Context, id, quantity int) (entity.Product, error) {
	i := u.indexOf(id)
	if i < 0 {
		return entity.Product{}, u.done(opSetQty, fmt.Errorf("%w: %d", ErrProductNotFound, id))
	}

	u.products[i].Quantity = quantity
	err := u.persist(ctx, opSetQty)
	u.record(ctx, fmt.Sprintf("Updated stock for ID %d to %d units", id, quantity))
	return u.products[i], u.done(opSetQty, err)
}

// ApplySale sotuv. Miqdor yetmasa hech narsa o'zgarmaydi.
func (u *productUseCase) ApplySale(ctx context.Context, id, quantity int) (entity.Product, error) {
	i := u.indexOf(id)
	if i < 0 {
		return entity.Product{}, u.done(opSale, fmt.Errorf("%w: %d", ErrProductNotFound, id))
	}
	p := &u.products[i]
	if p.Quantity < quantity {
		return *p, u.done(opSale, fmt.Errorf("%w: have %d, requested %d", ErrInsufficientStock, p.Quantity, quantity))
	}

	p.Quantity -= quantity
	err := u.persist(ctx, opSale)
	u.record(ctx, fmt.Sprintf("Sale: %d units of %s (ID: %d)", quantity, p.Name, id))
	return *p, u.done(opSale, err)
}

// ApplyPurchase xarid (yuqori chegara yo'q)
func (u *productUseCase) ApplyPurchase(ctx context.Context, id, quantity int) (entity.Product, error) {
	i := u.indexOf(id)
	if i < 0 {
		return entity.Product{}, u.done(opPurchase, fmt.Errorf("%w: %d", ErrProductNotFound, id))
	}
	p := &u.products[i]

	p.Quantity += quantity
	err := u.persist(ctx, opPurchase)
	u.record(ctx, fmt.Sprintf("Purchase: %d units of %s (ID: %d)", quantity, p.Name, id))
	return *p, u.done(opPurchase, err)
}

// Delete mahsulotni o'chirish, keyingilari bir pozitsiya chapga suriladi
func (u *productUseCase) Delete(ctx context.Context, id int) (entity.Product, error) {
	i := u.indexOf(id)
	if i < 0 {
		return entity.Product{}, u.done(opDelete, fmt.Errorf("%w: %d", ErrProductNotFound, id))
	}
	removed := u.products[i]

	copy(u.products[i:], u.products[i+1:])
	u.products[len(u.products)-1] = entity.Product{}
	u.products = u.products[:len(u.products)-1]

	err := u.persist(ctx, opDelete)
	u.record(ctx, fmt.Sprintf("Deleted product: %s (ID: %d)", removed.Name, id))
	return removed, u.done(opDelete, err)
}

// LowStock har safar qayta boshlanadigan, katalog tartibidagi ketma-ketlik
func (u *productUseCase) LowStock(threshold int) iter.Seq[entity.Product] {
	return func(yield func(entity.Product) bool) {
		for _, p := range u.products {
			if p.Quantity < threshold {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Search nomda (katta-kichik harfsiz) yoki aniq id bo'yicha qidirish
func (u *productUseCase) Search(query string) []entity.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	id, idErr := strconv.Atoi(query)

	var results []entity.Product
	for _, p := range u.products {
		if (idErr == nil && p.ID == id) || strings.Contains(strings.ToLower(p.Name), query) {
			results = append(results, p)
		}
	}
	return results
}

// All barcha mahsulotlar nusxasi
func (u *productUseCase) All() []entity.Product {
	out := make([]entity.Product, len(u.products))
	copy(out, u.products)
	return out
}

// Len mahsulotlar soni
func (u *productUseCase) Len() int {
	return len(u.products)
}

// Capacity maksimal sig'im
func (u *productUseCase) Capacity() int {
	return u.capacity
}

func (u *productUseCase) indexOf(id int) int {
	for i, p := range u.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (u *productUseCase) persist(ctx context.Context, op string) error {
	u.metrics.SetProducts(len(u.products))
	if err := u.repo.SaveAll(ctx, u.products); err != nil {
		u.logger.ErrorContext(ctx, "error saving inventory", "op", op, "error", err)
		return &PersistError{Op: op, Err: err}
	}
	return nil
}

func (u *productUseCase) record(ctx context.Context, action string) {
	var username string
	if u.sessions != nil {
		username = u.sessions.Current().Username
	}
	u.activity.record(ctx, username, action)
}

func (u *productUseCase) done(op string, err error) error {
	u.metrics.Operation(op, outcomeOf(err))
	return err
}
