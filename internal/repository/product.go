// internal/repository/product.go
package repository

import (
	"context"
	"sort"
	"time"

	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/models"
)

const productPrefix = "product:"

func productKey(id int64) string {
	return productPrefix + formatInt(id)
}

func encodeProduct(p models.Product) map[string]string {
	return map[string]string{
		"id":          formatInt(p.ID),
		"name":        p.Name,
		"category":    p.Category,
		"price":       formatInt(p.Price),
		"stock":       formatInt(p.Stock),
		"description": p.Description,
		"emoji":       p.Emoji,
		"created_at":  formatTime(p.CreatedAt),
		"updated_at":  formatTime(p.UpdatedAt),
	}
}

func decodeProduct(fields map[string]string) models.Product {
	return models.Product{
		ID:          parseInt(fields["id"]),
		Name:        fields["name"],
		Category:    fields["category"],
		Price:       parseInt(fields["price"]),
		Stock:       parseInt(fields["stock"]),
		Description: fields["description"],
		Emoji:       fields["emoji"],
		CreatedAt:   parseTime(fields["created_at"]),
		UpdatedAt:   parseTime(fields["updated_at"]),
	}
}

type ProductRepository struct {
	store kvstore.Store
	alloc *Allocator
}

func NewProductRepository(store kvstore.Store, alloc *Allocator) *ProductRepository {
	return &ProductRepository{store: store, alloc: alloc}
}

// List returns the full catalog sorted by id ascending.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	records, err := loadRecords(ctx, r.store, productPrefix)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(records))
	for _, fields := range records {
		products = append(products, decodeProduct(fields))
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*models.Product, error) {
	fields, err := r.store.GetFields(ctx, productKey(id))
	if err != nil {
		return nil, storeErr("get", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	p := decodeProduct(fields)
	return &p, nil
}

// Save creates or overwrites a product. A zero id means create: a fresh id
// is allocated. An update must carry the target's id, otherwise it creates
// a new product. created_at survives updates, updated_at is always
// refreshed.
func (r *ProductRepository) Save(ctx context.Context, p models.Product) (*models.Product, error) {
	if p.ID == 0 {
		id, err := r.alloc.Next(ctx, models.EntityProduct)
		if err != nil {
			return nil, err
		}
		p.ID = id
	}

	now := time.Now().UTC()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		created, err := storedCreatedAt(ctx, r.store, productKey(p.ID), now)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = created
	}

	if err := r.store.SetFields(ctx, productKey(p.ID), encodeProduct(p)); err != nil {
		return nil, storeErr("set", err)
	}
	return &p, nil
}

// Delete removes the product and reports whether it existed. Its id is
// never reused.
func (r *ProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	existed, err := r.store.DeleteKey(ctx, productKey(id))
	if err != nil {
		return false, storeErr("delete", err)
	}
	return existed, nil
}
