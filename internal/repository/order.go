// internal/repository/order.go
package repository

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/models"
)

const orderPrefix = "order:"

func orderKey(id int64) string {
	return orderPrefix + formatInt(id)
}

func encodeOrder(o models.Order) map[string]string {
	items, _ := json.Marshal(o.Items)
	return map[string]string{
		"id":         formatInt(o.ID),
		"user_id":    formatInt(o.UserID),
		"items":      string(items),
		"total":      formatInt(o.Total),
		"status":     string(o.Status),
		"created_at": formatTime(o.CreatedAt),
		"updated_at": formatTime(o.UpdatedAt),
	}
}

func decodeOrder(fields map[string]string) models.Order {
	var items []models.OrderItem
	json.Unmarshal([]byte(fields["items"]), &items)

	return models.Order{
		ID:        parseInt(fields["id"]),
		UserID:    parseInt(fields["user_id"]),
		Items:     items,
		Total:     parseInt(fields["total"]),
		Status:    models.OrderStatus(fields["status"]),
		CreatedAt: parseTime(fields["created_at"]),
		UpdatedAt: parseTime(fields["updated_at"]),
	}
}

type OrderRepository struct {
	store kvstore.Store
	alloc *Allocator
	stats *StatsAggregator
}

func NewOrderRepository(store kvstore.Store, alloc *Allocator, stats *StatsAggregator) *OrderRepository {
	return &OrderRepository{store: store, alloc: alloc, stats: stats}
}

// List returns all orders sorted by id descending, most recent first.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	records, err := loadRecords(ctx, r.store, orderPrefix)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(records))
	for _, fields := range records {
		orders = append(orders, decodeOrder(fields))
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

// ListByUser filters List by exact owner match, keeping the descending
// order. O(total orders) as there is no secondary index; fine while
// per-user order counts stay small.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0)
	for _, o := range all {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*models.Order, error) {
	fields, err := r.store.GetFields(ctx, orderKey(id))
	if err != nil {
		return nil, storeErr("get", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	o := decodeOrder(fields)
	return &o, nil
}

// Save creates or overwrites an order. Status defaults to pending and the
// items payload is serialized for storage while the returned order keeps
// the structured form. Every save pays a full statistics recomputation.
func (r *OrderRepository) Save(ctx context.Context, o models.Order) (*models.Order, error) {
	if o.ID == 0 {
		id, err := r.alloc.Next(ctx, models.EntityOrder)
		if err != nil {
			return nil, err
		}
		o.ID = id
	}

	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}

	now := time.Now().UTC()
	o.UpdatedAt = now
	if o.CreatedAt.IsZero() {
		created, err := storedCreatedAt(ctx, r.store, orderKey(o.ID), now)
		if err != nil {
			return nil, err
		}
		o.CreatedAt = created
	}

	if err := r.store.SetFields(ctx, orderKey(o.ID), encodeOrder(o)); err != nil {
		return nil, storeErr("set", err)
	}

	if _, err := r.stats.Recompute(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatus patches the status field in place without a full reload.
// Returns false when no such order exists.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (bool, error) {
	exists, err := r.store.ExistsKey(ctx, orderKey(id))
	if err != nil {
		return false, storeErr("exists", err)
	}
	if !exists {
		return false, nil
	}

	fields := map[string]string{
		"status":     string(status),
		"updated_at": formatTime(time.Now().UTC()),
	}
	if err := r.store.SetFields(ctx, orderKey(id), fields); err != nil {
		return false, storeErr("set", err)
	}

	if _, err := r.stats.Recompute(ctx); err != nil {
		return false, err
	}
	return true, nil
}
