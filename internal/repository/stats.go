// internal/repository/stats.go
package repository

import (
	"context"
	"time"

	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/models"
)

const statsKey = "stats"

func encodeStats(s models.Stats) map[string]string {
	return map[string]string{
		"total_orders":   formatInt(s.TotalOrders),
		"total_products": formatInt(s.TotalProducts),
		"total_users":    formatInt(s.TotalUsers),
		"total_revenue":  formatInt(s.TotalRevenue),
		"updated_at":     formatTime(s.UpdatedAt),
	}
}

func decodeStats(fields map[string]string) models.Stats {
	return models.Stats{
		TotalOrders:   parseInt(fields["total_orders"]),
		TotalProducts: parseInt(fields["total_products"]),
		TotalUsers:    parseInt(fields["total_users"]),
		TotalRevenue:  parseInt(fields["total_revenue"]),
		UpdatedAt:     parseTime(fields["updated_at"]),
	}
}

// StatsAggregator maintains the singleton stats record as an eagerly
// recomputed materialized view: every order mutation triggers a full rescan
// of products, orders and users. O(N) in total entity count, a known
// ceiling at large scale.
type StatsAggregator struct {
	store kvstore.Store
}

func NewStatsAggregator(store kvstore.Store) *StatsAggregator {
	return &StatsAggregator{store: store}
}

// Recompute rebuilds all counts from scratch and overwrites the singleton
// record. Revenue sums the totals of completed orders only.
func (a *StatsAggregator) Recompute(ctx context.Context) (*models.Stats, error) {
	products, err := loadRecords(ctx, a.store, productPrefix)
	if err != nil {
		return nil, err
	}
	orders, err := loadRecords(ctx, a.store, orderPrefix)
	if err != nil {
		return nil, err
	}
	users, err := loadRecords(ctx, a.store, userPrefix)
	if err != nil {
		return nil, err
	}

	var revenue int64
	for _, fields := range orders {
		o := decodeOrder(fields)
		if o.Status == models.OrderStatusCompleted {
			revenue += o.Total
		}
	}

	stats := models.Stats{
		TotalOrders:   int64(len(orders)),
		TotalProducts: int64(len(products)),
		TotalUsers:    int64(len(users)),
		TotalRevenue:  revenue,
		UpdatedAt:     time.Now().UTC(),
	}

	if err := a.store.SetFields(ctx, statsKey, encodeStats(stats)); err != nil {
		return nil, storeErr("set", err)
	}
	return &stats, nil
}

// Get returns the cached singleton, computing it first when absent.
func (a *StatsAggregator) Get(ctx context.Context) (*models.Stats, error) {
	fields, err := a.store.GetFields(ctx, statsKey)
	if err != nil {
		return nil, storeErr("get", err)
	}
	if len(fields) == 0 {
		return a.Recompute(ctx)
	}

	stats := decodeStats(fields)
	return &stats, nil
}
