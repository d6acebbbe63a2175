// internal/models/stats.go
package models

import "time"

// Stats is a singleton record recomputed wholesale from the full entity set.
type Stats struct {
	TotalOrders   int64     `json:"total_orders"`
	TotalProducts int64     `json:"total_products"`
	TotalUsers    int64     `json:"total_users"`
	TotalRevenue  int64     `json:"total_revenue"` // sum of totals of completed orders
	UpdatedAt     time.Time `json:"updated_at"`
}
