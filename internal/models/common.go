// internal/models/common.go
package models

// Enums
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Entity type names used by the id allocator and the store key layout.
const (
	EntityProduct = "product"
	EntityOrder   = "order"
	EntityUser    = "user"
	EntityPromo   = "promo"
)
