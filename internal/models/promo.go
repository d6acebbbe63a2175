// internal/models/promo.go
package models

import "time"

type Promo struct {
	Code      string    `json:"code"`
	Discount  int64     `json:"discount"` // percent
	Uses      int64     `json:"uses"`     // max redemptions
	Used      int64     `json:"used"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
