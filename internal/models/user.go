// internal/models/user.go
package models

import "time"

// User identity comes from the messaging platform, so ID is caller-supplied
// and never allocator-assigned. IsAdmin is derived from the configured
// allow-list on every read and is never trusted from stored data.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Bonus        int64     `json:"bonus"`
	Referrals    []int64   `json:"referrals"`
	ReferralCode string    `json:"referral_code"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
