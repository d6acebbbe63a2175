// internal/repository/user.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/models"
)

const userPrefix = "user:"

func userKey(id int64) string {
	return userPrefix + formatInt(id)
}

// ReferralCode derives a user's default referral code from their id. The
// derivation is deterministic so a lazily created user always gets the
// same code.
func ReferralCode(id int64) string {
	return fmt.Sprintf("VAPE-%d", id)
}

func encodeUser(u models.User) map[string]string {
	referrals := u.Referrals
	if referrals == nil {
		referrals = []int64{}
	}
	encoded, _ := json.Marshal(referrals)

	// is_admin is intentionally not persisted: admin status is derived from
	// the allow-list on every read.
	return map[string]string{
		"id":            formatInt(u.ID),
		"username":      u.Username,
		"bonus":         formatInt(u.Bonus),
		"referrals":     string(encoded),
		"referral_code": u.ReferralCode,
		"created_at":    formatTime(u.CreatedAt),
		"updated_at":    formatTime(u.UpdatedAt),
	}
}

func decodeUser(fields map[string]string, adminIDs map[int64]struct{}) models.User {
	var referrals []int64
	json.Unmarshal([]byte(fields["referrals"]), &referrals)

	id := parseInt(fields["id"])
	_, isAdmin := adminIDs[id]

	return models.User{
		ID:           id,
		Username:     fields["username"],
		Bonus:        parseInt(fields["bonus"]),
		Referrals:    referrals,
		ReferralCode: fields["referral_code"],
		IsAdmin:      isAdmin,
		CreatedAt:    parseTime(fields["created_at"]),
		UpdatedAt:    parseTime(fields["updated_at"]),
	}
}

// UserRepository maps users onto store records. User ids are external
// messaging-platform identities supplied by the caller, never allocated.
type UserRepository struct {
	store    kvstore.Store
	adminIDs map[int64]struct{}
}

func NewUserRepository(store kvstore.Store, adminIDs map[int64]struct{}) *UserRepository {
	return &UserRepository{store: store, adminIDs: adminIDs}
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	fields, err := r.store.GetFields(ctx, userKey(id))
	if err != nil {
		return nil, storeErr("get", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	u := decodeUser(fields, r.adminIDs)
	return &u, nil
}

// GetOrCreate implements the read-triggers-create policy: a read for an
// unknown id synthesizes a fresh user with zero bonus, no referrals and the
// deterministic default referral code, persists it and returns it.
func (r *UserRepository) GetOrCreate(ctx context.Context, id int64) (*models.User, error) {
	u, err := r.Get(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return r.Save(ctx, models.User{
		ID:           id,
		ReferralCode: ReferralCode(id),
	})
}

func (r *UserRepository) Save(ctx context.Context, u models.User) (*models.User, error) {
	if u.ID == 0 {
		return nil, fmt.Errorf("user id is required")
	}

	now := time.Now().UTC()
	u.UpdatedAt = now
	if u.CreatedAt.IsZero() {
		created, err := storedCreatedAt(ctx, r.store, userKey(u.ID), now)
		if err != nil {
			return nil, err
		}
		u.CreatedAt = created
	}

	if err := r.store.SetFields(ctx, userKey(u.ID), encodeUser(u)); err != nil {
		return nil, storeErr("set", err)
	}

	_, u.IsAdmin = r.adminIDs[u.ID]
	return &u, nil
}

// List returns all known users sorted by id ascending.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	records, err := loadRecords(ctx, r.store, userPrefix)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(records))
	for _, fields := range records {
		users = append(users, decodeUser(fields, r.adminIDs))
	}

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
