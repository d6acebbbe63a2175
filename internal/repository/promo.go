// internal/repository/promo.go
package repository

import (
	"context"
	"time"

	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/models"
)

const promoPrefix = "promo:"

func promoKey(code string) string {
	return promoPrefix + code
}

func encodePromo(p models.Promo) map[string]string {
	return map[string]string{
		"code":       p.Code,
		"discount":   formatInt(p.Discount),
		"uses":       formatInt(p.Uses),
		"used":       formatInt(p.Used),
		"created_at": formatTime(p.CreatedAt),
		"updated_at": formatTime(p.UpdatedAt),
	}
}

func decodePromo(fields map[string]string) models.Promo {
	return models.Promo{
		Code:      fields["code"],
		Discount:  parseInt(fields["discount"]),
		Uses:      parseInt(fields["uses"]),
		Used:      parseInt(fields["used"]),
		CreatedAt: parseTime(fields["created_at"]),
		UpdatedAt: parseTime(fields["updated_at"]),
	}
}

// PromoRepository keys promo records by code instead of an allocated id.
type PromoRepository struct {
	store kvstore.Store
}

func NewPromoRepository(store kvstore.Store) *PromoRepository {
	return &PromoRepository{store: store}
}

func (r *PromoRepository) List(ctx context.Context) ([]models.Promo, error) {
	records, err := loadRecords(ctx, r.store, promoPrefix)
	if err != nil {
		return nil, err
	}

	promos := make([]models.Promo, 0, len(records))
	for _, fields := range records {
		promos = append(promos, decodePromo(fields))
	}
	return promos, nil
}

func (r *PromoRepository) Get(ctx context.Context, code string) (*models.Promo, error) {
	fields, err := r.store.GetFields(ctx, promoKey(code))
	if err != nil {
		return nil, storeErr("get", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	p := decodePromo(fields)
	return &p, nil
}

// Create rejects duplicate codes with ErrConflict. The existence check and
// the write are two separate store calls: concurrent creators of the same
// code can both pass the check, in which case the later write wins.
func (r *PromoRepository) Create(ctx context.Context, p models.Promo) (*models.Promo, error) {
	exists, err := r.store.ExistsKey(ctx, promoKey(p.Code))
	if err != nil {
		return nil, storeErr("exists", err)
	}
	if exists {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	p.Used = 0
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := r.store.SetFields(ctx, promoKey(p.Code), encodePromo(p)); err != nil {
		return nil, storeErr("set", err)
	}
	return &p, nil
}

// Apply redeems the promo once: ErrNotFound when the code is unknown,
// ErrLimitReached when all redemptions are spent, otherwise the usage
// counter is atomically incremented. The limit check is not coupled to the
// increment, so concurrent redemptions near the limit can push used past
// uses.
func (r *PromoRepository) Apply(ctx context.Context, code string) (*models.Promo, error) {
	fields, err := r.store.GetFields(ctx, promoKey(code))
	if err != nil {
		return nil, storeErr("get", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	promo := decodePromo(fields)
	if promo.Used >= promo.Uses {
		return nil, ErrLimitReached
	}

	used, err := r.store.IncrementField(ctx, promoKey(code), "used")
	if err != nil {
		return nil, storeErr("increment", err)
	}
	promo.Used = used
	return &promo, nil
}
