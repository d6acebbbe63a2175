// internal/services/promo_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vapeshop/vapeshop-backend/internal/models"
	"github.com/vapeshop/vapeshop-backend/internal/repository"
	"github.com/vapeshop/vapeshop-backend/internal/utils"
)

type PromoService struct {
	promos *repository.PromoRepository
}

type CreatePromoRequest struct {
	Code     string `json:"code" validate:"required,promocode"`
	Discount int64  `json:"discount" validate:"required,min=1,max=100"`
	Uses     int64  `json:"uses" validate:"required,min=1"`
}

type ApplyPromoRequest struct {
	Code   string `json:"code" validate:"required"`
	UserID int64  `json:"userId" validate:"required,min=1"`
}

func NewPromoService(promos *repository.PromoRepository) *PromoService {
	return &PromoService{promos: promos}
}

func (s *PromoService) ListPromos(ctx context.Context) ([]models.Promo, error) {
	return s.promos.List(ctx)
}

func (s *PromoService) CreatePromo(ctx context.Context, req *CreatePromoRequest) (*models.Promo, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	promo := models.Promo{
		Code:     req.Code,
		Discount: req.Discount,
		Uses:     req.Uses,
	}

	return s.promos.Create(ctx, promo)
}

// ApplyPromo redeems a promo code for the given user and returns the
// discount percentage.
func (s *PromoService) ApplyPromo(ctx context.Context, code string, userID int64) (int64, error) {
	promo, err := s.promos.Apply(ctx, code)
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"code":    code,
		"user_id": userID,
		"used":    promo.Used,
		"uses":    promo.Uses,
	}).Info("Promo code applied")

	return promo.Discount, nil
}
