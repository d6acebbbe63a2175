// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vapeshop/vapeshop-backend/internal/models"
	"github.com/vapeshop/vapeshop-backend/internal/repository"
	"github.com/vapeshop/vapeshop-backend/internal/utils"
)

var (
	ErrSelfReferral    = errors.New("cannot apply own referral code")
	ErrAlreadyReferred = errors.New("referral already applied")
)

type UserService struct {
	users         *repository.UserRepository
	referralBonus int64
}

type UpdateUserProfileRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
}

type ApplyReferralRequest struct {
	Code string `json:"code" validate:"required"`
}

func NewUserService(users *repository.UserRepository, referralBonus int64) *UserService {
	return &UserService{users: users, referralBonus: referralBonus}
}

// GetOrCreate returns the user's profile, lazily creating it on first read.
func (s *UserService) GetOrCreate(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetOrCreate(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id int64, req *UpdateUserProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.users.GetOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}

	return s.users.Save(ctx, *user)
}

// ApplyReferral credits the owner of the given referral code for having
// referred userID: the referrer gains the new user's id in their referral
// set plus the configured bonus. A user can be referred at most once and
// cannot refer themselves. Referrer lookup is a scan over all users, which
// is acceptable at this user count.
func (s *UserService) ApplyReferral(ctx context.Context, userID int64, code string) (*models.User, error) {
	user, err := s.users.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ReferralCode == code {
		return nil, ErrSelfReferral
	}

	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var referrer *models.User
	for i := range all {
		for _, ref := range all[i].Referrals {
			if ref == userID {
				return nil, ErrAlreadyReferred
			}
		}
		if all[i].ReferralCode == code {
			referrer = &all[i]
		}
	}
	if referrer == nil {
		return nil, repository.ErrNotFound
	}

	referrer.Referrals = append(referrer.Referrals, userID)
	referrer.Bonus += s.referralBonus

	return s.users.Save(ctx, *referrer)
}
