// internal/services/user_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/repository"
	"github.com/vapeshop/vapeshop-backend/internal/services"
)

type UserServiceSuite struct {
	suite.Suite
	ctx   context.Context
	users *repository.UserRepository
	svc   *services.UserService
}

func (s *UserServiceSuite) SetupTest() {
	s.ctx = context.Background()
	store := kvstore.NewMemory()
	s.users = repository.NewUserRepository(store, nil)
	s.svc = services.NewUserService(s.users, 100)
}

func (s *UserServiceSuite) TestApplyReferralCreditsReferrer() {
	referrer, err := s.svc.GetOrCreate(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal("VAPE-1", referrer.ReferralCode)

	credited, err := s.svc.ApplyReferral(s.ctx, 2, "VAPE-1")
	s.Require().NoError(err)
	s.Equal(int64(1), credited.ID)
	s.Equal(int64(100), credited.Bonus)
	s.Equal([]int64{2}, credited.Referrals)
}

func (s *UserServiceSuite) TestApplyReferralOnlyOnce() {
	_, err := s.svc.GetOrCreate(s.ctx, 1)
	s.Require().NoError(err)
	_, err = s.svc.GetOrCreate(s.ctx, 3)
	s.Require().NoError(err)

	_, err = s.svc.ApplyReferral(s.ctx, 2, "VAPE-1")
	s.Require().NoError(err)

	// Even a different code is rejected once the user has been referred
	_, err = s.svc.ApplyReferral(s.ctx, 2, "VAPE-3")
	s.ErrorIs(err, services.ErrAlreadyReferred)
}

func (s *UserServiceSuite) TestApplyReferralSelf() {
	_, err := s.svc.GetOrCreate(s.ctx, 1)
	s.Require().NoError(err)

	_, err = s.svc.ApplyReferral(s.ctx, 1, "VAPE-1")
	s.ErrorIs(err, services.ErrSelfReferral)
}

func (s *UserServiceSuite) TestApplyReferralUnknownCode() {
	_, err := s.svc.ApplyReferral(s.ctx, 2, "VAPE-404")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *UserServiceSuite) TestUpdateProfile() {
	updated, err := s.svc.UpdateProfile(s.ctx, 5, &services.UpdateUserProfileRequest{Username: "cloudchaser"})
	s.Require().NoError(err)
	s.Equal("cloudchaser", updated.Username)

	loaded, err := s.users.Get(s.ctx, 5)
	s.Require().NoError(err)
	s.Equal("cloudchaser", loaded.Username)
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}
