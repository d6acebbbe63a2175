// internal/repository/stats_test.go
package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/models"
	"github.com/vapeshop/vapeshop-backend/internal/repository"
)

type StatsAggregatorSuite struct {
	suite.Suite
	ctx      context.Context
	store    *kvstore.MemoryStore
	stats    *repository.StatsAggregator
	products *repository.ProductRepository
	users    *repository.UserRepository
}

func (s *StatsAggregatorSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = kvstore.NewMemory()
	s.stats = repository.NewStatsAggregator(s.store)
	s.products = repository.NewProductRepository(s.store, repository.NewAllocator(s.store))
	s.users = repository.NewUserRepository(s.store, nil)
}

func (s *StatsAggregatorSuite) TestGetComputesLazily() {
	_, err := s.products.Save(s.ctx, models.Product{Name: "Mango Liquid", Category: "liquids", Price: 450, Stock: 10})
	s.Require().NoError(err)
	_, err = s.users.GetOrCreate(s.ctx, 42)
	s.Require().NoError(err)

	// No order has been placed, so nothing recomputed the view yet
	stats, err := s.stats.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), stats.TotalProducts)
	s.Equal(int64(1), stats.TotalUsers)
	s.Equal(int64(0), stats.TotalOrders)
	s.False(stats.UpdatedAt.IsZero())
}

func (s *StatsAggregatorSuite) TestGetReturnsCachedView() {
	_, err := s.stats.Get(s.ctx)
	s.Require().NoError(err)

	// Product creation does not trigger a recompute: the cached view stays
	// stale until the next order mutation or explicit recompute
	_, err = s.products.Save(s.ctx, models.Product{Name: "Mango Liquid", Category: "liquids", Price: 450, Stock: 10})
	s.Require().NoError(err)

	cached, err := s.stats.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), cached.TotalProducts)

	fresh, err := s.stats.Recompute(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), fresh.TotalProducts)
}

func TestStatsAggregatorSuite(t *testing.T) {
	suite.Run(t, new(StatsAggregatorSuite))
}
