// internal/repository/product_test.go
package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/models"
	"github.com/vapeshop/vapeshop-backend/internal/repository"
)

type ProductRepositorySuite struct {
	suite.Suite
	ctx      context.Context
	store    *kvstore.MemoryStore
	products *repository.ProductRepository
}

func (s *ProductRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.store = kvstore.NewMemory()
	s.products = repository.NewProductRepository(s.store, repository.NewAllocator(s.store))
}

func (s *ProductRepositorySuite) TestCreateAssignsSequentialIDs() {
	names := []string{"Mango Liquid", "JUUL Cartridge", "RELX Mint Pod", "Vaporesso XROS 3", "Cotton Bacon"}

	for _, name := range names {
		saved, err := s.products.Save(s.ctx, models.Product{Name: name, Category: "misc", Price: 100, Stock: 1})
		s.Require().NoError(err)
		s.NotZero(saved.ID)
	}

	list, err := s.products.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, len(names))

	// Ids are exactly 1..N, list sorted ascending
	for i, p := range list {
		s.Equal(int64(i+1), p.ID)
		s.Equal(names[i], p.Name)
	}
}

func (s *ProductRepositorySuite) TestSavePopulatesTimestamps() {
	saved, err := s.products.Save(s.ctx, models.Product{Name: "Mango Liquid", Category: "liquids", Price: 450, Stock: 10})
	s.Require().NoError(err)
	s.False(saved.CreatedAt.IsZero())
	s.False(saved.UpdatedAt.IsZero())
}

func (s *ProductRepositorySuite) TestUpdatePreservesCreatedAt() {
	created, err := s.products.Save(s.ctx, models.Product{Name: "Mango Liquid", Category: "liquids", Price: 450, Stock: 10})
	s.Require().NoError(err)

	updated, err := s.products.Save(s.ctx, models.Product{
		ID:       created.ID,
		Name:     "Mango Liquid",
		Category: "liquids",
		Price:    500,
		Stock:    8,
	})
	s.Require().NoError(err)

	s.True(updated.CreatedAt.Equal(created.CreatedAt), "update must keep the original creation time")
	s.False(updated.UpdatedAt.Before(created.UpdatedAt), "update must refresh updated_at")

	// And the stored record agrees
	loaded, err := s.products.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.True(loaded.CreatedAt.Equal(created.CreatedAt))
	s.Equal(int64(500), loaded.Price)
	s.Equal(int64(8), loaded.Stock)
}

func (s *ProductRepositorySuite) TestSaveWithoutIDCreatesNewProduct() {
	first, err := s.products.Save(s.ctx, models.Product{Name: "Mango Liquid", Category: "liquids", Price: 450, Stock: 10})
	s.Require().NoError(err)

	// Omitting the id targets nothing: a fresh product is created instead
	second, err := s.products.Save(s.ctx, models.Product{Name: "Mango Liquid", Category: "liquids", Price: 999, Stock: 10})
	s.Require().NoError(err)
	s.NotEqual(first.ID, second.ID)

	list, err := s.products.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *ProductRepositorySuite) TestDelete() {
	existed, err := s.products.Delete(s.ctx, 7)
	s.Require().NoError(err)
	s.False(existed)

	saved, err := s.products.Save(s.ctx, models.Product{Name: "Mango Liquid", Category: "liquids", Price: 450, Stock: 10})
	s.Require().NoError(err)

	existed, err = s.products.Delete(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.True(existed)

	list, err := s.products.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)

	// Deleted ids are never reused
	next, err := s.products.Save(s.ctx, models.Product{Name: "JUUL Cartridge", Category: "cartridges", Price: 300, Stock: 20})
	s.Require().NoError(err)
	s.Greater(next.ID, saved.ID)
}

func (s *ProductRepositorySuite) TestGetUnknownID() {
	_, err := s.products.Get(s.ctx, 123)
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *ProductRepositorySuite) TestSeedProductsIsIdempotent() {
	s.Require().NoError(repository.SeedProducts(s.ctx, s.products))

	list, err := s.products.List(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(list)
	seeded := len(list)

	s.Require().NoError(repository.SeedProducts(s.ctx, s.products))

	list, err = s.products.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, seeded)
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProductRepositorySuite))
}
