// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"

	"github.com/vapeshop/vapeshop-backend/internal/models"
	"github.com/vapeshop/vapeshop-backend/internal/repository"
	"github.com/vapeshop/vapeshop-backend/internal/utils"
)

type CatalogService struct {
	products *repository.ProductRepository
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Category    string `json:"category" validate:"required"`
	Price       *int64 `json:"price" validate:"required,min=1"`
	Stock       *int64 `json:"stock" validate:"required,min=0"`
	Description string `json:"description,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Category    string  `json:"category,omitempty"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,min=1"`
	Stock       *int64  `json:"stock,omitempty" validate:"omitempty,min=0"`
	Description *string `json:"description,omitempty"`
	Emoji       string  `json:"emoji,omitempty"`
}

func NewCatalogService(products *repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       *req.Price,
		Stock:       *req.Stock,
		Description: req.Description,
		Emoji:       req.Emoji,
	}

	return s.products.Save(ctx, product)
}

// UpdateProduct merges the supplied fields onto the stored product and
// re-saves it under the same id, so fields omitted from the request keep
// their current values.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Emoji != "" {
		product.Emoji = req.Emoji
	}

	return s.products.Save(ctx, *product)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	existed, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return repository.ErrNotFound
	}
	return nil
}
