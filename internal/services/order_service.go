// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vapeshop/vapeshop-backend/internal/models"
	"github.com/vapeshop/vapeshop-backend/internal/repository"
	"github.com/vapeshop/vapeshop-backend/internal/utils"
)

// ErrForbidden marks operations the acting user is not allowed to perform.
var ErrForbidden = errors.New("operation not allowed")

type OrderService struct {
	orders   *repository.OrderRepository
	adminIDs map[int64]struct{}
}

type OrderItemRequest struct {
	ProductID int64  `json:"product_id" validate:"required,min=1"`
	Name      string `json:"name,omitempty"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	Price     int64  `json:"price" validate:"min=0"`
}

type CreateOrderRequest struct {
	UserID int64              `json:"userId" validate:"required,min=1"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total  int64              `json:"total" validate:"min=0"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

func NewOrderService(orders *repository.OrderRepository, adminIDs map[int64]struct{}) *OrderService {
	return &OrderService{orders: orders, adminIDs: adminIDs}
}

// Checkout creates a pending order for the given user. The item payload is
// kept as supplied; product references are not verified against the catalog.
func (s *OrderService) Checkout(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order := models.Order{
		UserID: req.UserID,
		Items:  items,
		Total:  req.Total,
	}

	return s.orders.Save(ctx, order)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// UpdateStatus changes an order's status. Only the order's owner or an
// admin may do so.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, orderID int64, status models.OrderStatus) error {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if _, admin := s.adminIDs[actorID]; !admin && order.UserID != actorID {
		return ErrForbidden
	}

	ok, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}
