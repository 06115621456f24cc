package services

import (
	"context"
	"errors"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/repository"
)

// OrderDetail is an order with its line-item snapshots.
type OrderDetail struct {
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// OrderQueryService serves order history for signed-in users.
type OrderQueryService struct {
	Repo *repository.OrderRepository
}

func NewOrderQueryService(r *repository.OrderRepository) *OrderQueryService {
	return &OrderQueryService{Repo: r}
}

func (s *OrderQueryService) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns one order with items, only for its owner.
func (s *OrderQueryService) Get(ctx context.Context, userID string, orderID int64) (*OrderDetail, error) {
	order, err := s.Repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.UserID != userID {
		return nil, errors.New("forbidden")
	}
	items, err := s.Repo.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *order, Items: items}, nil
}
