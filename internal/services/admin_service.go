// internal/services/admin_service.go
package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vapeshop/vapeshop-backend/internal/models"
	"github.com/vapeshop/vapeshop-backend/internal/repository"
)

type AdminService struct {
	stats *repository.StatsAggregator
	users *repository.UserRepository
}

type BroadcastRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4096"`
}

func NewAdminService(stats *repository.StatsAggregator, users *repository.UserRepository) *AdminService {
	return &AdminService{stats: stats, users: users}
}

func (s *AdminService) DashboardStats(ctx context.Context) (*models.Stats, error) {
	return s.stats.Get(ctx)
}

// Broadcast delivers a message to every known user. There is no real
// delivery channel wired up: each recipient is logged only. Returns the
// recipient count.
func (s *AdminService) Broadcast(ctx context.Context, message string) (int, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return 0, err
	}

	for _, u := range users {
		logrus.WithFields(logrus.Fields{
			"user_id": u.ID,
			"message": message,
		}).Info("Broadcast message")
	}

	return len(users), nil
}
