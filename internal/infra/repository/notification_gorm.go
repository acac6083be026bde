package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bellagenda/salon-scheduler/internal/models"
)

// NotificationGormStore backs the fan-out dispatcher's stored
// notifications.
type NotificationGormStore struct {
	db *gorm.DB
}

func NewNotificationGormStore(db *gorm.DB) *NotificationGormStore {
	return &NotificationGormStore{db: db}
}

func (s *NotificationGormStore) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return s.db.WithContext(ctx).Create(n).Error
}
