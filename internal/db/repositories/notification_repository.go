package repositories

import (
	"context"

	"flightwatch/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// NotificationRepository stores notifications through GORM
type NotificationRepository struct {
	db *gormlib.DB
}

func NewNotificationRepository(db *gormlib.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *gorm.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// List returns notifications newest first
func (r *NotificationRepository) List(ctx context.Context) ([]gorm.Notification, error) {
	var out []gorm.Notification
	err := r.db.WithContext(ctx).
		Order("sent_at DESC").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// MarkRead flags one notification as read. It reports false when no row
// matched id.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gorm.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll removes every notification and returns how many were removed
func (r *NotificationRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&gorm.Notification{})
	return res.RowsAffected, res.Error
}
