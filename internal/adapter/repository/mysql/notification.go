package mysql

import (
	"context"
	"errors"
	"time"

	"loanreview-backend/internal/domain/notification"

	"gorm.io/gorm"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(ns, 500).Error
}

func (r *NotificationRepository) GetByNotificationID(ctx context.Context, notificationID string) (*notification.Notification, error) {
	var out notification.Notification
	if err := r.db.WithContext(ctx).Where("notification_id = ?", notificationID).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notification.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID string, at time.Time) (*notification.Notification, error) {
	err := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("notification_id = ? AND is_read = ?", notificationID, false).
		Updates(map[string]any{"is_read": true, "read_at": at}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByNotificationID(ctx, notificationID)
}

func (r *NotificationRepository) ListByUserID(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var out []notification.Notification
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}
