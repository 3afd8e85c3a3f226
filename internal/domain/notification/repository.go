package notification

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, ns []*Notification) error
	GetByNotificationID(ctx context.Context, notificationID string) (*Notification, error)
	// MarkRead is idempotent; an already read notification is returned as is.
	MarkRead(ctx context.Context, notificationID string, at time.Time) (*Notification, error)
	ListByUserID(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
}
