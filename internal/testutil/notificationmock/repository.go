package notificationmock

import (
	"context"
	"time"

	domain "loanreview-backend/internal/domain/notification"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, n *domain.Notification) error
	CreateBatchFn         func(ctx context.Context, ns []*domain.Notification) error
	GetByNotificationIDFn func(ctx context.Context, notificationID string) (*domain.Notification, error)
	MarkReadFn            func(ctx context.Context, notificationID string, at time.Time) (*domain.Notification, error)
	ListByUserIDFn        func(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
}

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) CreateBatch(ctx context.Context, ns []*domain.Notification) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, ns)
	}
	return nil
}

func (m *Repo) GetByNotificationID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	if m.GetByNotificationIDFn != nil {
		return m.GetByNotificationIDFn(ctx, notificationID)
	}
	return nil, context.Canceled
}

func (m *Repo) MarkRead(ctx context.Context, notificationID string, at time.Time) (*domain.Notification, error) {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, notificationID, at)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUserID(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID, unreadOnly)
	}
	return nil, context.Canceled
}
