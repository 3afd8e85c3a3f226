package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"loanreview-backend/internal/domain/apperr"
	domain "loanreview-backend/internal/domain/notification"
	"loanreview-backend/internal/domain/uow"
	"loanreview-backend/internal/infrastructure/metrics"
	"loanreview-backend/pkg/id"

	"github.com/sirupsen/logrus"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
	log  *logrus.Logger
	now  func() time.Time
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, log *logrus.Logger) *Usecase {
	return &Usecase{repo: repo, uow: tx, log: log, now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func toDTO(n *domain.Notification) *NotificationDTO {
	return &NotificationDTO{
		NotificationID: n.NotificationID,
		UserID:         n.UserID,
		Message:        n.Message,
		Read:           n.Read,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}

func (u *Usecase) newNotification(userID, message string, at time.Time) *domain.Notification {
	return &domain.Notification{
		NotificationID: id.NewID32(),
		UserID:         userID,
		Message:        message,
		CreatedAt:      at,
	}
}

// Notify stores one unread message for userID.
func (u *Usecase) Notify(ctx context.Context, userID, message string) (*NotificationDTO, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.Validation("user_id is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, apperr.Validation("message is required")
	}

	n := u.newNotification(userID, message, u.now().UTC())
	if err := u.repo.Create(ctx, n); err != nil {
		metrics.RecordNotificationFailure(metrics.SourceDirect)
		return nil, apperr.Persistence("store notification", err)
	}
	metrics.RecordNotifications(metrics.SourceDirect, 1)
	return toDTO(n), nil
}

// MarkRead flips read to true once; repeating it is a no-op success.
func (u *Usecase) MarkRead(ctx context.Context, notificationID string) (*NotificationDTO, error) {
	if notificationID == "" {
		return nil, apperr.Validation("notification_id is required")
	}
	n, err := u.repo.MarkRead(ctx, notificationID, u.now().UTC())
	if err != nil {
		return nil, apperr.Ensure(apperr.KindPersistence, "mark notification read", err)
	}
	return toDTO(n), nil
}

// RunMonthlyBatch sends the monthly reminder to every distinct applicant in a
// single transaction. Each run inserts fresh rows.
func (u *Usecase) RunMonthlyBatch(ctx context.Context) (*BatchResult, error) {
	now := u.now().UTC()
	count := 0

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		principals, err := r.Applications.DistinctPrincipals(ctx)
		if err != nil {
			return err
		}
		ns := make([]*domain.Notification, 0, len(principals))
		for _, p := range principals {
			ns = append(ns, u.newNotification(p, domain.MonthlyReminder, now))
		}
		if err := r.Notifications.CreateBatch(ctx, ns); err != nil {
			return err
		}
		count = len(ns)
		return nil
	})
	metrics.RecordBatchRun(err == nil)
	if err != nil {
		metrics.RecordNotificationFailure(metrics.SourceMonthlyBatch)
		u.log.WithError(err).Error("monthly batch failed")
		return nil, apperr.Ensure(apperr.KindPersistence, "monthly notification batch", err)
	}
	metrics.RecordNotifications(metrics.SourceMonthlyBatch, count)
	u.log.WithField("count", count).Info("monthly batch done")

	if count == 0 {
		return &BatchResult{Success: true, NotificationsCreated: 0, Message: "No users to notify"}, nil
	}
	return &BatchResult{
		Success:              true,
		NotificationsCreated: count,
		Message:              fmt.Sprintf("Sent %d notifications", count),
	}, nil
}

// ListForUser returns newest first.
func (u *Usecase) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationDTO, error) {
	if userID == "" {
		return nil, apperr.Validation("user_id is required")
	}
	rows, err := u.repo.ListByUserID(ctx, userID, unreadOnly)
	if err != nil {
		return nil, apperr.Persistence("list notifications", err)
	}
	out := make([]NotificationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}
