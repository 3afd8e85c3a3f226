package notification

import (
	"time"

	"loanreview-backend/internal/domain/apperr"
)

const MonthlyReminder = "Your monthly loan update is ready. Your eligibility and insights have been refreshed."

var ErrNotFound = apperr.NotFound("notification not found")

type Notification struct {
	ID             uint64     `gorm:"primaryKey;column:id" json:"-"`
	NotificationID string     `gorm:"size:32;uniqueIndex:ux_notifications_notification_id" json:"notification_id"`
	UserID         string     `gorm:"size:128;index:idx_notifications_user" json:"user_id"`
	Message        string     `gorm:"type:text" json:"message"`
	Read           bool       `gorm:"column:is_read;not null;default:false" json:"read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
