package notification

import "time"

type NotificationDTO struct {
	NotificationID string     `json:"notification_id"`
	UserID         string     `json:"user_id"`
	Message        string     `json:"message"`
	Read           bool       `json:"read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type BatchResult struct {
	Success              bool   `json:"success"`
	NotificationsCreated int    `json:"notifications_created"`
	Message              string `json:"message"`
}
