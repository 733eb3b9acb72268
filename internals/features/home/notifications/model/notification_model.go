package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Delivery channels. in_app is always set; email is a tag for the mailer
// worker to pick up (sending mail is outside this backend).
const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
)

type NotificationModel struct {
	NotificationID          uuid.UUID      `gorm:"column:notification_id;type:uuid;default:gen_random_uuid();primaryKey" json:"notification_id"`
	NotificationRecipientID uuid.UUID      `gorm:"column:notification_recipient_id;type:uuid;not null;index" json:"notification_recipient_id"`
	NotificationSenderID    uuid.UUID      `gorm:"column:notification_sender_id;type:uuid;not null" json:"notification_sender_id"`
	NotificationTitle       string         `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationMessage     string         `gorm:"column:notification_message;type:text;not null" json:"notification_message"`
	NotificationType        string         `gorm:"column:notification_type;type:varchar(50);not null" json:"notification_type"`
	NotificationChannels    pq.StringArray `gorm:"column:notification_channels;type:text[]" json:"notification_channels"`
	NotificationCourseID    *uuid.UUID     `gorm:"column:notification_course_id;type:uuid;index" json:"notification_course_id"` // nil = global
	NotificationReadAt      *time.Time     `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
