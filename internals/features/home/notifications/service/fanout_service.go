package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/home/notifications/model"
	"schoolhub_backend/internals/observability"
	"schoolhub_backend/internals/realtime"
)

// FanoutService persists notification rows and pushes live-update events.
// Delivery is best-effort by contract: every failure is logged and swallowed,
// the caller's primary operation never fails over a notification.
type FanoutService struct {
	DB  *gorm.DB
	Pub realtime.Publisher
}

func NewFanoutService(db *gorm.DB, pub realtime.Publisher) *FanoutService {
	return &FanoutService{DB: db, Pub: pub}
}

// NotifyOne writes a single notification row and publishes a recipient-scoped
// refresh event.
func (s *FanoutService) NotifyOne(ctx context.Context, recipientID, senderID uuid.UUID, title, message, ntype string, courseID *uuid.UUID) {
	row := model.NotificationModel{
		NotificationRecipientID: recipientID,
		NotificationSenderID:    senderID,
		NotificationTitle:       title,
		NotificationMessage:     message,
		NotificationType:        ntype,
		NotificationChannels:    pq.StringArray{model.ChannelInApp},
		NotificationCourseID:    courseID,
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		observability.L().Warn("notify: insert failed",
			zap.String("recipient_id", recipientID.String()),
			zap.String("type", ntype),
			zap.Error(err))
		return
	}
	s.Pub.Publish(realtime.Scoped(realtime.TopicStudentNotifications, recipientID.String()),
		map[string]any{"recipientId": recipientID})
}

// NotifyMany writes one row per recipient and returns how many rows were
// stored. A course-scoped summary event is published once for bulk sends on
// top of the per-recipient events.
func (s *FanoutService) NotifyMany(ctx context.Context, recipientIDs []uuid.UUID, senderID uuid.UUID, title, message, ntype string, courseID *uuid.UUID) int {
	if len(recipientIDs) == 0 {
		return 0
	}

	rows := make([]model.NotificationModel, 0, len(recipientIDs))
	for _, rid := range recipientIDs {
		rows = append(rows, model.NotificationModel{
			NotificationRecipientID: rid,
			NotificationSenderID:    senderID,
			NotificationTitle:       title,
			NotificationMessage:     message,
			NotificationType:        ntype,
			NotificationChannels:    pq.StringArray{model.ChannelInApp},
			NotificationCourseID:    courseID,
		})
	}

	if err := s.DB.WithContext(ctx).Create(&rows).Error; err != nil {
		observability.L().Warn("notify: bulk insert failed",
			zap.Int("recipients", len(recipientIDs)),
			zap.String("type", ntype),
			zap.Error(err))
		return 0
	}

	for _, rid := range recipientIDs {
		s.Pub.Publish(realtime.Scoped(realtime.TopicStudentNotifications, rid.String()),
			map[string]any{"recipientId": rid})
	}
	if courseID != nil {
		s.Pub.Publish(realtime.Scoped(realtime.TopicStudentNotifications, courseID.String()),
			map[string]any{"courseId": *courseID, "count": len(rows)})
	}
	return len(rows)
}
