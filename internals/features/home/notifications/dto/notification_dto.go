package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/home/notifications/model"
)

// ================== REQUEST ==================

// BroadcastRequest is an admin broadcast; course_id nil means every active
// user of the course-less (global) audience resolved by the controller.
type BroadcastRequest struct {
	Title    string     `json:"title" validate:"required,max=255"`
	Message  string     `json:"message" validate:"required"`
	Type     string     `json:"type" validate:"required,max=50"`
	CourseID *uuid.UUID `json:"course_id"`
}

// ================== RESPONSE ==================

type NotificationResponse struct {
	NotificationID          uuid.UUID  `json:"notification_id"`
	NotificationRecipientID uuid.UUID  `json:"notification_recipient_id"`
	NotificationSenderID    uuid.UUID  `json:"notification_sender_id"`
	NotificationTitle       string     `json:"notification_title"`
	NotificationMessage     string     `json:"notification_message"`
	NotificationType        string     `json:"notification_type"`
	NotificationChannels    []string   `json:"notification_channels"`
	NotificationCourseID    *uuid.UUID `json:"notification_course_id"`
	NotificationReadAt      *string    `json:"notification_read_at,omitempty"`
	NotificationCreatedAt   string     `json:"notification_created_at"`
}

// ================ CONVERSION =================

func ToNotificationResponse(m *model.NotificationModel) *NotificationResponse {
	resp := &NotificationResponse{
		NotificationID:          m.NotificationID,
		NotificationRecipientID: m.NotificationRecipientID,
		NotificationSenderID:    m.NotificationSenderID,
		NotificationTitle:       m.NotificationTitle,
		NotificationMessage:     m.NotificationMessage,
		NotificationType:        m.NotificationType,
		NotificationChannels:    m.NotificationChannels,
		NotificationCourseID:    m.NotificationCourseID,
		NotificationCreatedAt:   m.NotificationCreatedAt.Format(time.RFC3339),
	}
	if m.NotificationReadAt != nil {
		readAt := m.NotificationReadAt.Format(time.RFC3339)
		resp.NotificationReadAt = &readAt
	}
	return resp
}

func ToNotificationResponseList(models []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToNotificationResponse(&models[i]))
	}
	return out
}
