package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/school/schedules/model"
)

// ================== REQUEST ==================

type SubmitChangeRequest struct {
	SlotID             uuid.UUID `json:"slot_id" validate:"required"`
	RequestedDayOfWeek *string   `json:"requested_day_of_week"`
	RequestedStartTime *string   `json:"requested_start_time" validate:"omitempty,len=5"`
	RequestedEndTime   *string   `json:"requested_end_time" validate:"omitempty,len=5"`
	Reason             string    `json:"reason" validate:"required"`
}

type DeclineRequest struct {
	DeclineReason string `json:"decline_reason"`
}

// ================== RESPONSE ==================

type ChangeRequestResponse struct {
	RequestID        uuid.UUID  `json:"request_id"`
	SlotID           uuid.UUID  `json:"slot_id"`
	TeacherID        uuid.UUID  `json:"teacher_id"`
	CourseID         *uuid.UUID `json:"course_id"`
	CurrentDayOfWeek string     `json:"current_day_of_week"`
	CurrentStartTime string     `json:"current_start_time"`
	CurrentEndTime   string     `json:"current_end_time"`
	RequestedDay     *string    `json:"requested_day_of_week,omitempty"`
	RequestedStart   *string    `json:"requested_start_time,omitempty"`
	RequestedEnd     *string    `json:"requested_end_time,omitempty"`
	Reason           string     `json:"reason"`
	Status           string     `json:"status"`
	DeclinedReason   *string    `json:"declined_reason,omitempty"`
	CreatedAt        string     `json:"created_at"`
}

// ================ CONVERSION =================

func ToChangeRequestResponse(m *model.ChangeRequestModel) *ChangeRequestResponse {
	return &ChangeRequestResponse{
		RequestID:        m.RequestID,
		SlotID:           m.RequestSlotID,
		TeacherID:        m.RequestTeacherID,
		CourseID:         m.RequestCourseID,
		CurrentDayOfWeek: m.RequestCurrentDayOfWeek,
		CurrentStartTime: m.RequestCurrentStartTime,
		CurrentEndTime:   m.RequestCurrentEndTime,
		RequestedDay:     m.RequestedDayOfWeek,
		RequestedStart:   m.RequestedStartTime,
		RequestedEnd:     m.RequestedEndTime,
		Reason:           m.RequestReason,
		Status:           m.RequestStatus,
		DeclinedReason:   m.RequestDeclinedReason,
		CreatedAt:        m.RequestCreatedAt.Format(time.RFC3339),
	}
}

func ToChangeRequestResponseList(models []model.ChangeRequestModel) []ChangeRequestResponse {
	out := make([]ChangeRequestResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToChangeRequestResponse(&models[i]))
	}
	return out
}
