package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/school/schedules/model"
)

// ================== REQUEST ==================

type CreateSlotRequest struct {
	TeacherID uuid.UUID  `json:"teacher_id" validate:"required"`
	CourseID  *uuid.UUID `json:"course_id"`
	DayOfWeek string     `json:"day_of_week" validate:"required"`
	StartTime string     `json:"start_time" validate:"required,len=5"`
	EndTime   string     `json:"end_time" validate:"required,len=5"`
	Location  *string    `json:"location"`
	Notes     *string    `json:"notes"`
}

type UpdateSlotRequest struct {
	DayOfWeek string  `json:"day_of_week" validate:"required"`
	StartTime string  `json:"start_time" validate:"required,len=5"`
	EndTime   string  `json:"end_time" validate:"required,len=5"`
	Location  *string `json:"location"`
	Notes     *string `json:"notes"`
}

// ================== RESPONSE ==================

type TeacherSlotResponse struct {
	TeacherSlotID uuid.UUID  `json:"teacher_slot_id"`
	TeacherID     uuid.UUID  `json:"teacher_id"`
	CourseID      *uuid.UUID `json:"course_id"`
	DayOfWeek     string     `json:"day_of_week"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Location      *string    `json:"location,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     string     `json:"created_at"`
}

type CourseSlotResponse struct {
	CourseSlotID uuid.UUID `json:"course_slot_id"`
	CourseID     uuid.UUID `json:"course_id"`
	TeacherID    uuid.UUID `json:"teacher_id"`
	DayOfWeek    string    `json:"day_of_week"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Location     *string   `json:"location,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

// ================ CONVERSION =================

func ToTeacherSlotResponse(m *model.TeacherSlotModel) *TeacherSlotResponse {
	return &TeacherSlotResponse{
		TeacherSlotID: m.TeacherSlotID,
		TeacherID:     m.TeacherSlotTeacherID,
		CourseID:      m.TeacherSlotCourseID,
		DayOfWeek:     m.TeacherSlotDayOfWeek,
		StartTime:     m.TeacherSlotStartTime,
		EndTime:       m.TeacherSlotEndTime,
		Location:      m.TeacherSlotLocation,
		Notes:         m.TeacherSlotNotes,
		CreatedAt:     m.TeacherSlotCreatedAt.Format(time.RFC3339),
	}
}

func ToTeacherSlotResponseList(models []model.TeacherSlotModel) []TeacherSlotResponse {
	out := make([]TeacherSlotResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToTeacherSlotResponse(&models[i]))
	}
	return out
}

func ToCourseSlotResponse(m *model.CourseSlotModel) *CourseSlotResponse {
	return &CourseSlotResponse{
		CourseSlotID: m.CourseSlotID,
		CourseID:     m.CourseSlotCourseID,
		TeacherID:    m.CourseSlotTeacherID,
		DayOfWeek:    m.CourseSlotDayOfWeek,
		StartTime:    m.CourseSlotStartTime,
		EndTime:      m.CourseSlotEndTime,
		Location:     m.CourseSlotLocation,
		Notes:        m.CourseSlotNotes,
	}
}

func ToCourseSlotResponseList(models []model.CourseSlotModel) []CourseSlotResponse {
	out := make([]CourseSlotResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToCourseSlotResponse(&models[i]))
	}
	return out
}
