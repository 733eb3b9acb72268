package dto

import (
	"github.com/google/uuid"
)

// ================== REQUEST ==================

type RecordEntry struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late excused"`
	Note      *string   `json:"note"`
}

// RecordAttendanceRequest records a whole class session in one call.
type RecordAttendanceRequest struct {
	CourseID uuid.UUID     `json:"course_id" validate:"required"`
	Date     string        `json:"date" validate:"required,len=10"` // "YYYY-MM-DD"
	Entries  []RecordEntry `json:"entries" validate:"required,min=1,dive"`
}
