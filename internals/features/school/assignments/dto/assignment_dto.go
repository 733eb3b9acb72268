package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schoolhub_backend/internals/features/school/assignments/model"
)

// ================== REQUEST ==================

type AssignmentRequest struct {
	CourseID    uuid.UUID  `json:"course_id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
}

type SubmitRequest struct {
	Content     string         `json:"content"`
	Attachments datatypes.JSON `json:"attachments"`
}

type GradeRequest struct {
	Grade    float64 `json:"grade" validate:"min=0,max=100"`
	Feedback *string `json:"feedback"`
}

// ================== RESPONSE ==================

type AssignmentResponse struct {
	AssignmentID uuid.UUID  `json:"assignment_id"`
	CourseID     uuid.UUID  `json:"course_id"`
	TeacherID    uuid.UUID  `json:"teacher_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	CreatedAt    string     `json:"created_at"`
}

// ================ CONVERSION =================

func ToAssignmentResponse(m *model.AssignmentModel) *AssignmentResponse {
	return &AssignmentResponse{
		AssignmentID: m.AssignmentID,
		CourseID:     m.AssignmentCourseID,
		TeacherID:    m.AssignmentTeacherID,
		Title:        m.AssignmentTitle,
		Description:  m.AssignmentDescription,
		DueAt:        m.AssignmentDueAt,
		CreatedAt:    m.AssignmentCreatedAt.Format(time.RFC3339),
	}
}

func ToAssignmentResponseList(models []model.AssignmentModel) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToAssignmentResponse(&models[i]))
	}
	return out
}
