package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/school/courses/model"
)

// ================== REQUEST ==================

type CourseRequest struct {
	CourseName        string     `json:"course_name" validate:"required,min=2,max=160"`
	CourseCode        string     `json:"course_code" validate:"required,min=2,max=32"`
	CourseDescription string     `json:"course_description"`
	CourseTeacherID   *uuid.UUID `json:"course_teacher_id"`
}

type UpdateCourseRequest struct {
	CourseName        *string    `json:"course_name" validate:"omitempty,min=2,max=160"`
	CourseDescription *string    `json:"course_description"`
	CourseTeacherID   *uuid.UUID `json:"course_teacher_id"`
	CourseIsActive    *bool      `json:"course_is_active"`
}

type EnrollRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}

// ================== RESPONSE ==================

type CourseResponse struct {
	CourseID          uuid.UUID  `json:"course_id"`
	CourseName        string     `json:"course_name"`
	CourseCode        string     `json:"course_code"`
	CourseDescription string     `json:"course_description"`
	CourseTeacherID   *uuid.UUID `json:"course_teacher_id"`
	CourseIsActive    bool       `json:"course_is_active"`
	CourseCreatedAt   string     `json:"course_created_at"`
}

// ================ CONVERSION =================

func (r *CourseRequest) ToModel() *model.CourseModel {
	return &model.CourseModel{
		CourseName:        r.CourseName,
		CourseCode:        r.CourseCode,
		CourseDescription: r.CourseDescription,
		CourseTeacherID:   r.CourseTeacherID,
		CourseIsActive:    true,
	}
}

func ToCourseResponse(m *model.CourseModel) *CourseResponse {
	return &CourseResponse{
		CourseID:          m.CourseID,
		CourseName:        m.CourseName,
		CourseCode:        m.CourseCode,
		CourseDescription: m.CourseDescription,
		CourseTeacherID:   m.CourseTeacherID,
		CourseIsActive:    m.CourseIsActive,
		CourseCreatedAt:   m.CourseCreatedAt.Format(time.RFC3339),
	}
}

func ToCourseResponseList(models []model.CourseModel) []CourseResponse {
	out := make([]CourseResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToCourseResponse(&models[i]))
	}
	return out
}
