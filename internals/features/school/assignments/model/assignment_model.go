package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AssignmentModel struct {
	AssignmentID          uuid.UUID  `gorm:"column:assignment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"assignment_id"`
	AssignmentCourseID    uuid.UUID  `gorm:"column:assignment_course_id;type:uuid;not null;index" json:"assignment_course_id"`
	AssignmentTeacherID   uuid.UUID  `gorm:"column:assignment_teacher_id;type:uuid;not null" json:"assignment_teacher_id"`
	AssignmentTitle       string     `gorm:"column:assignment_title;type:varchar(255);not null" json:"assignment_title"`
	AssignmentDescription string     `gorm:"column:assignment_description;type:text" json:"assignment_description"`
	AssignmentDueAt       *time.Time `gorm:"column:assignment_due_at" json:"assignment_due_at,omitempty"`

	AssignmentCreatedAt time.Time `gorm:"column:assignment_created_at;autoCreateTime" json:"assignment_created_at"`
	AssignmentUpdatedAt time.Time `gorm:"column:assignment_updated_at;autoUpdateTime" json:"assignment_updated_at"`
}

func (AssignmentModel) TableName() string {
	return "assignments"
}

// SubmissionModel is a student's answer to an assignment. One submission per
// (assignment, student); resubmitting overwrites.
type SubmissionModel struct {
	SubmissionID           uuid.UUID      `gorm:"column:submission_id;type:uuid;default:gen_random_uuid();primaryKey" json:"submission_id"`
	SubmissionAssignmentID uuid.UUID      `gorm:"column:submission_assignment_id;type:uuid;not null;uniqueIndex:uq_submission_assignment_student" json:"submission_assignment_id"`
	SubmissionStudentID    uuid.UUID      `gorm:"column:submission_student_id;type:uuid;not null;uniqueIndex:uq_submission_assignment_student" json:"submission_student_id"`
	SubmissionContent      string         `gorm:"column:submission_content;type:text" json:"submission_content"`
	SubmissionAttachments  datatypes.JSON `gorm:"column:submission_attachments;type:jsonb" json:"submission_attachments,omitempty"` // [{name,url}], URLs only, storage is external
	SubmissionGrade        *float64       `gorm:"column:submission_grade" json:"submission_grade,omitempty"`
	SubmissionFeedback     *string        `gorm:"column:submission_feedback;type:text" json:"submission_feedback,omitempty"`
	SubmissionGradedBy     *uuid.UUID     `gorm:"column:submission_graded_by;type:uuid" json:"submission_graded_by,omitempty"`
	SubmissionGradedAt     *time.Time     `gorm:"column:submission_graded_at" json:"submission_graded_at,omitempty"`

	SubmissionCreatedAt time.Time `gorm:"column:submission_created_at;autoCreateTime" json:"submission_created_at"`
	SubmissionUpdatedAt time.Time `gorm:"column:submission_updated_at;autoUpdateTime" json:"submission_updated_at"`
}

func (SubmissionModel) TableName() string {
	return "assignment_submissions"
}
