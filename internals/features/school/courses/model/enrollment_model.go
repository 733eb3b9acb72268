package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentModel links a student to a course. Unique per (course, student).
type EnrollmentModel struct {
	EnrollmentID        uuid.UUID `gorm:"column:enrollment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"enrollment_id"`
	EnrollmentCourseID  uuid.UUID `gorm:"column:enrollment_course_id;type:uuid;not null;uniqueIndex:uq_enrollment_course_student" json:"enrollment_course_id"`
	EnrollmentStudentID uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;uniqueIndex:uq_enrollment_course_student" json:"enrollment_student_id"`

	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
}

func (EnrollmentModel) TableName() string {
	return "course_enrollments"
}
