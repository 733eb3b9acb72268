package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// AttendanceRecordModel is one student's status for one course on one date.
// Unique per (course, student, date); re-recording overwrites.
type AttendanceRecordModel struct {
	AttendanceID        uuid.UUID `gorm:"column:attendance_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_id"`
	AttendanceCourseID  uuid.UUID `gorm:"column:attendance_course_id;type:uuid;not null;uniqueIndex:uq_attendance_course_student_date" json:"attendance_course_id"`
	AttendanceStudentID uuid.UUID `gorm:"column:attendance_student_id;type:uuid;not null;uniqueIndex:uq_attendance_course_student_date" json:"attendance_student_id"`
	AttendanceDate      string    `gorm:"column:attendance_date;type:varchar(10);not null;uniqueIndex:uq_attendance_course_student_date" json:"attendance_date"` // "YYYY-MM-DD"
	AttendanceStatus    string    `gorm:"column:attendance_status;type:varchar(10);not null" json:"attendance_status"`
	AttendanceNote      *string   `gorm:"column:attendance_note;type:text" json:"attendance_note,omitempty"`
	AttendanceTakenBy   uuid.UUID `gorm:"column:attendance_taken_by;type:uuid;not null" json:"attendance_taken_by"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}
