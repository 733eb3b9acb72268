package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Weekday values are stored capitalized ("Monday".."Sunday"); comparisons are
// case-insensitive because older rows were written lowercase.
var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// NormalizeDay maps any casing of a weekday to the canonical form. Unknown
// input is returned trimmed, unchanged.
func NormalizeDay(day string) string {
	day = strings.TrimSpace(day)
	for _, w := range weekdays {
		if strings.EqualFold(day, w) {
			return w
		}
	}
	return day
}

// SameDay compares weekdays case-insensitively.
func SameDay(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// IsValidDay reports whether the value is one of the seven weekdays.
func IsValidDay(day string) bool {
	for _, w := range weekdays {
		if strings.EqualFold(strings.TrimSpace(day), w) {
			return true
		}
	}
	return false
}

// TeacherSlotModel is the teacher-facing view of a weekly teaching slot.
// The course-facing mirror lives in course_schedule_slots; the two are kept
// consistent by the slot synchronizer, not by the database.
type TeacherSlotModel struct {
	TeacherSlotID        uuid.UUID  `gorm:"column:teacher_slot_id;type:uuid;default:gen_random_uuid();primaryKey" json:"teacher_slot_id"`
	TeacherSlotTeacherID uuid.UUID  `gorm:"column:teacher_slot_teacher_id;type:uuid;not null;index" json:"teacher_slot_teacher_id"`
	TeacherSlotCourseID  *uuid.UUID `gorm:"column:teacher_slot_course_id;type:uuid;index" json:"teacher_slot_course_id"` // nil = teacher-private slot
	TeacherSlotDayOfWeek string     `gorm:"column:teacher_slot_day_of_week;type:varchar(10);not null" json:"teacher_slot_day_of_week"`
	TeacherSlotStartTime string     `gorm:"column:teacher_slot_start_time;type:varchar(5);not null" json:"teacher_slot_start_time"` // "HH:MM"
	TeacherSlotEndTime   string     `gorm:"column:teacher_slot_end_time;type:varchar(5);not null" json:"teacher_slot_end_time"`     // "HH:MM"
	TeacherSlotLocation  *string    `gorm:"column:teacher_slot_location;type:varchar(160)" json:"teacher_slot_location,omitempty"`
	TeacherSlotNotes     *string    `gorm:"column:teacher_slot_notes;type:text" json:"teacher_slot_notes,omitempty"`

	TeacherSlotCreatedAt time.Time `gorm:"column:teacher_slot_created_at;autoCreateTime" json:"teacher_slot_created_at"`
	TeacherSlotUpdatedAt time.Time `gorm:"column:teacher_slot_updated_at;autoUpdateTime" json:"teacher_slot_updated_at"`
}

func (TeacherSlotModel) TableName() string {
	return "teacher_schedule_slots"
}

// CourseSlotModel is the course-facing view of the same logical slot.
type CourseSlotModel struct {
	CourseSlotID        uuid.UUID `gorm:"column:course_slot_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_slot_id"`
	CourseSlotCourseID  uuid.UUID `gorm:"column:course_slot_course_id;type:uuid;not null;index" json:"course_slot_course_id"`
	CourseSlotTeacherID uuid.UUID `gorm:"column:course_slot_teacher_id;type:uuid;not null;index" json:"course_slot_teacher_id"`
	CourseSlotDayOfWeek string    `gorm:"column:course_slot_day_of_week;type:varchar(10);not null" json:"course_slot_day_of_week"`
	CourseSlotStartTime string    `gorm:"column:course_slot_start_time;type:varchar(5);not null" json:"course_slot_start_time"`
	CourseSlotEndTime   string    `gorm:"column:course_slot_end_time;type:varchar(5);not null" json:"course_slot_end_time"`
	CourseSlotLocation  *string   `gorm:"column:course_slot_location;type:varchar(160)" json:"course_slot_location,omitempty"`
	CourseSlotNotes     *string   `gorm:"column:course_slot_notes;type:text" json:"course_slot_notes,omitempty"`

	CourseSlotCreatedAt time.Time `gorm:"column:course_slot_created_at;autoCreateTime" json:"course_slot_created_at"`
	CourseSlotUpdatedAt time.Time `gorm:"column:course_slot_updated_at;autoUpdateTime" json:"course_slot_updated_at"`
}

func (CourseSlotModel) TableName() string {
	return "course_schedule_slots"
}
