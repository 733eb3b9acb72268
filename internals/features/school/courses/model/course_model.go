package model

import (
	"time"

	"github.com/google/uuid"
)

type CourseModel struct {
	CourseID          uuid.UUID  `gorm:"column:course_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_id"`
	CourseName        string     `gorm:"column:course_name;type:varchar(160);not null" json:"course_name"`
	CourseCode        string     `gorm:"column:course_code;type:varchar(32);not null;unique" json:"course_code"`
	CourseDescription string     `gorm:"column:course_description;type:text" json:"course_description"`
	CourseTeacherID   *uuid.UUID `gorm:"column:course_teacher_id;type:uuid" json:"course_teacher_id"` // nullable until assigned
	CourseIsActive    bool       `gorm:"column:course_is_active;not null;default:true" json:"course_is_active"`

	CourseCreatedAt time.Time `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string {
	return "courses"
}
