package model

import (
	"time"

	"github.com/google/uuid"
)

// Request status values. Transitions are one-way: pending → approved or
// pending → declined, nothing reopens.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusDeclined = "declined"
)

// ChangeRequestModel is a teacher's request to move one of their slots.
// The current_* fields freeze the slot values at submission time; the
// requested_* fields are optional; absent means "keep current".
type ChangeRequestModel struct {
	RequestID        uuid.UUID  `gorm:"column:request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"request_id"`
	RequestSlotID    uuid.UUID  `gorm:"column:request_slot_id;type:uuid;not null;index" json:"request_slot_id"`
	RequestTeacherID uuid.UUID  `gorm:"column:request_teacher_id;type:uuid;not null;index" json:"request_teacher_id"`
	RequestCourseID  *uuid.UUID `gorm:"column:request_course_id;type:uuid" json:"request_course_id"`

	RequestCurrentDayOfWeek string `gorm:"column:request_current_day_of_week;type:varchar(10);not null" json:"request_current_day_of_week"`
	RequestCurrentStartTime string `gorm:"column:request_current_start_time;type:varchar(5);not null" json:"request_current_start_time"`
	RequestCurrentEndTime   string `gorm:"column:request_current_end_time;type:varchar(5);not null" json:"request_current_end_time"`

	RequestedDayOfWeek *string `gorm:"column:requested_day_of_week;type:varchar(10)" json:"requested_day_of_week,omitempty"`
	RequestedStartTime *string `gorm:"column:requested_start_time;type:varchar(5)" json:"requested_start_time,omitempty"`
	RequestedEndTime   *string `gorm:"column:requested_end_time;type:varchar(5)" json:"requested_end_time,omitempty"`

	RequestReason string `gorm:"column:request_reason;type:text;not null" json:"request_reason"`
	RequestStatus string `gorm:"column:request_status;type:varchar(20);not null;default:'pending';index" json:"request_status"`

	RequestApprovedBy     *uuid.UUID `gorm:"column:request_approved_by;type:uuid" json:"request_approved_by,omitempty"`
	RequestApprovedAt     *time.Time `gorm:"column:request_approved_at" json:"request_approved_at,omitempty"`
	RequestDeclinedBy     *uuid.UUID `gorm:"column:request_declined_by;type:uuid" json:"request_declined_by,omitempty"`
	RequestDeclinedAt     *time.Time `gorm:"column:request_declined_at" json:"request_declined_at,omitempty"`
	RequestDeclinedReason *string    `gorm:"column:request_declined_reason;type:text" json:"request_declined_reason,omitempty"`

	RequestCreatedAt time.Time `gorm:"column:request_created_at;autoCreateTime" json:"request_created_at"`
	RequestUpdatedAt time.Time `gorm:"column:request_updated_at;autoUpdateTime" json:"request_updated_at"`
}

func (ChangeRequestModel) TableName() string {
	return "schedule_change_requests"
}

// HasRequestedChange reports whether any requested_* field is present.
// The approval path applies a slot update whenever this is true, even when
// the requested values equal the current snapshot.
func (r *ChangeRequestModel) HasRequestedChange() bool {
	return r.RequestedDayOfWeek != nil || r.RequestedStartTime != nil || r.RequestedEndTime != nil
}
