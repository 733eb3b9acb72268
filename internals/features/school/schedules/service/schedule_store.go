package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/schedules/model"
)

// SlotFields carries the mutable slot values for store updates and inserts.
// Location and Notes stay pointers so "not provided" is distinguishable from
// "cleared".
type SlotFields struct {
	DayOfWeek string
	StartTime string
	EndTime   string
	Location  *string
	Notes     *string
}

// ScheduleStore is the only code that touches the two physical slot tables.
// A logical slot has one row in teacher_schedule_slots and one in
// course_schedule_slots; nothing outside this package may query both.
type ScheduleStore struct {
	DB *gorm.DB
}

func NewScheduleStore(db *gorm.DB) *ScheduleStore {
	return &ScheduleStore{DB: db}
}

// GetTeacherSlot returns the teacher-table row, or gorm.ErrRecordNotFound.
func (s *ScheduleStore) GetTeacherSlot(ctx context.Context, slotID uuid.UUID) (*model.TeacherSlotModel, error) {
	var slot model.TeacherSlotModel
	if err := s.DB.WithContext(ctx).
		First(&slot, "teacher_slot_id = ?", slotID).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListCourseSlotsFor returns every course-table row for the (course, teacher)
// pair. Zero, one, or many rows are all normal.
func (s *ScheduleStore) ListCourseSlotsFor(ctx context.Context, courseID, teacherID uuid.UUID) ([]model.CourseSlotModel, error) {
	var slots []model.CourseSlotModel
	if err := s.DB.WithContext(ctx).
		Where("course_slot_course_id = ? AND course_slot_teacher_id = ?", courseID, teacherID).
		Order("course_slot_created_at ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// UpdateTeacherSlot writes the new values to the teacher-table row and
// returns the updated row. Storage errors propagate verbatim.
func (s *ScheduleStore) UpdateTeacherSlot(ctx context.Context, slotID uuid.UUID, fields SlotFields) (*model.TeacherSlotModel, error) {
	updates := map[string]any{
		"teacher_slot_day_of_week": model.NormalizeDay(fields.DayOfWeek),
		"teacher_slot_start_time":  fields.StartTime,
		"teacher_slot_end_time":    fields.EndTime,
	}
	if fields.Location != nil {
		updates["teacher_slot_location"] = *fields.Location
	}
	if fields.Notes != nil {
		updates["teacher_slot_notes"] = *fields.Notes
	}

	if err := s.DB.WithContext(ctx).Model(&model.TeacherSlotModel{}).
		Where("teacher_slot_id = ?", slotID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetTeacherSlot(ctx, slotID)
}

// UpdateCourseSlot writes the new values to the course-table row.
func (s *ScheduleStore) UpdateCourseSlot(ctx context.Context, slotID uuid.UUID, fields SlotFields) (*model.CourseSlotModel, error) {
	updates := map[string]any{
		"course_slot_day_of_week": model.NormalizeDay(fields.DayOfWeek),
		"course_slot_start_time":  fields.StartTime,
		"course_slot_end_time":    fields.EndTime,
	}
	if fields.Location != nil {
		updates["course_slot_location"] = *fields.Location
	}
	if fields.Notes != nil {
		updates["course_slot_notes"] = *fields.Notes
	}

	if err := s.DB.WithContext(ctx).Model(&model.CourseSlotModel{}).
		Where("course_slot_id = ?", slotID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	var slot model.CourseSlotModel
	if err := s.DB.WithContext(ctx).
		First(&slot, "course_slot_id = ?", slotID).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// InsertCourseSlot creates a new course-table row.
func (s *ScheduleStore) InsertCourseSlot(ctx context.Context, courseID, teacherID uuid.UUID, fields SlotFields) (*model.CourseSlotModel, error) {
	slot := model.CourseSlotModel{
		CourseSlotCourseID:  courseID,
		CourseSlotTeacherID: teacherID,
		CourseSlotDayOfWeek: model.NormalizeDay(fields.DayOfWeek),
		CourseSlotStartTime: fields.StartTime,
		CourseSlotEndTime:   fields.EndTime,
		CourseSlotLocation:  fields.Location,
		CourseSlotNotes:     fields.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}
