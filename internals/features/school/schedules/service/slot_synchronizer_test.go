package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolhub_backend/internals/features/school/schedules/model"
)

// sqlite stand-in for gen_random_uuid(); applied when a model is created
// without an explicit id.
const sqliteUUID = `(lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-4' || substr(hex(randomblob(2)),2) || '-' || substr('89ab', abs(random()) % 4 + 1, 1) || substr(hex(randomblob(2)),2) || '-' || hex(randomblob(6))))`

var scheduleDDL = []string{
	`CREATE TABLE teacher_schedule_slots (
		teacher_slot_id TEXT PRIMARY KEY DEFAULT ` + sqliteUUID + `,
		teacher_slot_teacher_id TEXT NOT NULL,
		teacher_slot_course_id TEXT,
		teacher_slot_day_of_week TEXT NOT NULL,
		teacher_slot_start_time TEXT NOT NULL,
		teacher_slot_end_time TEXT NOT NULL,
		teacher_slot_location TEXT,
		teacher_slot_notes TEXT,
		teacher_slot_created_at DATETIME,
		teacher_slot_updated_at DATETIME
	)`,
	`CREATE TABLE course_schedule_slots (
		course_slot_id TEXT PRIMARY KEY DEFAULT ` + sqliteUUID + `,
		course_slot_course_id TEXT NOT NULL,
		course_slot_teacher_id TEXT NOT NULL,
		course_slot_day_of_week TEXT NOT NULL,
		course_slot_start_time TEXT NOT NULL,
		course_slot_end_time TEXT NOT NULL,
		course_slot_location TEXT,
		course_slot_notes TEXT,
		course_slot_created_at DATETIME,
		course_slot_updated_at DATETIME
	)`,
	`CREATE TABLE schedule_change_requests (
		request_id TEXT PRIMARY KEY DEFAULT ` + sqliteUUID + `,
		request_slot_id TEXT NOT NULL,
		request_teacher_id TEXT NOT NULL,
		request_course_id TEXT,
		request_current_day_of_week TEXT NOT NULL,
		request_current_start_time TEXT NOT NULL,
		request_current_end_time TEXT NOT NULL,
		requested_day_of_week TEXT,
		requested_start_time TEXT,
		requested_end_time TEXT,
		request_reason TEXT NOT NULL,
		request_status TEXT NOT NULL DEFAULT 'pending',
		request_approved_by TEXT,
		request_approved_at DATETIME,
		request_declined_by TEXT,
		request_declined_at DATETIME,
		request_declined_reason TEXT,
		request_created_at DATETIME,
		request_updated_at DATETIME
	)`,
	`CREATE TABLE course_enrollments (
		enrollment_id TEXT PRIMARY KEY DEFAULT ` + sqliteUUID + `,
		enrollment_course_id TEXT NOT NULL,
		enrollment_student_id TEXT NOT NULL,
		enrollment_created_at DATETIME
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// named in-memory DB so every pooled connection sees the same data
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	for _, ddl := range scheduleDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedTeacherSlot(t *testing.T, db *gorm.DB, teacherID uuid.UUID, courseID *uuid.UUID, day, start, end string) *model.TeacherSlotModel {
	t.Helper()
	slot := model.TeacherSlotModel{
		TeacherSlotID:        uuid.New(),
		TeacherSlotTeacherID: teacherID,
		TeacherSlotCourseID:  courseID,
		TeacherSlotDayOfWeek: day,
		TeacherSlotStartTime: start,
		TeacherSlotEndTime:   end,
	}
	require.NoError(t, db.Create(&slot).Error)
	return &slot
}

func seedCourseSlot(t *testing.T, db *gorm.DB, courseID, teacherID uuid.UUID, day, start, end string) *model.CourseSlotModel {
	t.Helper()
	slot := model.CourseSlotModel{
		CourseSlotID:        uuid.New(),
		CourseSlotCourseID:  courseID,
		CourseSlotTeacherID: teacherID,
		CourseSlotDayOfWeek: day,
		CourseSlotStartTime: start,
		CourseSlotEndTime:   end,
	}
	require.NoError(t, db.Create(&slot).Error)
	return &slot
}

func courseSlots(t *testing.T, db *gorm.DB, courseID uuid.UUID) []model.CourseSlotModel {
	t.Helper()
	var slots []model.CourseSlotModel
	require.NoError(t, db.Where("course_slot_course_id = ?", courseID).
		Order("course_slot_created_at ASC").Find(&slots).Error)
	return slots
}

func TestSyncSkipsSlotWithoutCourse(t *testing.T) {
	db := newTestDB(t)
	sync := NewSlotSynchronizer(NewScheduleStore(db))

	slot := seedTeacherSlot(t, db, uuid.New(), nil, "Monday", "09:00", "10:00")
	sync.SyncCourseMirror(context.Background(), slot, nil)

	var count int64
	require.NoError(t, db.Model(&model.CourseSlotModel{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSyncNewSlotAlreadyMirrored(t *testing.T) {
	db := newTestDB(t)
	sync := NewSlotSynchronizer(NewScheduleStore(db))

	teacherID, courseID := uuid.New(), uuid.New()
	seedCourseSlot(t, db, courseID, teacherID, "monday", "09:00", "10:00")
	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")

	// run twice: a mirror row that already matches must never be duplicated
	sync.SyncCourseMirror(context.Background(), slot, nil)
	sync.SyncCourseMirror(context.Background(), slot, nil)

	slots := courseSlots(t, db, courseID)
	require.Len(t, slots, 1)
}

func TestSyncNewSlotUpdatesSoleStaleRow(t *testing.T) {
	db := newTestDB(t)
	sync := NewSlotSynchronizer(NewScheduleStore(db))

	teacherID, courseID := uuid.New(), uuid.New()
	seedCourseSlot(t, db, courseID, teacherID, "Friday", "08:00", "09:00")
	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")

	sync.SyncCourseMirror(context.Background(), slot, nil)

	slots := courseSlots(t, db, courseID)
	require.Len(t, slots, 1)
	require.Equal(t, "Monday", slots[0].CourseSlotDayOfWeek)
	require.Equal(t, "09:00", slots[0].CourseSlotStartTime)
}

func TestSyncNewSlotInsertsAmongMany(t *testing.T) {
	db := newTestDB(t)
	sync := NewSlotSynchronizer(NewScheduleStore(db))

	teacherID, courseID := uuid.New(), uuid.New()
	seedCourseSlot(t, db, courseID, teacherID, "Tuesday", "08:00", "09:00")
	seedCourseSlot(t, db, courseID, teacherID, "Friday", "10:00", "11:00")
	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")

	sync.SyncCourseMirror(context.Background(), slot, nil)

	slots := courseSlots(t, db, courseID)
	require.Len(t, slots, 3)
}

func TestSyncUpdateMovesExactOldMatch(t *testing.T) {
	db := newTestDB(t)
	sync := NewSlotSynchronizer(NewScheduleStore(db))

	teacherID, courseID := uuid.New(), uuid.New()
	match := seedCourseSlot(t, db, courseID, teacherID, "Monday", "09:00", "10:00")
	other := seedCourseSlot(t, db, courseID, teacherID, "Monday", "13:00", "14:00")

	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Wednesday", "14:00", "15:00")
	sync.SyncCourseMirror(context.Background(), slot,
		&SlotSnapshot{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"})

	var moved, untouched model.CourseSlotModel
	require.NoError(t, db.First(&moved, "course_slot_id = ?", match.CourseSlotID).Error)
	require.NoError(t, db.First(&untouched, "course_slot_id = ?", other.CourseSlotID).Error)

	require.Equal(t, "Wednesday", moved.CourseSlotDayOfWeek)
	require.Equal(t, "14:00", moved.CourseSlotStartTime)
	require.Equal(t, "15:00", moved.CourseSlotEndTime)
	require.Equal(t, "Monday", untouched.CourseSlotDayOfWeek)
	require.Equal(t, "13:00", untouched.CourseSlotStartTime)
	require.Len(t, courseSlots(t, db, courseID), 2)
}

func TestSyncUpdateFallsBackToUniqueDayMatch(t *testing.T) {
	db := newTestDB(t)
	sync := NewSlotSynchronizer(NewScheduleStore(db))

	teacherID, courseID := uuid.New(), uuid.New()
	// times drifted, but only one row sits on the old day
	drifted := seedCourseSlot(t, db, courseID, teacherID, "Monday", "09:15", "10:15")
	seedCourseSlot(t, db, courseID, teacherID, "Thursday", "09:00", "10:00")

	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Wednesday", "14:00", "15:00")
	sync.SyncCourseMirror(context.Background(), slot,
		&SlotSnapshot{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"})

	var moved model.CourseSlotModel
	require.NoError(t, db.First(&moved, "course_slot_id = ?", drifted.CourseSlotID).Error)
	require.Equal(t, "Wednesday", moved.CourseSlotDayOfWeek)
	require.Len(t, courseSlots(t, db, courseID), 2)
}

func TestSyncUpdateFallsBackToSoleCandidate(t *testing.T) {
	db := newTestDB(t)
	sync := NewSlotSynchronizer(NewScheduleStore(db))

	teacherID, courseID := uuid.New(), uuid.New()
	stale := seedCourseSlot(t, db, courseID, teacherID, "Friday", "08:00", "09:00")

	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Wednesday", "14:00", "15:00")
	sync.SyncCourseMirror(context.Background(), slot,
		&SlotSnapshot{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"})

	var moved model.CourseSlotModel
	require.NoError(t, db.First(&moved, "course_slot_id = ?", stale.CourseSlotID).Error)
	require.Equal(t, "Wednesday", moved.CourseSlotDayOfWeek)
	require.Len(t, courseSlots(t, db, courseID), 1)
}

func TestSyncUpdateWithNoCandidatesInserts(t *testing.T) {
	db := newTestDB(t)
	sync := NewSlotSynchronizer(NewScheduleStore(db))

	teacherID, courseID := uuid.New(), uuid.New()
	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Wednesday", "14:00", "15:00")

	sync.SyncCourseMirror(context.Background(), slot,
		&SlotSnapshot{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"})

	slots := courseSlots(t, db, courseID)
	require.Len(t, slots, 1)
	require.Equal(t, "Wednesday", slots[0].CourseSlotDayOfWeek)
	require.Equal(t, "14:00", slots[0].CourseSlotStartTime)
}

func TestSyncUpdateAmbiguousCandidatesSkips(t *testing.T) {
	db := newTestDB(t)
	sync := NewSlotSynchronizer(NewScheduleStore(db))

	teacherID, courseID := uuid.New(), uuid.New()
	// two rows, neither on the old day: no safe target, nothing may change
	a := seedCourseSlot(t, db, courseID, teacherID, "Tuesday", "08:00", "09:00")
	b := seedCourseSlot(t, db, courseID, teacherID, "Friday", "10:00", "11:00")

	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Wednesday", "14:00", "15:00")
	sync.SyncCourseMirror(context.Background(), slot,
		&SlotSnapshot{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"})

	slots := courseSlots(t, db, courseID)
	require.Len(t, slots, 2)
	for _, s := range slots {
		require.NotEqual(t, "Wednesday", s.CourseSlotDayOfWeek)
	}
	require.Equal(t, a.CourseSlotDayOfWeek, slots[0].CourseSlotDayOfWeek)
	require.Equal(t, b.CourseSlotDayOfWeek, slots[1].CourseSlotDayOfWeek)
}

func TestSyncUpdateAmbiguousDayMatchesPrefersExact(t *testing.T) {
	db := newTestDB(t)
	sync := NewSlotSynchronizer(NewScheduleStore(db))

	teacherID, courseID := uuid.New(), uuid.New()
	// two rows on the old day: only the exact (start, end) match may move
	exact := seedCourseSlot(t, db, courseID, teacherID, "Monday", "09:00", "10:00")
	seedCourseSlot(t, db, courseID, teacherID, "Monday", "13:00", "14:00")

	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Wednesday", "14:00", "15:00")
	sync.SyncCourseMirror(context.Background(), slot,
		&SlotSnapshot{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"})

	var moved model.CourseSlotModel
	require.NoError(t, db.First(&moved, "course_slot_id = ?", exact.CourseSlotID).Error)
	require.Equal(t, "Wednesday", moved.CourseSlotDayOfWeek)
	require.Len(t, courseSlots(t, db, courseID), 2)
}
