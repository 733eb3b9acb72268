package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schoolhub_backend/internals/features/school/schedules/model"
	"schoolhub_backend/internals/observability"
)

// SlotSnapshot holds the day/start/end of a teacher slot before an edit.
// The synchronizer uses it to find which course-table row mirrored the slot.
type SlotSnapshot struct {
	DayOfWeek string
	StartTime string
	EndTime   string
}

// Complete reports whether the snapshot carries all three fields.
func (s *SlotSnapshot) Complete() bool {
	return s != nil && s.DayOfWeek != "" && s.StartTime != "" && s.EndTime != ""
}

// SlotSynchronizer keeps the course-table mirror in step with a teacher-table
// slot after an edit. There is no foreign key between the two tables, so the
// match is a fixed best-effort heuristic:
//
//	with an old snapshot:  exact (day,start,end) match on the old values,
//	                       else the only row sharing the old day,
//	                       else the only row at all;
//	without one:           a row already equal to the new values is a no-op,
//	                       else the only row is assumed stale and updated,
//	                       else a new row is inserted.
//
// With two or more candidates and no match, it deliberately does nothing.
// Every failure here is logged and swallowed: the teacher table is
// authoritative and the caller's write must not fail over the mirror.
type SlotSynchronizer struct {
	Store *ScheduleStore
}

func NewSlotSynchronizer(store *ScheduleStore) *SlotSynchronizer {
	return &SlotSynchronizer{Store: store}
}

// SyncCourseMirror propagates an updated teacher slot to its course-table
// mirror. old is the pre-update snapshot; nil (or incomplete) means the slot
// is brand new.
func (s *SlotSynchronizer) SyncCourseMirror(ctx context.Context, slot *model.TeacherSlotModel, old *SlotSnapshot) {
	if slot.TeacherSlotCourseID == nil || slot.TeacherSlotTeacherID == uuid.Nil {
		// teacher-private slot, no course-side mirror
		return
	}
	courseID := *slot.TeacherSlotCourseID
	teacherID := slot.TeacherSlotTeacherID

	log := observability.L().With(
		zap.String("teacher_slot_id", slot.TeacherSlotID.String()),
		zap.String("course_id", courseID.String()),
		zap.String("teacher_id", teacherID.String()),
	)

	candidates, err := s.Store.ListCourseSlotsFor(ctx, courseID, teacherID)
	if err != nil {
		log.Warn("slot sync: listing course slots failed", zap.Error(err))
		return
	}

	newFields := SlotFields{
		DayOfWeek: slot.TeacherSlotDayOfWeek,
		StartTime: slot.TeacherSlotStartTime,
		EndTime:   slot.TeacherSlotEndTime,
		Location:  slot.TeacherSlotLocation,
		Notes:     slot.TeacherSlotNotes,
	}

	var target *model.CourseSlotModel
	if old.Complete() {
		target = matchForUpdate(candidates, old)
	} else {
		done, t := matchForCreate(candidates, slot)
		if done {
			return // already synchronized
		}
		target = t
	}

	if target != nil {
		if _, err := s.Store.UpdateCourseSlot(ctx, target.CourseSlotID, newFields); err != nil {
			log.Warn("slot sync: course slot update failed",
				zap.String("course_slot_id", target.CourseSlotID.String()),
				zap.Error(err))
		}
		return
	}

	if old.Complete() && len(candidates) > 0 {
		// ambiguous: several rows, none matching the old snapshot.
		// Known gap, do nothing rather than guess.
		log.Warn("slot sync: no unambiguous mirror row, skipping",
			zap.Int("candidates", len(candidates)))
		return
	}

	if _, err := s.Store.InsertCourseSlot(ctx, courseID, teacherID, newFields); err != nil {
		log.Warn("slot sync: course slot insert failed", zap.Error(err))
	}
}

// matchForUpdate picks the mirror row for an edited slot.
func matchForUpdate(candidates []model.CourseSlotModel, old *SlotSnapshot) *model.CourseSlotModel {
	// 1) exact match on the old (day, start, end)
	for i := range candidates {
		c := &candidates[i]
		if model.SameDay(c.CourseSlotDayOfWeek, old.DayOfWeek) &&
			c.CourseSlotStartTime == old.StartTime &&
			c.CourseSlotEndTime == old.EndTime {
			return c
		}
	}
	// 2) exactly one row on the old day
	var dayMatch *model.CourseSlotModel
	dayMatches := 0
	for i := range candidates {
		if model.SameDay(candidates[i].CourseSlotDayOfWeek, old.DayOfWeek) {
			dayMatch = &candidates[i]
			dayMatches++
		}
	}
	if dayMatches == 1 {
		return dayMatch
	}
	// 3) exactly one row at all: it must be the one
	if len(candidates) == 1 {
		return &candidates[0]
	}
	return nil
}

// matchForCreate handles a brand-new teacher slot. done=true means the mirror
// already matches and nothing should happen.
func matchForCreate(candidates []model.CourseSlotModel, slot *model.TeacherSlotModel) (done bool, target *model.CourseSlotModel) {
	for i := range candidates {
		c := &candidates[i]
		if model.SameDay(c.CourseSlotDayOfWeek, slot.TeacherSlotDayOfWeek) &&
			c.CourseSlotStartTime == slot.TeacherSlotStartTime &&
			c.CourseSlotEndTime == slot.TeacherSlotEndTime {
			return true, nil
		}
	}
	if len(candidates) == 1 {
		return false, &candidates[0]
	}
	return false, nil
}
