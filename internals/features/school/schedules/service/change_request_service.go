package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	enrollModel "schoolhub_backend/internals/features/school/courses/model"
	"schoolhub_backend/internals/features/school/schedules/model"
	"schoolhub_backend/internals/observability"
	"schoolhub_backend/internals/realtime"
)

var (
	ErrRequestNotFound     = errors.New("schedule change request not found")
	ErrSlotNotFound        = errors.New("schedule slot not found")
	ErrAlreadyProcessed    = errors.New("schedule change request already processed")
	ErrReasonRequired      = errors.New("reason is required")
	ErrSlotNotOwned        = errors.New("slot does not belong to the requesting teacher")
	ErrInvalidRequestedDay = errors.New("requested day is not a weekday")
)

// Notifier is the fan-out collaborator. Both calls are best-effort: they log
// failures internally and never return an error.
type Notifier interface {
	NotifyOne(ctx context.Context, recipientID, senderID uuid.UUID, title, message, ntype string, courseID *uuid.UUID)
	NotifyMany(ctx context.Context, recipientIDs []uuid.UUID, senderID uuid.UUID, title, message, ntype string, courseID *uuid.UUID) int
}

// RequestedChange carries the optional requested_* fields of a submission.
type RequestedChange struct {
	DayOfWeek *string
	StartTime *string
	EndTime   *string
}

// ApproveResult reports what an approval did.
type ApproveResult struct {
	Request     *model.ChangeRequestModel
	UpdatedSlot *model.TeacherSlotModel // nil when the request carried no schedule change
}

// ChangeRequestService runs the pending → approved/declined state machine.
// The status transition is a conditional write (WHERE status = 'pending');
// a zero-row result means another admin got there first.
type ChangeRequestService struct {
	DB    *gorm.DB
	Store *ScheduleStore
	Sync  *SlotSynchronizer
	Notif Notifier
	Pub   realtime.Publisher
}

func NewChangeRequestService(db *gorm.DB, store *ScheduleStore, sync *SlotSynchronizer, notif Notifier, pub realtime.Publisher) *ChangeRequestService {
	return &ChangeRequestService{DB: db, Store: store, Sync: sync, Notif: notif, Pub: pub}
}

// Submit files a change request for a slot owned by teacherID. The slot's
// current day/start/end are frozen into the request; requested fields may be
// partial or entirely absent ("please review, no changes requested").
func (s *ChangeRequestService) Submit(ctx context.Context, teacherID, slotID uuid.UUID, requested RequestedChange, reason string) (*model.ChangeRequestModel, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	if requested.DayOfWeek != nil && !model.IsValidDay(*requested.DayOfWeek) {
		return nil, ErrInvalidRequestedDay
	}

	slot, err := s.Store.GetTeacherSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	if slot.TeacherSlotTeacherID != teacherID {
		return nil, ErrSlotNotOwned
	}

	req := model.ChangeRequestModel{
		RequestSlotID:           slot.TeacherSlotID,
		RequestTeacherID:        teacherID,
		RequestCourseID:         slot.TeacherSlotCourseID,
		RequestCurrentDayOfWeek: slot.TeacherSlotDayOfWeek,
		RequestCurrentStartTime: slot.TeacherSlotStartTime,
		RequestCurrentEndTime:   slot.TeacherSlotEndTime,
		RequestedStartTime:      requested.StartTime,
		RequestedEndTime:        requested.EndTime,
		RequestReason:           strings.TrimSpace(reason),
		RequestStatus:           model.RequestStatusPending,
	}
	if requested.DayOfWeek != nil {
		day := model.NormalizeDay(*requested.DayOfWeek)
		req.RequestedDayOfWeek = &day
	}

	if err := s.DB.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, err
	}
	// no synchronous admin notification: admins poll the pending list
	return &req, nil
}

// ListPending returns all requests still awaiting review, oldest first.
func (s *ChangeRequestService) ListPending(ctx context.Context) ([]model.ChangeRequestModel, error) {
	var reqs []model.ChangeRequestModel
	if err := s.DB.WithContext(ctx).
		Where("request_status = ?", model.RequestStatusPending).
		Order("request_created_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// Approve applies the requested change and closes the request.
//
// The status claim and the teacher-slot update run in one transaction: a
// losing racer gets ErrAlreadyProcessed with zero writes, and a failed slot
// update rolls the claim back. The mirror sync, notifications and live
// events run after commit and are best-effort.
func (s *ChangeRequestService) Approve(ctx context.Context, requestID, adminID uuid.UUID) (*ApproveResult, error) {
	var req model.ChangeRequestModel
	if err := s.DB.WithContext(ctx).
		First(&req, "request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	var updatedSlot *model.TeacherSlotModel
	now := time.Now()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ChangeRequestModel{}).
			Where("request_id = ? AND request_status = ?", requestID, model.RequestStatusPending).
			Updates(map[string]any{
				"request_status":      model.RequestStatusApproved,
				"request_approved_by": adminID,
				"request_approved_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		if !req.HasRequestedChange() {
			return nil
		}

		// requested values win; absent fields keep the frozen current value
		fields := SlotFields{
			DayOfWeek: req.RequestCurrentDayOfWeek,
			StartTime: req.RequestCurrentStartTime,
			EndTime:   req.RequestCurrentEndTime,
		}
		if req.RequestedDayOfWeek != nil {
			fields.DayOfWeek = *req.RequestedDayOfWeek
		}
		if req.RequestedStartTime != nil {
			fields.StartTime = *req.RequestedStartTime
		}
		if req.RequestedEndTime != nil {
			fields.EndTime = *req.RequestedEndTime
		}

		txStore := &ScheduleStore{DB: tx}
		slot, err := txStore.UpdateTeacherSlot(ctx, req.RequestSlotID, fields)
		if err != nil {
			return err
		}
		updatedSlot = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	req.RequestStatus = model.RequestStatusApproved
	req.RequestApprovedBy = &adminID
	req.RequestApprovedAt = &now

	if updatedSlot != nil {
		s.Sync.SyncCourseMirror(ctx, updatedSlot, &SlotSnapshot{
			DayOfWeek: req.RequestCurrentDayOfWeek,
			StartTime: req.RequestCurrentStartTime,
			EndTime:   req.RequestCurrentEndTime,
		})
	}

	s.notifyApproval(ctx, &req, updatedSlot, adminID)

	return &ApproveResult{Request: &req, UpdatedSlot: updatedSlot}, nil
}

func (s *ChangeRequestService) notifyApproval(ctx context.Context, req *model.ChangeRequestModel, updatedSlot *model.TeacherSlotModel, adminID uuid.UUID) {
	before := scheduleSummary(req.RequestCurrentDayOfWeek, req.RequestCurrentStartTime, req.RequestCurrentEndTime)

	if updatedSlot == nil {
		s.Notif.NotifyOne(ctx, req.RequestTeacherID, adminID,
			"Schedule change approved",
			fmt.Sprintf("Your request for the %s slot was approved. No schedule fields were changed.", before),
			"schedule_change_approved", req.RequestCourseID)
		s.Pub.Publish(realtime.Scoped(realtime.TopicTeacherNotifications, req.RequestTeacherID.String()),
			map[string]any{"teacherId": req.RequestTeacherID})
		return
	}

	after := scheduleSummary(updatedSlot.TeacherSlotDayOfWeek, updatedSlot.TeacherSlotStartTime, updatedSlot.TeacherSlotEndTime)

	s.Notif.NotifyOne(ctx, req.RequestTeacherID, adminID,
		"Schedule change approved",
		fmt.Sprintf("Your schedule change was approved: %s is now %s.", before, after),
		"schedule_change_approved", req.RequestCourseID)

	if req.RequestCourseID != nil {
		courseID := *req.RequestCourseID
		students, err := s.enrolledStudents(ctx, courseID)
		if err != nil {
			observability.L().Warn("approve: listing enrolled students failed",
				zap.String("course_id", courseID.String()), zap.Error(err))
		} else if len(students) > 0 {
			s.Notif.NotifyMany(ctx, students, adminID,
				"Class schedule updated",
				fmt.Sprintf("Your class schedule changed: %s moved to %s.", before, after),
				"schedule_updated", req.RequestCourseID)
		}
		s.Pub.Publish(realtime.Scoped(realtime.TopicStudentTimetable, courseID.String()),
			map[string]any{"courseId": courseID})
		s.Pub.Publish(realtime.Scoped(realtime.TopicStudentNotifications, courseID.String()),
			map[string]any{"courseId": courseID})
	}

	s.Pub.Publish(realtime.Scoped(realtime.TopicTeacherNotifications, req.RequestTeacherID.String()),
		map[string]any{"teacherId": req.RequestTeacherID})
	s.Pub.Publish(realtime.TopicAdminNotifications,
		map[string]any{"event": "schedule_change_approved"})
	s.Pub.Publish(realtime.TopicScheduleUpdated, map[string]any{
		"teacherId": req.RequestTeacherID,
		"slotId":    req.RequestSlotID,
		"courseId":  req.RequestCourseID,
	})
}

// Decline closes the request without touching any slot.
func (s *ChangeRequestService) Decline(ctx context.Context, requestID, adminID uuid.UUID, reason string) error {
	var req model.ChangeRequestModel
	if err := s.DB.WithContext(ctx).
		First(&req, "request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	now := time.Now()
	updates := map[string]any{
		"request_status":      model.RequestStatusDeclined,
		"request_declined_by": adminID,
		"request_declined_at": now,
	}
	reason = strings.TrimSpace(reason)
	if reason != "" {
		updates["request_declined_reason"] = reason
	}

	res := s.DB.WithContext(ctx).Model(&model.ChangeRequestModel{}).
		Where("request_id = ? AND request_status = ?", requestID, model.RequestStatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyProcessed
	}

	msg := "Your schedule change request was declined."
	if reason != "" {
		msg = fmt.Sprintf("Your schedule change request was declined: %s", reason)
	}
	s.Notif.NotifyOne(ctx, req.RequestTeacherID, adminID,
		"Schedule change declined", msg, "schedule_change_declined", req.RequestCourseID)

	s.Pub.Publish(realtime.Scoped(realtime.TopicTeacherNotifications, req.RequestTeacherID.String()),
		map[string]any{"teacherId": req.RequestTeacherID})
	s.Pub.Publish(realtime.TopicAdminNotifications,
		map[string]any{"event": "schedule_change_declined"})

	return nil
}

func (s *ChangeRequestService) enrolledStudents(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := s.DB.WithContext(ctx).
		Model(&enrollModel.EnrollmentModel{}).
		Where("enrollment_course_id = ?", courseID).
		Pluck("enrollment_student_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// scheduleSummary renders "Wednesday 14:00-15:00".
func scheduleSummary(day, start, end string) string {
	return fmt.Sprintf("%s %s-%s", model.NormalizeDay(day), start, end)
}
