package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	enrollModel "schoolhub_backend/internals/features/school/courses/model"
	"schoolhub_backend/internals/features/school/schedules/model"
)

// ==========================
// Fakes
// ==========================

type sentNotification struct {
	RecipientIDs []uuid.UUID
	SenderID     uuid.UUID
	Title        string
	Message      string
	Type         string
	CourseID     *uuid.UUID
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) NotifyOne(_ context.Context, recipientID, senderID uuid.UUID, title, message, ntype string, courseID *uuid.UUID) {
	f.sent = append(f.sent, sentNotification{
		RecipientIDs: []uuid.UUID{recipientID},
		SenderID:     senderID,
		Title:        title,
		Message:      message,
		Type:         ntype,
		CourseID:     courseID,
	})
}

func (f *fakeNotifier) NotifyMany(_ context.Context, recipientIDs []uuid.UUID, senderID uuid.UUID, title, message, ntype string, courseID *uuid.UUID) int {
	f.sent = append(f.sent, sentNotification{
		RecipientIDs: recipientIDs,
		SenderID:     senderID,
		Title:        title,
		Message:      message,
		Type:         ntype,
		CourseID:     courseID,
	})
	return len(recipientIDs)
}

func (f *fakeNotifier) byTitle(title string) *sentNotification {
	for i := range f.sent {
		if f.sent[i].Title == title {
			return &f.sent[i]
		}
	}
	return nil
}

type publishedEvent struct {
	Topic   string
	Payload any
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) Publish(topic string, payload any) {
	f.events = append(f.events, publishedEvent{Topic: topic, Payload: payload})
}

func (f *fakePublisher) topics() []string {
	out := make([]string, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Topic)
	}
	return out
}

func newRequestService(db *gorm.DB) (*ChangeRequestService, *fakeNotifier, *fakePublisher) {
	store := NewScheduleStore(db)
	notif := &fakeNotifier{}
	pub := &fakePublisher{}
	return NewChangeRequestService(db, store, NewSlotSynchronizer(store), notif, pub), notif, pub
}

func strPtr(s string) *string { return &s }

// ==========================
// Submit
// ==========================

func TestSubmitRequiresReason(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newRequestService(db)

	_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), RequestedChange{}, "   ")
	require.ErrorIs(t, err, ErrReasonRequired)
}

func TestSubmitRejectsUnknownDay(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newRequestService(db)

	_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(),
		RequestedChange{DayOfWeek: strPtr("Funday")}, "room conflict")
	require.ErrorIs(t, err, ErrInvalidRequestedDay)
}

func TestSubmitUnknownSlot(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newRequestService(db)

	_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), RequestedChange{}, "room conflict")
	require.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSubmitRejectsForeignSlot(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newRequestService(db)

	slot := seedTeacherSlot(t, db, uuid.New(), nil, "Monday", "09:00", "10:00")
	_, err := svc.Submit(context.Background(), uuid.New(), slot.TeacherSlotID, RequestedChange{}, "room conflict")
	require.ErrorIs(t, err, ErrSlotNotOwned)
}

func TestSubmitFreezesCurrentSchedule(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newRequestService(db)

	teacherID, courseID := uuid.New(), uuid.New()
	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")

	req, err := svc.Submit(context.Background(), teacherID, slot.TeacherSlotID,
		RequestedChange{DayOfWeek: strPtr("wednesday"), StartTime: strPtr("14:00"), EndTime: strPtr("15:00")},
		"  room conflict  ")
	require.NoError(t, err)

	assert.Equal(t, "Monday", req.RequestCurrentDayOfWeek)
	assert.Equal(t, "09:00", req.RequestCurrentStartTime)
	assert.Equal(t, "10:00", req.RequestCurrentEndTime)
	require.NotNil(t, req.RequestedDayOfWeek)
	assert.Equal(t, "Wednesday", *req.RequestedDayOfWeek) // normalized casing
	assert.Equal(t, "room conflict", req.RequestReason)
	assert.Equal(t, model.RequestStatusPending, req.RequestStatus)

	// moving the slot afterwards must not touch the frozen snapshot
	_, err = svc.Store.UpdateTeacherSlot(context.Background(), slot.TeacherSlotID,
		SlotFields{DayOfWeek: "Friday", StartTime: "11:00", EndTime: "12:00"})
	require.NoError(t, err)

	var stored model.ChangeRequestModel
	require.NoError(t, db.First(&stored, "request_slot_id = ?", slot.TeacherSlotID).Error)
	assert.Equal(t, "Monday", stored.RequestCurrentDayOfWeek)
	assert.Equal(t, "09:00", stored.RequestCurrentStartTime)
}

// ==========================
// Approve
// ==========================

func submitRequest(t *testing.T, svc *ChangeRequestService, teacherID, slotID uuid.UUID, requested RequestedChange) uuid.UUID {
	t.Helper()
	_, err := svc.Submit(context.Background(), teacherID, slotID, requested, "room conflict")
	require.NoError(t, err)

	var stored model.ChangeRequestModel
	require.NoError(t, svc.DB.First(&stored, "request_slot_id = ?", slotID).Error)
	return stored.RequestID
}

func TestApproveAppliesChangeEverywhere(t *testing.T) {
	db := newTestDB(t)
	svc, notif, pub := newRequestService(db)

	teacherID, courseID, adminID := uuid.New(), uuid.New(), uuid.New()
	studentA, studentB := uuid.New(), uuid.New()

	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")
	seedCourseSlot(t, db, courseID, teacherID, "Monday", "09:00", "10:00")
	for _, sid := range []uuid.UUID{studentA, studentB} {
		require.NoError(t, db.Create(&enrollModel.EnrollmentModel{
			EnrollmentID:        uuid.New(),
			EnrollmentCourseID:  courseID,
			EnrollmentStudentID: sid,
		}).Error)
	}

	reqID := submitRequest(t, svc, teacherID, slot.TeacherSlotID,
		RequestedChange{DayOfWeek: strPtr("Wednesday"), StartTime: strPtr("14:00"), EndTime: strPtr("15:00")})

	res, err := svc.Approve(context.Background(), reqID, adminID)
	require.NoError(t, err)
	require.NotNil(t, res.UpdatedSlot)

	// teacher table
	updated, err := svc.Store.GetTeacherSlot(context.Background(), slot.TeacherSlotID)
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", updated.TeacherSlotDayOfWeek)
	assert.Equal(t, "14:00", updated.TeacherSlotStartTime)
	assert.Equal(t, "15:00", updated.TeacherSlotEndTime)

	// course mirror followed
	mirror := courseSlots(t, db, courseID)
	require.Len(t, mirror, 1)
	assert.Equal(t, "Wednesday", mirror[0].CourseSlotDayOfWeek)
	assert.Equal(t, "14:00", mirror[0].CourseSlotStartTime)

	// request closed with audit fields
	var stored model.ChangeRequestModel
	require.NoError(t, db.First(&stored, "request_id = ?", reqID).Error)
	assert.Equal(t, model.RequestStatusApproved, stored.RequestStatus)
	require.NotNil(t, stored.RequestApprovedBy)
	assert.Equal(t, adminID, *stored.RequestApprovedBy)
	assert.NotNil(t, stored.RequestApprovedAt)

	// teacher notification carries old and new schedule
	teacherNote := notif.byTitle("Schedule change approved")
	require.NotNil(t, teacherNote)
	assert.Equal(t, []uuid.UUID{teacherID}, teacherNote.RecipientIDs)
	assert.Contains(t, teacherNote.Message, "Monday 09:00-10:00")
	assert.Contains(t, teacherNote.Message, "Wednesday 14:00-15:00")

	// every enrolled student gets the bulk notification
	studentNote := notif.byTitle("Class schedule updated")
	require.NotNil(t, studentNote)
	assert.ElementsMatch(t, []uuid.UUID{studentA, studentB}, studentNote.RecipientIDs)
	assert.Contains(t, studentNote.Message, "moved to Wednesday 14:00-15:00")

	// live events for every affected surface
	topics := pub.topics()
	assert.Contains(t, topics, "student-timetable-refresh:"+courseID.String())
	assert.Contains(t, topics, "student-notifications-refresh:"+courseID.String())
	assert.Contains(t, topics, "teacher-notifications-refresh:"+teacherID.String())
	assert.Contains(t, topics, "admin-notifications-refresh")
	assert.Contains(t, topics, "schedule-updated")
}

func TestApprovePartialRequestKeepsAbsentFields(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newRequestService(db)

	teacherID, courseID, adminID := uuid.New(), uuid.New(), uuid.New()
	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")

	// only the start time moves
	reqID := submitRequest(t, svc, teacherID, slot.TeacherSlotID,
		RequestedChange{StartTime: strPtr("09:30")})

	res, err := svc.Approve(context.Background(), reqID, adminID)
	require.NoError(t, err)
	require.NotNil(t, res.UpdatedSlot)
	assert.Equal(t, "Monday", res.UpdatedSlot.TeacherSlotDayOfWeek)
	assert.Equal(t, "09:30", res.UpdatedSlot.TeacherSlotStartTime)
	assert.Equal(t, "10:00", res.UpdatedSlot.TeacherSlotEndTime)
}

func TestApproveWithoutRequestedChange(t *testing.T) {
	db := newTestDB(t)
	svc, notif, _ := newRequestService(db)

	teacherID, courseID, adminID := uuid.New(), uuid.New(), uuid.New()
	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")

	reqID := submitRequest(t, svc, teacherID, slot.TeacherSlotID, RequestedChange{})

	res, err := svc.Approve(context.Background(), reqID, adminID)
	require.NoError(t, err)
	assert.Nil(t, res.UpdatedSlot)

	// slot untouched, teacher still told
	unchanged, err := svc.Store.GetTeacherSlot(context.Background(), slot.TeacherSlotID)
	require.NoError(t, err)
	assert.Equal(t, "Monday", unchanged.TeacherSlotDayOfWeek)

	teacherNote := notif.byTitle("Schedule change approved")
	require.NotNil(t, teacherNote)
	assert.Contains(t, teacherNote.Message, "No schedule fields were changed")
}

func TestApproveUnknownRequest(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newRequestService(db)

	_, err := svc.Approve(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestApproveTwiceIsRejectedWithoutWrites(t *testing.T) {
	db := newTestDB(t)
	svc, notif, _ := newRequestService(db)

	teacherID, courseID := uuid.New(), uuid.New()
	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")

	reqID := submitRequest(t, svc, teacherID, slot.TeacherSlotID,
		RequestedChange{DayOfWeek: strPtr("Wednesday"), StartTime: strPtr("14:00"), EndTime: strPtr("15:00")})

	firstAdmin, secondAdmin := uuid.New(), uuid.New()
	_, err := svc.Approve(context.Background(), reqID, firstAdmin)
	require.NoError(t, err)
	sentAfterFirst := len(notif.sent)

	_, err = svc.Approve(context.Background(), reqID, secondAdmin)
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	// the losing admin leaves no trace: audit fields, slot and
	// notifications all stay as the first approval left them
	var stored model.ChangeRequestModel
	require.NoError(t, db.First(&stored, "request_id = ?", reqID).Error)
	require.NotNil(t, stored.RequestApprovedBy)
	assert.Equal(t, firstAdmin, *stored.RequestApprovedBy)

	updated, err := svc.Store.GetTeacherSlot(context.Background(), slot.TeacherSlotID)
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", updated.TeacherSlotDayOfWeek)
	assert.Equal(t, sentAfterFirst, len(notif.sent))
}

// ==========================
// Decline
// ==========================

func TestDeclineClosesRequestWithoutSlotChange(t *testing.T) {
	db := newTestDB(t)
	svc, notif, pub := newRequestService(db)

	teacherID, courseID, adminID := uuid.New(), uuid.New(), uuid.New()
	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")
	seedCourseSlot(t, db, courseID, teacherID, "Monday", "09:00", "10:00")

	reqID := submitRequest(t, svc, teacherID, slot.TeacherSlotID,
		RequestedChange{DayOfWeek: strPtr("Wednesday")})

	require.NoError(t, svc.Decline(context.Background(), reqID, adminID, "no free rooms that day"))

	var stored model.ChangeRequestModel
	require.NoError(t, db.First(&stored, "request_id = ?", reqID).Error)
	assert.Equal(t, model.RequestStatusDeclined, stored.RequestStatus)
	require.NotNil(t, stored.RequestDeclinedBy)
	assert.Equal(t, adminID, *stored.RequestDeclinedBy)
	require.NotNil(t, stored.RequestDeclinedReason)
	assert.Equal(t, "no free rooms that day", *stored.RequestDeclinedReason)

	// both tables keep the original schedule
	unchanged, err := svc.Store.GetTeacherSlot(context.Background(), slot.TeacherSlotID)
	require.NoError(t, err)
	assert.Equal(t, "Monday", unchanged.TeacherSlotDayOfWeek)
	mirror := courseSlots(t, db, courseID)
	require.Len(t, mirror, 1)
	assert.Equal(t, "Monday", mirror[0].CourseSlotDayOfWeek)

	teacherNote := notif.byTitle("Schedule change declined")
	require.NotNil(t, teacherNote)
	assert.Contains(t, teacherNote.Message, "no free rooms that day")
	assert.Contains(t, pub.topics(), "teacher-notifications-refresh:"+teacherID.String())
}

func TestDeclineAfterApproveIsRejected(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newRequestService(db)

	teacherID, courseID, adminID := uuid.New(), uuid.New(), uuid.New()
	slot := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")

	reqID := submitRequest(t, svc, teacherID, slot.TeacherSlotID, RequestedChange{})

	_, err := svc.Approve(context.Background(), reqID, adminID)
	require.NoError(t, err)

	err = svc.Decline(context.Background(), reqID, adminID, "")
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	var stored model.ChangeRequestModel
	require.NoError(t, db.First(&stored, "request_id = ?", reqID).Error)
	assert.Equal(t, model.RequestStatusApproved, stored.RequestStatus)
}

// ==========================
// ListPending
// ==========================

func TestListPendingOldestFirstAndExcludesClosed(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newRequestService(db)

	teacherID, courseID, adminID := uuid.New(), uuid.New(), uuid.New()
	first := seedTeacherSlot(t, db, teacherID, &courseID, "Monday", "09:00", "10:00")
	second := seedTeacherSlot(t, db, teacherID, &courseID, "Tuesday", "09:00", "10:00")
	third := seedTeacherSlot(t, db, teacherID, &courseID, "Friday", "09:00", "10:00")

	firstID := submitRequest(t, svc, teacherID, first.TeacherSlotID, RequestedChange{})
	secondID := submitRequest(t, svc, teacherID, second.TeacherSlotID, RequestedChange{})
	thirdID := submitRequest(t, svc, teacherID, third.TeacherSlotID, RequestedChange{})

	require.NoError(t, svc.Decline(context.Background(), secondID, adminID, ""))

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, firstID, pending[0].RequestID)
	assert.Equal(t, thirdID, pending[1].RequestID)
}
