package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/schedules/dto"
	"schoolhub_backend/internals/features/school/schedules/model"
	"schoolhub_backend/internals/features/school/schedules/service"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/realtime"
)

// ScheduleAdminController owns the admin CRUD on teacher slots. Creates and
// edits go through the synchronizer so the course-table mirror follows;
// deletes touch the teacher table only.
type ScheduleAdminController struct {
	DB    *gorm.DB
	Store *service.ScheduleStore
	Sync  *service.SlotSynchronizer
	Pub   realtime.Publisher
}

func NewScheduleAdminController(db *gorm.DB, store *service.ScheduleStore, sync *service.SlotSynchronizer, pub realtime.Publisher) *ScheduleAdminController {
	return &ScheduleAdminController{DB: db, Store: store, Sync: sync, Pub: pub}
}

// POST /api/a/schedule-slots
func (ctrl *ScheduleAdminController) CreateSlot(c *fiber.Ctx) error {
	var req dto.CreateSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if !model.IsValidDay(req.DayOfWeek) {
		return helper.JsonError(c, fiber.StatusBadRequest, "day_of_week must be a weekday name")
	}

	slot := model.TeacherSlotModel{
		TeacherSlotTeacherID: req.TeacherID,
		TeacherSlotCourseID:  req.CourseID,
		TeacherSlotDayOfWeek: model.NormalizeDay(req.DayOfWeek),
		TeacherSlotStartTime: req.StartTime,
		TeacherSlotEndTime:   req.EndTime,
		TeacherSlotLocation:  req.Location,
		TeacherSlotNotes:     req.Notes,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&slot).Error; err != nil {
		log.Printf("[ERROR] create teacher slot: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create slot")
	}

	// brand-new slot: no old snapshot
	ctrl.Sync.SyncCourseMirror(c.UserContext(), &slot, nil)
	ctrl.publishScheduleUpdated(&slot)

	return helper.JsonCreated(c, "Slot created", dto.ToTeacherSlotResponse(&slot))
}

// PUT /api/a/schedule-slots/:id
func (ctrl *ScheduleAdminController) UpdateSlot(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid slot id")
	}

	var req dto.UpdateSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if !model.IsValidDay(req.DayOfWeek) {
		return helper.JsonError(c, fiber.StatusBadRequest, "day_of_week must be a weekday name")
	}

	slot, err := ctrl.Store.GetTeacherSlot(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Slot not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch slot")
	}

	old := &service.SlotSnapshot{
		DayOfWeek: slot.TeacherSlotDayOfWeek,
		StartTime: slot.TeacherSlotStartTime,
		EndTime:   slot.TeacherSlotEndTime,
	}

	updated, err := ctrl.Store.UpdateTeacherSlot(c.UserContext(), id, service.SlotFields{
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
		Notes:     req.Notes,
	})
	if err != nil {
		log.Printf("[ERROR] update teacher slot: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update slot")
	}

	ctrl.Sync.SyncCourseMirror(c.UserContext(), updated, old)
	ctrl.publishScheduleUpdated(updated)

	return helper.JsonUpdated(c, "Slot updated", dto.ToTeacherSlotResponse(updated))
}

// DELETE /api/a/schedule-slots/:id. Deletes the teacher-table row only;
// the course-table mirror is not cascaded.
func (ctrl *ScheduleAdminController) DeleteSlot(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid slot id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.TeacherSlotModel{}, "teacher_slot_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete slot")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Slot not found")
	}
	return helper.JsonDeleted(c, "Slot deleted", fiber.Map{"teacher_slot_id": id})
}

// GET /api/a/schedule-slots?teacher_id=...
func (ctrl *ScheduleAdminController) ListSlots(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.TeacherSlotModel{})
	if teacherID := c.Query("teacher_id"); teacherID != "" {
		q = q.Where("teacher_slot_teacher_id = ?", teacherID)
	}

	var slots []model.TeacherSlotModel
	if err := q.Order("teacher_slot_day_of_week, teacher_slot_start_time").
		Find(&slots).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch slots")
	}
	return helper.JsonOK(c, "", dto.ToTeacherSlotResponseList(slots))
}

func (ctrl *ScheduleAdminController) publishScheduleUpdated(slot *model.TeacherSlotModel) {
	ctrl.Pub.Publish(realtime.TopicScheduleUpdated, map[string]any{
		"teacherId": slot.TeacherSlotTeacherID,
		"slotId":    slot.TeacherSlotID,
		"courseId":  slot.TeacherSlotCourseID,
	})
	if slot.TeacherSlotCourseID != nil {
		ctrl.Pub.Publish(realtime.Scoped(realtime.TopicStudentTimetable, slot.TeacherSlotCourseID.String()),
			map[string]any{"courseId": *slot.TeacherSlotCourseID})
	}
}
