package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/schedules/dto"
	"schoolhub_backend/internals/features/school/schedules/model"
	"schoolhub_backend/internals/features/school/schedules/service"
	helper "schoolhub_backend/internals/helpers"
)

// TimetableController serves the read-side schedules and the teacher's
// change-request submission.
type TimetableController struct {
	DB       *gorm.DB
	Requests *service.ChangeRequestService
}

func NewTimetableController(db *gorm.DB, requests *service.ChangeRequestService) *TimetableController {
	return &TimetableController{DB: db, Requests: requests}
}

// GET /api/t/timetable returns the calling teacher's weekly slots.
func (ctrl *TimetableController) MyTimetable(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var slots []model.TeacherSlotModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("teacher_slot_teacher_id = ?", teacherID).
		Order("teacher_slot_day_of_week, teacher_slot_start_time").
		Find(&slots).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetable")
	}
	return helper.JsonOK(c, "", dto.ToTeacherSlotResponseList(slots))
}

// GET /api/u/courses/:id/timetable returns course-facing slots for students.
func (ctrl *TimetableController) CourseTimetable(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var slots []model.CourseSlotModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("course_slot_course_id = ?", courseID).
		Order("course_slot_day_of_week, course_slot_start_time").
		Find(&slots).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetable")
	}
	return helper.JsonOK(c, "", dto.ToCourseSlotResponseList(slots))
}

// POST /api/t/timetable/request-change
func (ctrl *TimetableController) RequestChange(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.SubmitChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	created, err := ctrl.Requests.Submit(c.UserContext(), teacherID, req.SlotID,
		service.RequestedChange{
			DayOfWeek: req.RequestedDayOfWeek,
			StartTime: req.RequestedStartTime,
			EndTime:   req.RequestedEndTime,
		}, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReasonRequired),
			errors.Is(err, service.ErrInvalidRequestedDay):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSlotNotFound),
			errors.Is(err, service.ErrSlotNotOwned):
			// ownership failures read as not-found to the caller
			return helper.JsonError(c, fiber.StatusNotFound, "Slot not found")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit request")
		}
	}

	return helper.JsonCreated(c, "Change request submitted", dto.ToChangeRequestResponse(created))
}
