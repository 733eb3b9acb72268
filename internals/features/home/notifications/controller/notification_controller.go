package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "schoolhub_backend/internals/features/school/courses/model"
	userModel "schoolhub_backend/internals/features/users/user/model"

	"schoolhub_backend/internals/features/home/notifications/dto"
	"schoolhub_backend/internals/features/home/notifications/model"
	"schoolhub_backend/internals/features/home/notifications/service"
	helper "schoolhub_backend/internals/helpers"
)

type NotificationController struct {
	DB     *gorm.DB
	Fanout *service.FanoutService
}

func NewNotificationController(db *gorm.DB, fanout *service.FanoutService) *NotificationController {
	return &NotificationController{DB: db, Fanout: fanout}
}

// GET /api/u/notifications  (?unread=true, + pagination)
func (ctrl *NotificationController) MyNotifications(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.NotificationModel{}).
		Where("notification_recipient_id = ?", userID)
	if c.Query("unread") == "true" {
		q = q.Where("notification_read_at IS NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var notifs []model.NotificationModel
	if err := q.Order("notification_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&notifs).Error; err != nil {
		log.Printf("[ERROR] list notifications: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}

	return helper.JsonList(c, "", dto.ToNotificationResponseList(notifs),
		helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// POST /api/u/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_recipient_id = ? AND notification_read_at IS NULL",
			id, userID).
		Update("notification_read_at", time.Now())
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark notification read")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
	}
	return helper.JsonUpdated(c, "Notification marked read", fiber.Map{"notification_id": id})
}

// POST /api/a/notifications/broadcast sends to a course's students, or to
// every active user when course_id is absent.
func (ctrl *NotificationController) Broadcast(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var recipientIDs []uuid.UUID
	if req.CourseID != nil {
		if err := ctrl.DB.WithContext(c.UserContext()).
			Model(&courseModel.EnrollmentModel{}).
			Where("enrollment_course_id = ?", *req.CourseID).
			Pluck("enrollment_student_id", &recipientIDs).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve recipients")
		}
	} else {
		if err := ctrl.DB.WithContext(c.UserContext()).
			Model(&userModel.UserModel{}).
			Where("is_active = ?", true).
			Pluck("id", &recipientIDs).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve recipients")
		}
	}

	count := ctrl.Fanout.NotifyMany(c.UserContext(), recipientIDs, adminID,
		req.Title, req.Message, req.Type, req.CourseID)

	return helper.JsonCreated(c, "Broadcast sent", fiber.Map{"recipients": count})
}
