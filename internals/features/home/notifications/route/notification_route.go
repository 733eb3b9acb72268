package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/home/notifications/controller"
	"schoolhub_backend/internals/features/home/notifications/service"
)

// UserNotificationRoutes: recipient-facing endpoints.
func UserNotificationRoutes(user fiber.Router, db *gorm.DB, fanout *service.FanoutService) {
	ctrl := controller.NewNotificationController(db, fanout)

	user.Get("/notifications", ctrl.MyNotifications)
	user.Post("/notifications/:id/read", ctrl.MarkRead)
}

// AdminNotificationRoutes: broadcast.
func AdminNotificationRoutes(admin fiber.Router, db *gorm.DB, fanout *service.FanoutService) {
	ctrl := controller.NewNotificationController(db, fanout)

	admin.Post("/notifications/broadcast", ctrl.Broadcast)
}
