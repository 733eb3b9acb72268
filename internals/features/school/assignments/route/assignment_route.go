package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/assignments/controller"
	notifService "schoolhub_backend/internals/features/home/notifications/service"
)

// TeacherAssignmentRoutes: assignment authoring and grading.
func TeacherAssignmentRoutes(teacher fiber.Router, db *gorm.DB, fanout *notifService.FanoutService) {
	ctrl := controller.NewAssignmentController(db, fanout)

	teacher.Post("/assignments", ctrl.CreateAssignment)
	teacher.Delete("/assignments/:id", ctrl.DeleteAssignment)
	teacher.Get("/assignments/:id/submissions", ctrl.ListSubmissions)
	teacher.Post("/submissions/:id/grade", ctrl.Grade)
}

// UserAssignmentRoutes: student-facing listing and submission.
func UserAssignmentRoutes(user fiber.Router, db *gorm.DB, fanout *notifService.FanoutService) {
	ctrl := controller.NewAssignmentController(db, fanout)

	user.Get("/courses/:id/assignments", ctrl.ListByCourse)
	user.Post("/assignments/:id/submissions", ctrl.Submit)
}
