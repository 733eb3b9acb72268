package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/attendance/controller"
)

// TeacherAttendanceRoutes: session recording + per-course view.
func TeacherAttendanceRoutes(teacher fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	teacher.Post("/attendance", ctrl.RecordSession)
	teacher.Get("/courses/:id/attendance", ctrl.CourseAttendance)
}

// UserAttendanceRoutes: student self view.
func UserAttendanceRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	user.Get("/my-attendance", ctrl.MyAttendance)
}
