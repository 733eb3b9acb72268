package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/courses/controller"
)

// AdminCourseRoutes: course + enrollment administration.
func AdminCourseRoutes(admin fiber.Router, db *gorm.DB) {
	courseCtrl := controller.NewCourseController(db)
	enrollCtrl := controller.NewEnrollmentController(db)

	admin.Post("/courses", courseCtrl.CreateCourse)
	admin.Get("/courses", courseCtrl.ListCourses)
	admin.Patch("/courses/:id", courseCtrl.UpdateCourse)
	admin.Delete("/courses/:id", courseCtrl.DeleteCourse)

	admin.Post("/courses/:id/enrollments", enrollCtrl.Enroll)
	admin.Get("/courses/:id/enrollments", enrollCtrl.ListStudents)
	admin.Delete("/courses/:id/enrollments/:studentId", enrollCtrl.Unenroll)
}

// UserCourseRoutes: read access for any authenticated user.
func UserCourseRoutes(user fiber.Router, db *gorm.DB) {
	courseCtrl := controller.NewCourseController(db)
	enrollCtrl := controller.NewEnrollmentController(db)

	user.Get("/courses/:id", courseCtrl.GetCourse)
	user.Get("/my-courses", enrollCtrl.MyCourses)
}
