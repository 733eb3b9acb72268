package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/resources/controller"
)

// TeacherResourceRoutes: resource authoring.
func TeacherResourceRoutes(teacher fiber.Router, db *gorm.DB) {
	ctrl := controller.NewResourceController(db)

	teacher.Post("/resources", ctrl.CreateResource)
	teacher.Delete("/resources/:id", ctrl.DeleteResource)
}

// UserResourceRoutes: course material listing.
func UserResourceRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewResourceController(db)

	user.Get("/courses/:id/resources", ctrl.ListByCourse)
}
