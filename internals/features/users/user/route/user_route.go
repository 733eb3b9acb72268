package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	"schoolhub_backend/internals/features/users/user/controller"
	"schoolhub_backend/internals/middlewares"
	"schoolhub_backend/internals/middlewares/auth"
)

// AuthRoutes: public auth endpoints.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/refresh", ctrl.Refresh)
}

// UserRoutes: profile endpoints for any authenticated user.
func UserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	user.Get("/me", ctrl.Me)
	user.Patch("/me", ctrl.UpdateMe)
}

// AdminUserRoutes: user administration.
func AdminUserRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	admin.Get("/users", ctrl.ListUsers)
	admin.Post("/users", ctrl.CreateUser)
	admin.Patch("/users/:id", ctrl.UpdateUser)
	admin.Delete("/users/:id",
		auth.OnlyRoles("Only administrators may deactivate accounts",
			constants.RoleAdmin, constants.RoleSuperAdmin),
		ctrl.DeactivateUser)
}
