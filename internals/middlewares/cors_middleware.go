package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"schoolhub_backend/internals/configs"
)

// CorsMiddleware builds the CORS layer. Origins come from ALLOWED_ORIGINS
// (comma separated) with localhost dev fallbacks.
func CorsMiddleware() fiber.Handler {
	origins := configs.GetEnv("ALLOWED_ORIGINS",
		strings.Join([]string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"http://localhost:3000",
		}, ","))

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}
