package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"sponsorku_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan middleware global
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestIDMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
