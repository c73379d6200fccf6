// file: internals/features/users/auth/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sponsorku_backend/internals/configs"
	"sponsorku_backend/internals/features/users/auth/controller"
	"sponsorku_backend/internals/features/users/auth/repository"
	"sponsorku_backend/internals/features/users/auth/service"
	rateLimiter "sponsorku_backend/internals/middlewares"
)

// AuthRoutes: public /api/auth/*
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(NewAuthService(db))

	baseAuth := api.Group("/auth")
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
}

// AuthProtectedRoutes: butuh token
func AuthProtectedRoutes(protected fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(NewAuthService(db))

	protected.Post("/auth/logout", authController.Logout)
	protected.Get("/auth/me", authController.Me)
}

func NewAuthService(db *gorm.DB) *service.Service {
	return service.NewService(
		repository.NewAuthRepository(db),
		service.FuturendaVerifier{ClientID: configs.GoogleClientID},
		configs.JWTSecret,
		configs.JWTTTL,
	)
}
