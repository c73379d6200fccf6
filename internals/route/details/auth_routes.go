package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	authRoute "sponsorku_backend/internals/features/users/auth/route"
	profileRoute "sponsorku_backend/internals/features/users/profiles/route"
	sponsorRoute "sponsorku_backend/internals/features/users/sponsors/route"
	"sponsorku_backend/internals/helpers/storage"
)

// 🔓 /api/auth/*
func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	authRoute.AuthRoutes(api, db)
}

// 🔐 me/logout, profil, direktori sponsor
func UserRoutes(protected fiber.Router, db *gorm.DB, blob storage.BlobService, reg *catalog.Registry) {
	authRoute.AuthProtectedRoutes(protected, db)
	profileRoute.ProfileRoutes(protected, db, blob, reg)
	sponsorRoute.SponsorRoutes(protected, db, reg)
}
