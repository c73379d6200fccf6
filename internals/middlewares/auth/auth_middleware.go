// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"sponsorku_backend/internals/configs"
	authModel "sponsorku_backend/internals/features/users/auth/model"
	helper "sponsorku_backend/internals/helpers"
)

var ErrUserNotFound = errors.New("user not found")

// TokenGuard: cek blacklist & status user (GORM di prod, fake di test)
type TokenGuard interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	IsUserActive(ctx context.Context, userID uuid.UUID) (bool, error)
}

const expirySkew = 30 * time.Second

func AuthMiddleware(guard TokenGuard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonFromError(c, helper.ErrUnauthorized(err.Error()))
		}

		ctx := c.UserContext()

		// 2) Cek blacklist
		blacklisted, err := guard.IsBlacklisted(ctx, tokenString)
		if err != nil {
			return helper.JsonFromError(c, helper.ErrInternal("Gagal memeriksa token", err))
		}
		if blacklisted {
			log.Warn().Str("path", c.Path()).Msg("[AUTH] token ada di blacklist")
			return helper.JsonFromError(c, helper.ErrUnauthorized("Unauthorized - Token is blacklisted"))
		}

		// 3) Parse & verifikasi JWT
		secret := configs.JWTSecret
		if secret == "" {
			return helper.JsonFromError(c, helper.ErrInternal("Missing JWT Secret", nil))
		}
		claims, err := helper.ParseAccessToken(secret, tokenString, time.Now().UTC(), expirySkew)
		if err != nil {
			log.Debug().Err(err).Msg("[AUTH] token ditolak")
			return helper.JsonFromError(c, helper.ErrUnauthorized("Unauthorized - Invalid or expired token"))
		}

		// 4) User harus ada & aktif
		active, err := guard.IsUserActive(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return helper.JsonFromError(c, helper.ErrUnauthorized("Unauthorized - User not found"))
			}
			return helper.JsonFromError(c, helper.ErrInternal("Gagal memeriksa user", err))
		}
		if !active {
			return helper.JsonFromError(c, helper.ErrUnauthorized("Akun Anda telah dinonaktifkan"))
		}

		// 5) Simpan identitas ke Locals
		c.Locals(helper.LocUserID, claims.UserID.String())
		c.Locals(helper.LocUserRole, claims.Role)
		c.Locals(helper.LocUserEmail, claims.Email)
		helper.SetRawAccessToken(c, tokenString)

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		return "", errors.New("Unauthorized - No token provided")
	}
	// toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("Unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("Unauthorized - Empty token")
	}
	return tok, nil
}

/* =======================================================================
   GORM guard
======================================================================= */

type GormTokenGuard struct {
	DB *gorm.DB
}

func NewGormTokenGuard(db *gorm.DB) *GormTokenGuard {
	return &GormTokenGuard{DB: db}
}

func (g *GormTokenGuard) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var n int64
	err := g.DB.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token = ?", token).
		Count(&n).Error
	return n > 0, err
}

func (g *GormTokenGuard) IsUserActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	var row struct {
		IsActive bool
	}
	err := g.DB.WithContext(ctx).
		Table("users").
		Select("is_active").
		Where("id = ?", userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, err
	}
	return row.IsActive, nil
}
