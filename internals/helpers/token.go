// helpers/token.go
package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Simpan raw JWT di Locals dari middleware
const LocRawToken = "raw_token"

// AccessClaims: isi token akses {id, email, role, exp}
type AccessClaims struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	ExpiresAt time.Time
}

// GenerateAccessToken menandatangani token HS256.
func GenerateAccessToken(secret string, userID uuid.UUID, email, role string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("missing JWT secret")
	}
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"id":    userID.String(),
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken memverifikasi signature (HS256 saja) lalu membaca klaim.
// Expiry dicek terpisah dengan toleransi skew.
func ParseAccessToken(secret, raw string, now time.Time, skew time.Duration) (*AccessClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token parse error: %w", err)
	}

	expF, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("token has no exp")
	}
	exp := time.Unix(int64(expF), 0).UTC()
	if now.After(exp.Add(skew)) {
		return nil, fmt.Errorf("token expired at %v", exp)
	}

	idStr, _ := claims["id"].(string)
	id, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil || id == uuid.Nil {
		return nil, errors.New("invalid or missing user id")
	}
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)

	return &AccessClaims{UserID: id, Email: email, Role: role, ExpiresAt: exp}, nil
}

// GetRawAccessToken mengembalikan access token dari:
// 1) Locals("raw_token") yang diset middleware
// 2) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}
