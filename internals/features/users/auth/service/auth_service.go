package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sponsorku_backend/internals/constants"
	authDTO "sponsorku_backend/internals/features/users/auth/dto"
	authHelper "sponsorku_backend/internals/features/users/auth/helper"
	userDTO "sponsorku_backend/internals/features/users/user/dto"
	userModel "sponsorku_backend/internals/features/users/user/model"
	helper "sponsorku_backend/internals/helpers"
)

/* ==========================
   Ports
========================== */

var ErrNotFound = errors.New("record not found")

// Store: akses data auth (GORM di repository, fake di test)
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindUserByGoogleID(ctx context.Context, googleID string) (*userModel.UserModel, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	// CreateUserWithProfile: user + profil role dalam satu transaksi
	CreateUserWithProfile(ctx context.Context, u *userModel.UserModel, profileName string) error
	LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error
	FindProfiles(ctx context.Context, userID uuid.UUID) (*userModel.EOProfileModel, *userModel.SponsorProfileModel, error)
	BlacklistToken(ctx context.Context, token string, expiredAt time.Time) error
}

type GoogleIdentity struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
}

type GoogleVerifier interface {
	Verify(idToken string) (*GoogleIdentity, error)
}

/* ==========================
   Service
========================== */

type Service struct {
	Store     Store
	Google    GoogleVerifier
	Validator *validator.Validate
	Secret    string
	TTL       time.Duration
	Now       func() time.Time
}

func NewService(store Store, google GoogleVerifier, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{
		Store:     store,
		Google:    google,
		Validator: validator.New(),
		Secret:    secret,
		TTL:       ttl,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) issue(u *userModel.UserModel) (*authDTO.AuthResponse, error) {
	tok, exp, err := helper.GenerateAccessToken(s.Secret, u.ID, u.Email, u.Role, s.TTL, s.Now())
	if err != nil {
		return nil, helper.ErrInternal("Gagal membuat token", err)
	}
	return &authDTO.AuthResponse{Token: tok, ExpiresAt: exp, User: userDTO.FromUserModel(u)}, nil
}

/* ==========================
   REGISTER
========================== */

func (s *Service) Register(ctx context.Context, req authDTO.RegisterRequest) (*authDTO.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(s.Validator); err != nil {
		return nil, err
	}

	existing, err := s.Store.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, helper.ErrInternal("Gagal cek email", err)
	}
	if existing != nil {
		return nil, helper.ErrConflict("Email already registered")
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, helper.ErrInternal("Password hashing failed", err)
	}

	u := &userModel.UserModel{
		ID:       uuid.New(),
		Role:     req.Role,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: hash,
		IsActive: true,
	}
	if err := s.Store.CreateUserWithProfile(ctx, u, req.ProfileName()); err != nil {
		// race: email dipakai request lain di antara cek & insert
		if helper.IsDuplicateKey(err) {
			return nil, helper.ErrConflict("Email already registered")
		}
		return nil, helper.ErrInternal("Failed to create user", err)
	}

	log.Info().Str("user_id", u.ID.String()).Str("role", u.Role).Msg("[AUTH] register")
	return s.issue(u)
}

/* ==========================
   LOGIN
========================== */

func (s *Service) Login(ctx context.Context, req authDTO.LoginRequest) (*authDTO.AuthResponse, error) {
	req.Normalize()
	if req.Email == "" || req.Password == "" {
		return nil, helper.ErrValidation("Email and password required")
	}

	u, err := s.Store.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, ErrNotFound) {
		return nil, helper.ErrUnauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil data user", err)
	}
	if !u.IsActive {
		return nil, helper.ErrUnauthorized("Akun Anda telah dinonaktifkan")
	}
	if err := authHelper.CheckPasswordHash(u.Password, req.Password); err != nil {
		return nil, helper.ErrUnauthorized("Invalid credentials")
	}
	return s.issue(u)
}

/* ==========================
   LOGIN GOOGLE
========================== */

func (s *Service) LoginGoogle(ctx context.Context, req authDTO.GoogleLoginRequest) (*authDTO.AuthResponse, error) {
	req.Normalize()
	if req.IDToken == "" {
		return nil, helper.ErrValidation("id_token is required")
	}
	if s.Google == nil {
		return nil, helper.ErrUnauthorized("Login Google tidak aktif")
	}

	ident, err := s.Google.Verify(req.IDToken)
	if err != nil {
		return nil, helper.ErrUnauthorized("Invalid Google ID Token")
	}

	// 1) by google_id
	u, err := s.Store.FindUserByGoogleID(ctx, ident.Sub)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, helper.ErrInternal("Gagal mengambil data user", err)
	}

	// email belum diverifikasi Google → tidak boleh dipakai untuk tautkan/buat akun
	if u == nil && !ident.EmailVerified {
		return nil, helper.ErrUnauthorized("Email Google belum terverifikasi")
	}

	// 2) by email → tautkan google_id
	if u == nil {
		u, err = s.Store.FindUserByEmail(ctx, strings.ToLower(ident.Email))
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, helper.ErrInternal("Gagal mengambil data user", err)
		}
		if u != nil {
			if u.GoogleID == nil || *u.GoogleID == "" {
				if err := s.Store.LinkGoogleID(ctx, u.ID, ident.Sub); err != nil {
					return nil, helper.ErrInternal("Gagal menautkan akun Google", err)
				}
				gid := ident.Sub
				u.GoogleID = &gid
			}
		}
	}

	// 3) user baru → role wajib
	if u == nil {
		if !constants.IsValidRole(req.Role) {
			return nil, helper.ErrValidation("Role (EO/SPONSOR) wajib untuk akun Google baru")
		}
		hash, err := authHelper.HashPassword(randomPassword())
		if err != nil {
			return nil, helper.ErrInternal("Password hashing failed", err)
		}
		gid := ident.Sub
		u = &userModel.UserModel{
			ID:       uuid.New(),
			Role:     req.Role,
			Name:     ident.Name,
			Email:    strings.ToLower(ident.Email),
			Password: hash,
			GoogleID: &gid,
			IsActive: true,
		}
		if err := s.Store.CreateUserWithProfile(ctx, u, u.Name); err != nil {
			if helper.IsDuplicateKey(err) {
				return nil, helper.ErrConflict("Email already registered")
			}
			return nil, helper.ErrInternal("Failed to create Google user", err)
		}
	}

	if !u.IsActive {
		return nil, helper.ErrUnauthorized("Akun Anda telah dinonaktifkan")
	}
	return s.issue(u)
}

/* ==========================
   LOGOUT
========================== */

// Logout: token di-blacklist sampai exp-nya
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		return helper.ErrUnauthorized("Token tidak ditemukan")
	}
	exp := s.Now().Add(s.TTL)
	if claims, err := helper.ParseAccessToken(s.Secret, rawToken, s.Now(), time.Minute); err == nil {
		exp = claims.ExpiresAt
	}
	if err := s.Store.BlacklistToken(ctx, rawToken, exp); err != nil {
		return helper.ErrInternal("Gagal logout", err)
	}
	return nil
}

/* ==========================
   ME
========================== */

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*userDTO.ProfileResponse, error) {
	u, err := s.Store.FindUserByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, helper.ErrNotFound("User not found")
	}
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil data user", err)
	}
	eo, sp, err := s.Store.FindProfiles(ctx, userID)
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil profil", err)
	}
	return &userDTO.ProfileResponse{User: userDTO.FromUserModel(u), EOProfile: eo, SponsorProfile: sp}, nil
}

func randomPassword() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
