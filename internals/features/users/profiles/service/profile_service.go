package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	catalogModel "sponsorku_backend/internals/features/masters/catalog/model"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	authHelper "sponsorku_backend/internals/features/users/auth/helper"
	"sponsorku_backend/internals/features/users/profiles/dto"
	userDTO "sponsorku_backend/internals/features/users/user/dto"
	userModel "sponsorku_backend/internals/features/users/user/model"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/storage"
)

var ErrNotFound = errors.New("record not found")

type Store interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	FindProfiles(ctx context.Context, userID uuid.UUID) (*userModel.EOProfileModel, *userModel.SponsorProfileModel, error)
	// SaveProfile: user + profil role dalam satu transaksi (nil profil dilewati)
	SaveProfile(ctx context.Context, u *userModel.UserModel, eo *userModel.EOProfileModel, sp *userModel.SponsorProfileModel) error
}

type Service struct {
	Store   Store
	Blob    storage.BlobService
	Catalog *catalog.Registry
}

func NewService(store Store, blob storage.BlobService, reg *catalog.Registry) *Service {
	return &Service{Store: store, Blob: blob, Catalog: reg}
}

func (s *Service) load(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, *userModel.EOProfileModel, *userModel.SponsorProfileModel, error) {
	u, err := s.Store.FindUserByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, nil, helper.ErrNotFound("User not found")
	}
	if err != nil {
		return nil, nil, nil, helper.ErrInternal("Gagal mengambil data user", err)
	}
	eo, sp, err := s.Store.FindProfiles(ctx, userID)
	if err != nil {
		return nil, nil, nil, helper.ErrInternal("Gagal mengambil profil", err)
	}
	return u, eo, sp, nil
}

// Get: GET /api/profile
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*userDTO.ProfileResponse, error) {
	u, eo, sp, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &userDTO.ProfileResponse{User: userDTO.FromUserModel(u), EOProfile: eo, SponsorProfile: sp}, nil
}

/* =========================================================
   UPDATE
   ========================================================= */

// Update: field user + profil role + foto (opsional).
// Foto baru dihapus lagi kalau simpan DB gagal; foto lama dihapus setelah sukses.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest, picture *multipart.FileHeader) (*userDTO.ProfileResponse, error) {
	u, eo, sp, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Profile != nil && req.Profile.Role() != u.Role {
		return nil, helper.ErrForbidden("Profil tidak sesuai dengan role akun")
	}

	if err := applyUser(u, req.User); err != nil {
		return nil, err
	}

	switch p := req.Profile.(type) {
	case dto.EOProfileUpdate:
		if eo == nil {
			return nil, helper.ErrNotFound("Profil EO tidak ditemukan")
		}
		if err := applyEO(eo, p); err != nil {
			return nil, err
		}
	case dto.SponsorProfileUpdate:
		if sp == nil {
			return nil, helper.ErrNotFound("Profil sponsor tidak ditemukan")
		}
		if err := applySponsor(sp, p, s.Catalog.Snapshot()); err != nil {
			return nil, err
		}
	}

	var newURL, oldURL string
	if picture != nil {
		newURL, err = storage.UploadImageAsWebP(ctx, s.Blob, storage.FolderProfiles, picture)
		if err != nil {
			if helper.StatusOf(err) < 500 {
				return nil, err
			}
			return nil, helper.ErrInternal("Gagal upload foto profil", err)
		}
		if u.ProfilePictureURL != nil {
			oldURL = *u.ProfilePictureURL
		}
		u.ProfilePictureURL = &newURL
	}

	if err := s.Store.SaveProfile(ctx, u, eo, sp); err != nil {
		storage.Cleanup(context.WithoutCancel(ctx), s.Blob, newURL)
		return nil, helper.PGAppError(err, "", "Gagal menyimpan profil")
	}
	if newURL != "" && oldURL != "" && oldURL != newURL {
		storage.Cleanup(context.WithoutCancel(ctx), s.Blob, oldURL)
	}

	log.Info().Str("user_id", u.ID.String()).Str("role", u.Role).Msg("[PROFILE] updated")
	return &userDTO.ProfileResponse{User: userDTO.FromUserModel(u), EOProfile: eo, SponsorProfile: sp}, nil
}

/* ========================= apply ========================= */

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func requiredString(pf helper.PatchField[string], field string) (string, bool, error) {
	v, ok := pf.Get()
	if !ok {
		return "", false, nil
	}
	t := trimmed(v)
	if t == nil {
		return "", true, helper.ErrValidation(field + " tidak boleh kosong")
	}
	return *t, true, nil
}

func applyOptional(dst **string, pf helper.PatchField[string]) {
	if v, ok := pf.Get(); ok {
		*dst = trimmed(v)
	}
}

func applyUser(u *userModel.UserModel, in dto.UserUpdate) error {
	if v, ok, err := requiredString(in.Name, "name"); err != nil {
		return err
	} else if ok {
		u.Name = v
	}
	if v, ok, err := requiredString(in.Phone, "phone"); err != nil {
		return err
	} else if ok {
		if !authHelper.IsValidPhone(v) {
			return helper.ErrValidation("Invalid phone number format")
		}
		u.Phone = v
	}
	return nil
}

func applyEO(eo *userModel.EOProfileModel, in dto.EOProfileUpdate) error {
	if v, ok, err := requiredString(in.OrganizationName, "organization_name"); err != nil {
		return err
	} else if ok {
		eo.EOProfileOrganizationName = v
	}
	applyOptional(&eo.EOProfileOrganizationAddress, in.OrganizationAddress)
	applyOptional(&eo.EOProfileWebsite, in.Website)
	return nil
}

func applySponsor(sp *userModel.SponsorProfileModel, in dto.SponsorProfileUpdate, snap *catalog.Snapshot) error {
	if v, ok, err := requiredString(in.CompanyName, "company_name"); err != nil {
		return err
	} else if ok {
		sp.SponsorProfileCompanyName = v
	}
	applyOptional(&sp.SponsorProfileCompanyAddress, in.CompanyAddress)
	applyOptional(&sp.SponsorProfileIndustry, in.Industry)
	applyOptional(&sp.SponsorProfileWebsite, in.Website)
	applyOptional(&sp.SponsorProfileSocialMedia, in.SocialMedia)

	if v, ok := in.Status.Get(); ok {
		st, valid := normalizeSponsorStatus(v)
		if !valid {
			return helper.ErrValidation("status harus Open atau Closed")
		}
		sp.SponsorProfileStatus = st
	}

	if v, ok := in.CategoryID.Get(); ok {
		sp.SponsorProfileCategoryID = v
	}
	if v, ok := in.TypeID.Get(); ok {
		sp.SponsorProfileTypeID = v
	}
	if v, ok := in.ScopeID.Get(); ok {
		sp.SponsorProfileScopeID = v
	}
	if err := snap.CheckRefs(
		catalog.Ref{Table: catalogModel.TableSponsorCategories, Field: "category_id", ID: sp.SponsorProfileCategoryID},
		catalog.Ref{Table: catalogModel.TableSponsorTypes, Field: "type_id", ID: sp.SponsorProfileTypeID},
		catalog.Ref{Table: catalogModel.TableSponsorScopes, Field: "scope_id", ID: sp.SponsorProfileScopeID},
	); err != nil {
		return err
	}

	if v, ok := in.BudgetMin.Get(); ok {
		sp.SponsorProfileBudgetMin = v
	}
	if v, ok := in.BudgetMax.Get(); ok {
		sp.SponsorProfileBudgetMax = v
	}
	minB, maxB := sp.SponsorProfileBudgetMin, sp.SponsorProfileBudgetMax
	if (minB != nil && *minB < 0) || (maxB != nil && *maxB < 0) {
		return helper.ErrValidation("Budget tidak boleh negatif")
	}
	if minB != nil && maxB != nil && *minB > *maxB {
		return helper.ErrValidation("budget_min tidak boleh lebih besar dari budget_max")
	}
	return nil
}

func normalizeSponsorStatus(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	switch strings.ToLower(strings.TrimSpace(*v)) {
	case "open":
		return userModel.SponsorStatusOpen, true
	case "closed":
		return userModel.SponsorStatusClosed, true
	}
	return "", false
}
