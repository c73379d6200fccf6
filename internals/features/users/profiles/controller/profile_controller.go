package controller

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sponsorku_backend/internals/features/users/profiles/dto"
	"sponsorku_backend/internals/features/users/profiles/service"
	helper "sponsorku_backend/internals/helpers"
)

type ProfileController struct {
	Service *service.Service
}

func NewProfileController(svc *service.Service) *ProfileController {
	return &ProfileController{Service: svc}
}

// GET /api/profile
func (pc *ProfileController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := pc.Service.Get(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Profil berhasil diambil", res)
}

// PUT /api/profile (JSON atau multipart dengan profile_picture)
func (pc *ProfileController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	role := helper.GetUserRole(c)

	var (
		body    []byte
		picture *multipart.FileHeader
	)
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Form tidak valid")
		}
		if files := form.File["profile_picture"]; len(files) > 0 {
			picture = files[0]
		}
		if body, err = dto.FormToJSON(form.Value); err != nil {
			return helper.JsonFromError(c, err)
		}
	} else {
		body = c.Body()
	}

	// varian profil ditentukan sekali dari role token
	req, err := dto.ParseUpdateProfile(role, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	res, err := pc.Service.Update(c.UserContext(), userID, req, picture)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Profile updated", res)
}
