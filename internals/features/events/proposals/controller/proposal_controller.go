package controller

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"sponsorku_backend/internals/features/events/proposals/dto"
	"sponsorku_backend/internals/features/events/proposals/service"
	helper "sponsorku_backend/internals/helpers"
)

type ProposalController struct {
	Service *service.Service
}

func NewProposalController(svc *service.Service) *ProposalController {
	return &ProposalController{Service: svc}
}

func parseProposalRequest(c *fiber.Ctx) (dto.ProposalForm, *multipart.FileHeader, error) {
	var form dto.ProposalForm
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&form); err != nil {
			return form, nil, helper.ErrBadRequest("Invalid request body")
		}
	}
	var pdf *multipart.FileHeader
	if fh, err := c.FormFile("proposal"); err == nil {
		pdf = fh
	}
	return form, pdf, nil
}

// POST /api/events/:id/proposal
func (pc *ProposalController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	form, pdf, err := parseProposalRequest(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := pc.Service.Create(c.UserContext(), userID, eventID, form, pdf)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Proposal created", res)
}

// GET /api/events/:id/proposal
func (pc *ProposalController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := pc.Service.Get(c.UserContext(), userID, eventID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Proposal", res)
}

// PUT /api/events/:id/proposal
func (pc *ProposalController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	form, pdf, err := parseProposalRequest(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := pc.Service.Update(c.UserContext(), userID, eventID, form, pdf)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Proposal updated", res)
}
