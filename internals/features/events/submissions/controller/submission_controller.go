package controller

import (
	"github.com/gofiber/fiber/v2"

	"sponsorku_backend/internals/features/events/submissions/dto"
	"sponsorku_backend/internals/features/events/submissions/service"
	helper "sponsorku_backend/internals/helpers"
)

type SubmissionController struct {
	Service *service.Service
}

func NewSubmissionController(svc *service.Service) *SubmissionController {
	return &SubmissionController{Service: svc}
}

/* ===================== EO ===================== */

// POST /api/events/:id/submissions
func (sc *SubmissionController) SendEvent(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.SendEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	res, err := sc.Service.SendEvent(c.UserContext(), userID, eventID, req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Event sent to sponsor", res)
}

// POST /api/proposals/:proposalId/send/:sponsorId
func (sc *SubmissionController) SendProposal(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	proposalID, err := helper.ParseUUIDParam(c, "proposalId")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sponsorID, err := helper.ParseUUIDParam(c, "sponsorId")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.SendProposalRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	res, err := sc.Service.SendProposal(c.UserContext(), userID, proposalID, sponsorID, req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Proposal sent to sponsor", res)
}

// GET /api/events/:id/submissions
func (sc *SubmissionController) ListForEvent(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	f, err := dto.ParseFilter(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := sc.Service.ListForEvent(c.UserContext(), userID, eventID, f)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Daftar submission event", res)
}

// GET /api/submissions/eo
func (sc *SubmissionController) ListForEO(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	f, err := dto.ParseFilter(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := sc.Service.ListForEO(c.UserContext(), userID, f)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Daftar submission EO", res)
}

// GET /api/submissions/:id & /api/sponsors/incoming/:id
func (sc *SubmissionController) Detail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := sc.Service.Detail(c.UserContext(), userID, helper.GetUserRole(c), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Detail submission", res)
}

/* ===================== SPONSOR ===================== */

// GET /api/sponsors/incoming
func (sc *SubmissionController) ListIncoming(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	f, err := dto.ParseFilter(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := sc.Service.ListIncoming(c.UserContext(), userID, f)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Incoming proposals", res)
}

// PATCH /api/sponsors/incoming/:id/review
func (sc *SubmissionController) Review(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	res, err := sc.Service.Review(c.UserContext(), userID, id, req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Submission reviewed", res)
}

// GET /api/sponsors/recommended-events?limit=
func (sc *SubmissionController) Recommended(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	res, err := sc.Service.RecommendedEvents(c.UserContext(), userID, limit)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Recommended events", res)
}
