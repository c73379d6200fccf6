package controller

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"sponsorku_backend/internals/features/events/events/dto"
	"sponsorku_backend/internals/features/events/events/service"
	helper "sponsorku_backend/internals/helpers"
)

type EventController struct {
	Service *service.Service
}

func NewEventController(svc *service.Service) *EventController {
	return &EventController{Service: svc}
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// POST /api/events (JSON atau multipart: image, proposal)
func (ec *EventController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var files service.Uploads
	if isMultipart(c) {
		if fh, err := c.FormFile("image"); err == nil {
			files.Image = fh
		}
		if fh, err := c.FormFile("proposal"); err == nil {
			files.Proposal = fh
		}
	}

	res, err := ec.Service.Create(c.UserContext(), userID, req, files)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Event created", res)
}

// GET /api/events/me?q=&upcoming=true&page=&per_page=
func (ec *EventController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	q := dto.ListEventQuery{
		Q:        strings.TrimSpace(c.Query("q")),
		Upcoming: c.QueryBool("upcoming", false),
	}
	p := helper.ResolvePaging(c, 20, 100)

	rows, pg, err := ec.Service.ListMine(c.UserContext(), userID, q, p)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Daftar event", rows, &pg)
}

// GET /api/events/:id
func (ec *EventController) Detail(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := ec.Service.Detail(c.UserContext(), eventID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Detail event", res)
}

// PATCH /api/events/:id
func (ec *EventController) Patch(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.PatchEventRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	res, err := ec.Service.Patch(c.UserContext(), userID, eventID, req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Event updated", res)
}

// DELETE /api/events/:id
func (ec *EventController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ec.Service.Delete(c.UserContext(), userID, eventID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Event deleted", fiber.Map{"event_id": eventID})
}
