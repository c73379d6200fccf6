package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"sponsorku_backend/internals/features/finance/payments/dto"
	"sponsorku_backend/internals/features/finance/payments/service"
	helper "sponsorku_backend/internals/helpers"
)

type PaymentController struct {
	Service *service.Service
}

func NewPaymentController(svc *service.Service) *PaymentController {
	return &PaymentController{Service: svc}
}

// POST /api/payments/:eventId
func (h *PaymentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	eventID, err := helper.ParseUUIDParam(c, "eventId")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := h.Service.Create(c.UserContext(), userID, eventID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Payment created", res)
}

// POST /api/payments/callback/midtrans (public)
func (h *PaymentController) MidtransCallback(c *fiber.Ctx) error {
	notif, err := dto.ParseMidtransNotification(c.Body())
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	headers := map[string]string{}
	for k, v := range c.GetReqHeaders() {
		headers[k] = strings.Join(v, ",")
	}

	p, err := h.Service.Callback(c.UserContext(), notif, headers)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"payment_id":         p.PaymentID,
		"payment_status":     p.PaymentStatus,
		"transaction_status": notif.TransactionStatus,
	})
}

// GET /api/payments/me
func (h *PaymentController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	list, err := h.Service.Me(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Success", list)
}

// GET /api/payments/:id
func (h *PaymentController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p, err := h.Service.GetByID(c.UserContext(), userID, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Success", p)
}
