package details

import (
	"github.com/gofiber/fiber/v2"

	paymentRoute "sponsorku_backend/internals/features/finance/payments/route"
	paymentService "sponsorku_backend/internals/features/finance/payments/service"
)

// 🔓 webhook Midtrans
func FinancePublicRoutes(api fiber.Router, svc *paymentService.Service) {
	paymentRoute.PaymentPublicRoutes(api, svc)
}

// 🔐 fast-track payment (EO)
func FinanceRoutes(protected fiber.Router, svc *paymentService.Service) {
	paymentRoute.PaymentRoutes(protected, svc)
}
