package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sponsorku_backend/internals/configs"
	"sponsorku_backend/internals/constants"
	"sponsorku_backend/internals/features/finance/payments/controller"
	"sponsorku_backend/internals/features/finance/payments/repository"
	"sponsorku_backend/internals/features/finance/payments/service"
	"sponsorku_backend/internals/helpers/notify"
	authMiddleware "sponsorku_backend/internals/middlewares/auth"
)

// NewPaymentService: gateway nil kalau MIDTRANS_SERVER_KEY kosong
func NewPaymentService(db *gorm.DB, pub notify.Publisher) *service.Service {
	var gw service.Gateway
	if configs.MidtransServerKey != "" {
		gw = service.NewSnapGateway(configs.MidtransServerKey, configs.MidtransUseProd)
	}
	return service.NewService(
		repository.NewPaymentRepository(db),
		gw,
		pub,
		configs.MidtransServerKey,
		configs.FastTrackPriceIDR,
		configs.PaymentPendingTTL,
	)
}

// PaymentPublicRoutes: webhook Midtrans, tanpa JWT (diverifikasi via signature).
// Harus didaftarkan sebelum group protected.
func PaymentPublicRoutes(api fiber.Router, svc *service.Service) {
	ctrl := controller.NewPaymentController(svc)
	api.Post("/payments/callback/midtrans", ctrl.MidtransCallback)
}

func PaymentRoutes(protected fiber.Router, svc *service.Service) {
	ctrl := controller.NewPaymentController(svc)
	eoOnly := authMiddleware.OnlyRoles(constants.RoleErrorEO("pembayaran fast track"), constants.EOOnly...)

	// /me sebelum /:id
	protected.Get("/payments/me", eoOnly, ctrl.Me)
	protected.Get("/payments/:id", eoOnly, ctrl.GetByID)
	protected.Post("/payments/:eventId", eoOnly, ctrl.Create)
}
