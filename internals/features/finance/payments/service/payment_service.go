package service

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"sponsorku_backend/internals/constants"
	eventModel "sponsorku_backend/internals/features/events/events/model"
	"sponsorku_backend/internals/features/finance/payments/dto"
	"sponsorku_backend/internals/features/finance/payments/model"
	userModel "sponsorku_backend/internals/features/users/user/model"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/notify"
)

var ErrNotFound = errors.New("record not found")

const OrderPrefix = "PAY-"

type Store interface {
	EOProfileIDByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	FindUser(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error)
	FindEvent(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error)

	CreatePayment(ctx context.Context, p *model.PaymentModel) error
	SaveSnap(ctx context.Context, id uuid.UUID, token, redirectURL string) error
	FindPayment(ctx context.Context, id uuid.UUID) (*model.PaymentModel, error)
	ListPaymentsByEO(ctx context.Context, eoID uuid.UUID) ([]model.PaymentModel, error)

	// UpdateByOrderID: row di-lock, fn memutasi payment. Kalau hasilnya PAID,
	// events.event_is_fasttrack ikut di-set dalam transaksi yang sama.
	UpdateByOrderID(ctx context.Context, orderID string, fn func(p *model.PaymentModel)) (*model.PaymentModel, error)
	LogGatewayEvent(ctx context.Context, ev *model.PaymentGatewayEventModel) error
	// ExpirePending: PENDING yang dibuat sebelum `before` → FAILED
	ExpirePending(ctx context.Context, before time.Time) (int64, error)
}

type Service struct {
	Store      Store
	Gateway    Gateway // nil → fast-track payment nonaktif
	Publisher  notify.Publisher
	ServerKey  string
	Price      int64
	PendingTTL time.Duration
	Now        func() time.Time
}

func NewService(store Store, gw Gateway, pub notify.Publisher, serverKey string, price int64, ttl time.Duration) *Service {
	if pub == nil {
		pub = notify.NopPublisher{}
	}
	return &Service{
		Store:      store,
		Gateway:    gw,
		Publisher:  pub,
		ServerKey:  serverKey,
		Price:      price,
		PendingTTL: ttl,
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) resolveEO(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, err := s.Store.EOProfileIDByUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return uuid.Nil, helper.ErrForbidden("EO profile not found")
	}
	if err != nil {
		return uuid.Nil, helper.ErrInternal("Gagal mengambil profil EO", err)
	}
	return id, nil
}

/* =========================================================
   CREATE (EO)
========================================================= */

func (s *Service) Create(ctx context.Context, userID, eventID uuid.UUID) (*dto.CreatePaymentResponse, error) {
	if s.Gateway == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Payment gateway belum dikonfigurasi")
	}
	eoID, err := s.resolveEO(ctx, userID)
	if err != nil {
		return nil, err
	}

	ev, err := s.Store.FindEvent(ctx, eventID)
	if errors.Is(err, ErrNotFound) {
		return nil, helper.ErrNotFound("Event not found")
	}
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil event", err)
	}
	if ev.EventEOID != eoID {
		return nil, helper.ErrForbidden("Forbidden: not your event")
	}
	if ev.EventIsFasttrack {
		return nil, helper.ErrBadRequest("Event already fast track")
	}

	u, err := s.Store.FindUser(ctx, userID)
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil data user", err)
	}

	p := &model.PaymentModel{
		PaymentEventID:     &ev.EventID,
		PaymentEOID:        eoID,
		PaymentOrderID:     OrderPrefix + uuid.NewString(),
		PaymentGrossAmount: s.Price,
		PaymentStatus:      constants.PaymentPending,
	}
	// row dibuat dulu supaya callback yang datang cepat tetap menemukan order
	if err := s.Store.CreatePayment(ctx, p); err != nil {
		return nil, helper.ErrInternal("Gagal membuat payment", err)
	}

	token, redirectURL, err := s.Gateway.CreateTransaction(ctx, p, CustomerInput{
		FirstName: u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", p.PaymentOrderID).Msg("[PAYMENT] snap gagal")
		if _, uerr := s.Store.UpdateByOrderID(ctx, p.PaymentOrderID, func(x *model.PaymentModel) {
			x.PaymentStatus = constants.PaymentFailed
			x.PaymentGatewayResponse = datatypes.JSONMap{"error": err.Error()}
		}); uerr != nil {
			log.Error().Err(uerr).Str("order_id", p.PaymentOrderID).Msg("[PAYMENT] gagal menandai FAILED")
		}
		return nil, helper.ErrInternal("Gagal membuat transaksi Midtrans", err)
	}

	if err := s.Store.SaveSnap(ctx, p.PaymentID, token, redirectURL); err != nil {
		return nil, helper.ErrInternal("Gagal menyimpan snap token", err)
	}
	p.PaymentSnapToken = &token
	p.PaymentRedirectURL = &redirectURL

	log.Info().
		Str("payment_id", p.PaymentID.String()).
		Str("order_id", p.PaymentOrderID).
		Str("event_id", ev.EventID.String()).
		Int64("amount", p.PaymentGrossAmount).
		Msg("[PAYMENT] created")

	return &dto.CreatePaymentResponse{Payment: *p, Token: token, RedirectURL: redirectURL}, nil
}

/* =========================================================
   CALLBACK (Midtrans)
========================================================= */

// Callback: verifikasi signature → update status (idempotent) → log gateway event.
func (s *Service) Callback(ctx context.Context, n *dto.MidtransNotification, headers map[string]string) (*model.PaymentModel, error) {
	ev := s.newGatewayEvent(n, headers)

	if !VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, s.ServerKey, n.SignatureKey) {
		s.finishGatewayEvent(ctx, ev, model.GatewayEventRejected, "invalid signature")
		log.Warn().Str("order_id", n.OrderID).Msg("[PAYMENT] callback signature invalid")
		return nil, helper.ErrForbidden("Invalid signature")
	}

	now := s.Now()
	var prev string
	p, err := s.Store.UpdateByOrderID(ctx, n.OrderID, func(p *model.PaymentModel) {
		prev = p.PaymentStatus
		if prev == constants.PaymentPaid {
			return
		}
		next := NextStatus(prev, MapMidtransStatus(prev, n.TransactionStatus, n.FraudStatus))
		p.PaymentStatus = next
		if next == constants.PaymentPaid && p.PaymentPaidAt == nil {
			p.PaymentPaidAt = &now
		}
		if n.PaymentType != "" {
			pt := n.PaymentType
			p.PaymentType = &pt
		}
		p.PaymentGatewayResponse = datatypes.JSONMap(n.Raw)
	})
	if errors.Is(err, ErrNotFound) {
		s.finishGatewayEvent(ctx, ev, model.GatewayEventFailed, "payment not found")
		return nil, helper.ErrNotFound("Payment not found")
	}
	if err != nil {
		s.finishGatewayEvent(ctx, ev, model.GatewayEventFailed, err.Error())
		return nil, helper.ErrInternal("Gagal update payment", err)
	}

	ev.GatewayEventPaymentID = &p.PaymentID
	s.finishGatewayEvent(ctx, ev, model.GatewayEventProcessed, "")

	log.Info().
		Str("order_id", p.PaymentOrderID).
		Str("transaction_status", n.TransactionStatus).
		Str("from", prev).
		Str("to", p.PaymentStatus).
		Msg("[PAYMENT] callback processed")

	if prev != constants.PaymentPaid && p.IsPaid() {
		notify.SafePublish(ctx, s.Publisher, notify.KeyPaymentPaid, map[string]any{
			"payment_id": p.PaymentID,
			"order_id":   p.PaymentOrderID,
			"event_id":   p.PaymentEventID,
			"eo_id":      p.PaymentEOID,
		})
	}
	return p, nil
}

func (s *Service) newGatewayEvent(n *dto.MidtransNotification, headers map[string]string) *model.PaymentGatewayEventModel {
	headersJSON, _ := sonic.Marshal(headers)
	payloadJSON, _ := sonic.Marshal(n.Raw)

	ev := &model.PaymentGatewayEventModel{
		GatewayEventProvider:   model.GatewayProviderMidtrans,
		GatewayEventExternalID: &n.OrderID,
		GatewayEventHeaders:    datatypes.JSON(headersJSON),
		GatewayEventPayload:    datatypes.JSON(payloadJSON),
		GatewayEventStatus:     model.GatewayEventReceived,
		GatewayEventReceivedAt: s.Now(),
	}
	if n.TransactionStatus != "" {
		ev.GatewayEventType = &n.TransactionStatus
	}
	if n.SignatureKey != "" {
		ev.GatewayEventSignature = &n.SignatureKey
	}
	return ev
}

// finishGatewayEvent: log gateway best-effort, gagal insert tidak menggagalkan callback
func (s *Service) finishGatewayEvent(ctx context.Context, ev *model.PaymentGatewayEventModel, status, errMsg string) {
	now := s.Now()
	ev.GatewayEventStatus = status
	ev.GatewayEventProcessedAt = &now
	if errMsg != "" {
		ev.GatewayEventError = &errMsg
	}
	if err := s.Store.LogGatewayEvent(ctx, ev); err != nil {
		log.Error().Err(err).Str("status", status).Msg("[PAYMENT] gagal simpan gateway event")
	}
}

/* =========================================================
   READ (EO)
========================================================= */

// Me: payment milik EO caller, terbaru dulu
func (s *Service) Me(ctx context.Context, userID uuid.UUID) ([]model.PaymentModel, error) {
	eoID, err := s.resolveEO(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err := s.Store.ListPaymentsByEO(ctx, eoID)
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil payment", err)
	}
	return list, nil
}

func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.PaymentModel, error) {
	eoID, err := s.resolveEO(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.Store.FindPayment(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, helper.ErrNotFound("Payment not found")
	}
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil payment", err)
	}
	if p.PaymentEOID != eoID {
		return nil, helper.ErrForbidden("Forbidden: not your payment")
	}
	return p, nil
}

/* =========================================================
   EXPIRY (cron)
========================================================= */

func (s *Service) ExpireStale(ctx context.Context) (int64, error) {
	if s.PendingTTL <= 0 {
		return 0, nil
	}
	return s.Store.ExpirePending(ctx, s.Now().Add(-s.PendingTTL))
}
