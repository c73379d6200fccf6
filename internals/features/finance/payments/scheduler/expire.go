package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"sponsorku_backend/internals/configs"
	"sponsorku_backend/internals/features/finance/payments/service"
)

// RegisterPaymentExpiry: PENDING lebih lama dari PAYMENT_PENDING_TTL_HOURS → FAILED (default tiap 15 menit)
func RegisterPaymentExpiry(c *cron.Cron, svc *service.Service) {
	schedule := configs.GetEnv("PAYMENT_EXPIRY_CRON", "*/15 * * * *")

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := svc.ExpireStale(ctx)
		if err != nil {
			log.Error().Err(err).Msg("[PAYMENT] gagal expire payment pending")
			return
		}
		if n > 0 {
			log.Info().Int64("expired", n).Msg("[PAYMENT] payment pending di-expire")
		}
	})
	if err != nil {
		log.Error().Err(err).Str("schedule", schedule).Msg("[PAYMENT] jadwal cron tidak valid")
		return
	}
	log.Info().Str("schedule", schedule).Msg("[PAYMENT] expiry job scheduled")
}
