package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"sponsorku_backend/internals/configs"
	"sponsorku_backend/internals/features/users/auth/repository"
)

// RegisterBlacklistCleanup: hapus token_blacklist yang exp-nya sudah lewat (default tiap hari 03:00)
func RegisterBlacklistCleanup(c *cron.Cron, db *gorm.DB) {
	schedule := configs.GetEnv("TOKEN_BLACKLIST_CLEANUP_CRON", "0 3 * * *")

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := repository.CleanupExpiredBlacklist(ctx, db, time.Now().UTC())
		if err != nil {
			log.Error().Err(err).Msg("[CLEANUP] gagal hapus token_blacklist")
			return
		}
		log.Info().Int64("deleted", n).Msg("[CLEANUP] token_blacklist dibersihkan")
	})
	if err != nil {
		log.Error().Err(err).Str("schedule", schedule).Msg("[CLEANUP] jadwal cron tidak valid")
		return
	}
	log.Info().Str("schedule", schedule).Msg("[CLEANUP] blacklist cleanup scheduled")
}
