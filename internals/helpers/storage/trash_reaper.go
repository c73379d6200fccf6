package storage

import (
	"context"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type TrashReaperConfig struct {
	RetentionDays int
	CronSchedule  string
	DryRun        bool
}

// RegisterTrashReaper: jadwalkan pembersihan prefix trash di OSS.
// Provider selain OSS tidak punya trash → no-op.
func RegisterTrashReaper(c *cron.Cron, svc BlobService, cfg TrashReaperConfig) {
	ossSvc, ok := svc.(*OSSService)
	if !ok {
		log.Info().Msg("[TRASH-REAPER] provider bukan OSS, reaper tidak dijadwalkan")
		return
	}
	if cfg.CronSchedule == "" {
		cfg.CronSchedule = "15 2 * * *"
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}

	_, err := c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		if err := runOSSReaper(ctx, ossSvc.Bucket, ossSvc.TrashPrefix+"/", retention, cfg.DryRun); err != nil {
			log.Error().Err(err).Msg("[TRASH-REAPER] OSS error")
		}
	})
	if err != nil {
		log.Error().Err(err).Str("schedule", cfg.CronSchedule).Msg("[TRASH-REAPER] add cron gagal")
		return
	}
	log.Info().
		Str("schedule", cfg.CronSchedule).
		Str("prefix", ossSvc.TrashPrefix).
		Int("retention_days", cfg.RetentionDays).
		Bool("dry_run", cfg.DryRun).
		Msg("[TRASH-REAPER] scheduled")
}

func runOSSReaper(ctx context.Context, bucket *oss.Bucket, prefix string, retention time.Duration, dryRun bool) error {
	threshold := time.Now().Add(-retention)

	marker := oss.Marker("")
	var keysToDelete []string
	total := 0

	for {
		lor, err := bucket.ListObjects(oss.Prefix(prefix), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return err
		}
		for _, obj := range lor.Objects {
			total++
			if obj.Key != "" && obj.LastModified.Before(threshold) {
				keysToDelete = append(keysToDelete, obj.Key)
			}
		}
		if !lor.IsTruncated {
			break
		}
		marker = oss.Marker(lor.NextMarker)
	}

	if len(keysToDelete) == 0 {
		log.Debug().Int("scanned", total).Str("prefix", prefix).Msg("[OSS-REAPER] nothing to delete")
		return nil
	}
	if dryRun {
		log.Info().Int("would_delete", len(keysToDelete)).Int("scanned", total).Msg("[OSS-REAPER] DRY-RUN")
		return nil
	}

	deleted := 0
	for i := 0; i < len(keysToDelete); i += 1000 {
		end := i + 1000
		if end > len(keysToDelete) {
			end = len(keysToDelete)
		}
		batch := keysToDelete[i:end]
		if _, err := bucket.DeleteObjects(batch, oss.DeleteObjectsQuiet(true), oss.WithContext(ctx)); err != nil {
			log.Error().Err(err).Int("from", i).Int("to", end).Msg("[OSS-REAPER] delete batch gagal")
			continue
		}
		deleted += len(batch)
	}
	log.Info().Int("deleted", deleted).Int("scanned", total).Str("prefix", prefix).Msg("[OSS-REAPER] done")
	return nil
}
