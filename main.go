package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"sponsorku_backend/internals/configs"
	database "sponsorku_backend/internals/databases"
	paymentRoute "sponsorku_backend/internals/features/finance/payments/route"
	paymentScheduler "sponsorku_backend/internals/features/finance/payments/scheduler"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	authScheduler "sponsorku_backend/internals/features/users/auth/scheduler"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/notify"
	"sponsorku_backend/internals/helpers/storage"
	middlewares "sponsorku_backend/internals/middlewares"
	routes "sponsorku_backend/internals/route"
	"sponsorku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	configs.InitLogger()
	helper.ExposeInternalErrors = configs.AppDebug

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.FiberErrorHandler,
		DisableStartupMessage:   true,
		BodyLimit:               12 * 1024 * 1024, // proposal PDF + gambar event
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          configs.TrustedProxies, // TRUSTED_PROXIES, kosong = tidak percaya header
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatal().Err(err).Msg("❌ AutoMigrate gagal")
		}
	}
	if configs.GetEnvBool("SEED_ON_START", false) {
		seeds.RunAllSeeds(database.DB)
	}

	// 📚 snapshot master (gagal load → snapshot kosong, bisa di-refresh via admin)
	registry := catalog.NewRegistry(catalog.GormLoader{DB: database.DB})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := registry.Refresh(ctx); err != nil {
			log.Error().Err(err).Msg("⚠️ Gagal load master catalog")
		}
		cancel()
	}

	blob := storage.NewBlobServiceFromEnv()
	publisher := notify.NewPublisherFromEnv()
	payments := paymentRoute.NewPaymentService(database.DB, publisher)

	// ⏱ scheduler setelah DB siap
	c := cron.New()
	authScheduler.RegisterBlacklistCleanup(c, database.DB)
	paymentScheduler.RegisterPaymentExpiry(c, payments)
	storage.RegisterTrashReaper(c, blob, storage.TrashReaperConfig{
		RetentionDays: configs.GetEnvInt("RETENTION_DAYS", 30),
		CronSchedule:  configs.GetEnv("CRON_SCHEDULE", "15 2 * * *"),
		DryRun:        configs.GetEnvBool("REAPER_DRY_RUN", false),
	})
	c.Start()

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		DB:        database.DB,
		Blob:      blob,
		Publisher: publisher,
		Catalog:   registry,
		Payments:  payments,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Info().Str("port", port).Msg("✅ Listening")
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown: HTTP → cron → AMQP → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	<-c.Stop().Done()
	publisher.Close()
	database.Close()
}
