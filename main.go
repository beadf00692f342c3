// @title        Flux API
// @version      1.0
// @description  Field-operations scheduling, reporting and approval backend.
// @host         localhost:8000
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/krisnabayu-afk/Flux-version-0.4/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/krisnabayu-afk/Flux-version-0.4/bootstrap"
	"github.com/krisnabayu-afk/Flux-version-0.4/config"
	"github.com/krisnabayu-afk/Flux-version-0.4/database"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/cache"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/logger"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/middleware"
	repo "github.com/krisnabayu-afk/Flux-version-0.4/internal/repository"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/routes"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/services"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/storage"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/telemetry"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: "flux",
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	}, log)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	db := client.Database(cfg.MongoDB)

	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}

	files, err := attachmentStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("attachment storage")
	}
	unread := unreadCache(ctx, cfg, log)

	svc, users := buildServices(db, cfg, files, unread, log)

	if cfg.SeedOnStart {
		seeder := services.NewSeeder(users, repo.NewSiteRepository(db), repo.NewCategoryRepository(db), log)
		if _, err := seeder.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("seed")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "flux",
		BodyLimit:    25 << 20,
		ErrorHandler: middleware.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	if _, local := files.(*storage.LocalStore); local {
		app.Static("/uploads", cfg.UploadDir)
	}

	app.Use(middleware.JWTUidOnly(cfg.JWTSecret))
	routes.Setup(app, svc, users)

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("db", cfg.MongoDB).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

func attachmentStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (services.AttachmentStore, error) {
	if cfg.MinIO.Endpoint == "" {
		log.Info().Str("dir", cfg.UploadDir).Msg("attachments on local disk")
		return storage.NewLocalStore(cfg.UploadDir), nil
	}
	s, err := storage.NewMinIOStore(storage.MinIOConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
		PublicURL: cfg.MinIO.PublicURL,
	})
	if err != nil {
		return nil, err
	}
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info().Str("endpoint", cfg.MinIO.Endpoint).Str("bucket", cfg.MinIO.Bucket).Msg("attachments on minio")
	return s, nil
}

// unreadCache falls back to no caching when Redis is not configured or
// not reachable.
func unreadCache(ctx context.Context, cfg config.Config, log zerolog.Logger) services.UnreadCache {
	if cfg.Redis.Addr == "" {
		return nil
	}
	rdb, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, unread counts not cached")
		return nil
	}
	return cache.NewUnreadCounts(rdb, cfg.Redis.UnreadTTL, log)
}

func buildServices(db *mongo.Database, cfg config.Config, files services.AttachmentStore,
	unread services.UnreadCache, log zerolog.Logger) (routes.Services, *repo.UserRepository) {
	users := repo.NewUserRepository(db)
	schedules := repo.NewScheduleRepository(db)
	shiftChanges := repo.NewShiftChangeRepository(db)
	activities := repo.NewActivityRepository(db)
	reports := repo.NewReportRepository(db)
	tickets := repo.NewTicketRepository(db)
	sites := repo.NewSiteRepository(db)
	categories := repo.NewCategoryRepository(db)

	notifications := services.NewNotificationService(repo.NewNotificationRepository(db), unread, log)
	tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	accounts := services.NewAccountService(users, notifications, tokens, cfg.EmailDomain, log)
	shifts := services.NewShiftChangeService(shiftChanges, schedules, users, notifications,
		services.ParseShiftScope(cfg.ShiftReviewScope), log)

	return routes.Services{
		Accounts:      accounts,
		Sites:         services.NewSiteService(sites, categories, log),
		Schedules:     services.NewScheduleService(schedules, users, sites, categories, tickets, notifications, log),
		ShiftChanges:  shifts,
		Activities:    services.NewActivityService(activities, schedules, users, files, notifications, log),
		Reports:       services.NewReportService(reports, users, sites, categories, tickets, files, notifications, log),
		Tickets:       services.NewTicketService(tickets, reports, sites, users, notifications, log),
		Notifications: notifications,
		Dashboard:     services.NewDashboardService(schedules, reports, tickets, accounts, shifts),
	}, users
}
