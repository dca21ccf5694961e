package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/reachdesk/backend/internal/cache"
	"github.com/reachdesk/backend/internal/config"
	"github.com/reachdesk/backend/internal/db"
	"github.com/reachdesk/backend/internal/events"
	apphttp "github.com/reachdesk/backend/internal/http"
	"github.com/reachdesk/backend/internal/http/dto"
	"github.com/reachdesk/backend/internal/http/handlers"
	"github.com/reachdesk/backend/internal/repositories"
	"github.com/reachdesk/backend/internal/repositories/memstore"
	"github.com/reachdesk/backend/internal/services"
	"github.com/reachdesk/backend/migrations"
	"go.uber.org/zap"
)

// stores groups the backing implementations for the selected driver.
type stores struct {
	campaigns services.CampaignStore
	lists     services.ListStore
	templates services.TemplateStore
	contacts  services.ContactStore
	lookups   services.LookupStore
	audit     services.AuditStore
}

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: without it there is no rate limiting, lookups are
	// cached in process and lifecycle events are dropped.
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		if !cfg.UsesMemoryStore() {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		log.Warn("redis unavailable, continuing without it", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var st stores
	if cfg.UsesMemoryStore() {
		mem := memstore.New()
		st = stores{
			campaigns: mem.Campaigns(),
			lists:     mem.Lists(),
			templates: mem.Templates(),
			contacts:  mem.Contacts(),
			lookups:   mem.Lookups(),
			audit:     mem.Audit(),
		}
		log.Info("using in-memory store")
	} else {
		pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, db.PoolOptions{}, log)
		if err != nil {
			log.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		var migrationsFS fs.FS = migrations.FS
		if cfg.MigrationsDir != "" {
			migrationsFS = os.DirFS(cfg.MigrationsDir)
		}
		if err := db.RunMigrations(ctx, pool, migrationsFS, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}

		st = stores{
			campaigns: repositories.NewCampaignRepo(pool),
			lists:     repositories.NewListRepo(pool),
			templates: repositories.NewTemplateRepo(pool),
			contacts:  repositories.NewContactRepo(pool),
			lookups:   repositories.NewLookupRepo(pool),
			audit:     repositories.NewAuditRepo(pool),
		}
	}

	// Events and lookup cache
	var publisher events.Publisher = events.NopPublisher{}
	var lookupCache services.Cache = cache.NewMemory()
	if rdb != nil {
		publisher = events.NewRedisPublisher(rdb, log)
		lookupCache = cache.NewRedis(rdb, "reachdesk:")
	}

	// Services
	campaignService := services.NewCampaignService(st.campaigns, st.audit, publisher, log)
	listService := services.NewListService(st.lists, st.audit, publisher, log)
	templateService := services.NewTemplateService(st.templates, st.lookups, st.audit, publisher, log)
	contactService := services.NewContactService(st.contacts, st.audit, publisher, log)
	lookupService := services.NewLookupService(st.lookups, lookupCache, cfg.LookupCacheTTL, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, apphttp.Handlers{
		Campaigns: handlers.NewCampaignHandler(campaignService, log),
		Lists:     handlers.NewListHandler(listService, log),
		Templates: handlers.NewTemplateHandler(templateService, log),
		Meta:      handlers.NewMetaHandler(lookupService, log),
		Contacts:  handlers.NewContactHandler(contactService, log),
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
