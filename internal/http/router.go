package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/reachdesk/backend/internal/config"
	"github.com/reachdesk/backend/internal/http/handlers"
	"github.com/reachdesk/backend/internal/metrics"
	"github.com/reachdesk/backend/internal/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handlers struct {
	Campaigns *handlers.CampaignHandler
	Lists     *handlers.ListHandler
	Templates *handlers.TemplateHandler
	Meta      *handlers.MetaHandler
	Contacts  *handlers.ContactHandler
}

// SetupRouter registers every route on app. rdb may be nil, which disables
// rate limiting.
func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	h Handlers,
) {
	metrics.InitAPIMetrics()

	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))
	app.Use(middleware.MetricsMiddleware())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")
	if rdb != nil {
		api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute, log))
	}

	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Campaigns
	campaigns := protected.Group("/campaigns")
	campaigns.Get("/", h.Campaigns.ListCampaigns)
	campaigns.Get("/archived", h.Campaigns.ListArchivedCampaigns)
	campaigns.Get("/:id", h.Campaigns.GetCampaign)
	campaigns.Get("/:id/audit", h.Campaigns.History)
	campaigns.Post("/", h.Campaigns.CreateCampaign)
	campaigns.Post("/bulk-delete", h.Campaigns.BulkDelete)
	campaigns.Patch("/:id", h.Campaigns.UpdateCampaign)
	campaigns.Delete("/archive/:id", h.Campaigns.Archive)
	campaigns.Delete("/stop/:id", h.Campaigns.Stop)
	campaigns.Delete("/restore/:id", h.Campaigns.Restore)
	campaigns.Delete("/:id", h.Campaigns.Delete)

	// Lists
	lists := protected.Group("/lists")
	lists.Get("/", h.Lists.ListLists)
	lists.Get("/archived", h.Lists.ListArchivedLists)
	lists.Get("/:id", h.Lists.GetList)
	lists.Get("/:id/audit", h.Lists.History)
	lists.Post("/", h.Lists.CreateList)
	lists.Post("/bulk-delete", h.Lists.BulkDelete)
	lists.Patch("/:id", h.Lists.UpdateList)
	lists.Delete("/archive/:id", h.Lists.Archive)
	lists.Delete("/stop/:id", h.Lists.Stop)
	lists.Delete("/restore/:id", h.Lists.Restore)
	lists.Delete("/:id", h.Lists.Delete)

	// Templates and their reference data
	templates := protected.Group("/templates")
	templates.Get("/", h.Templates.ListTemplates)
	templates.Get("/archived", h.Templates.ListArchivedTemplates)
	templates.Get("/categories", h.Meta.GetCategories)
	templates.Get("/types", h.Meta.GetTypes)
	templates.Get("/languages", h.Meta.GetLanguages)
	templates.Get("/header-types", h.Meta.GetHeaderTypes)
	templates.Get("/button-types", h.Meta.GetButtonTypes)
	templates.Get("/:id", h.Templates.GetTemplate)
	templates.Get("/:id/audit", h.Templates.History)
	templates.Post("/", h.Templates.CreateTemplate)
	templates.Post("/bulk-delete", h.Templates.BulkDelete)
	templates.Patch("/:id", h.Templates.UpdateTemplate)
	templates.Delete("/archive/:id", h.Templates.Archive)
	templates.Delete("/stop/:id", h.Templates.Stop)
	templates.Delete("/restore/:id", h.Templates.Restore)
	templates.Delete("/:id", h.Templates.Delete)

	// Contacts
	contacts := protected.Group("/contacts")
	contacts.Get("/", h.Contacts.ListContacts)
	contacts.Get("/:id", h.Contacts.GetContact)
	contacts.Post("/", h.Contacts.CreateContact)
	contacts.Post("/bulk-create", h.Contacts.BulkCreateContacts)
	contacts.Post("/bulk-delete", h.Contacts.BulkDeleteContacts)
	contacts.Patch("/:id", h.Contacts.UpdateContact)
	contacts.Delete("/:id", h.Contacts.DeleteContact)
}
