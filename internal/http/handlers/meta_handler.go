package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reachdesk/backend/internal/models"
	"github.com/reachdesk/backend/internal/services"
	"go.uber.org/zap"
)

// MetaHandler serves the template reference tables as select options.
type MetaHandler struct {
	lookupService *services.LookupService
	log           *zap.Logger
}

func NewMetaHandler(lookupService *services.LookupService, log *zap.Logger) *MetaHandler {
	return &MetaHandler{lookupService: lookupService, log: log}
}

func (h *MetaHandler) options(kind models.LookupKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts, err := h.lookupService.Options(c.Context(), kind)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return ok(c, opts)
	}
}

func (h *MetaHandler) GetCategories(c *fiber.Ctx) error {
	return h.options(models.LookupCategory)(c)
}

func (h *MetaHandler) GetTypes(c *fiber.Ctx) error {
	return h.options(models.LookupType)(c)
}

func (h *MetaHandler) GetLanguages(c *fiber.Ctx) error {
	return h.options(models.LookupLanguage)(c)
}

func (h *MetaHandler) GetHeaderTypes(c *fiber.Ctx) error {
	return h.options(models.LookupHeaderType)(c)
}

func (h *MetaHandler) GetButtonTypes(c *fiber.Ctx) error {
	return h.options(models.LookupButtonType)(c)
}
