package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reachdesk/backend/internal/http/dto"
	"github.com/reachdesk/backend/internal/middleware"
	"github.com/reachdesk/backend/internal/services"
	"go.uber.org/zap"
)

type TemplateHandler struct {
	lifecycleHandler
	templateService *services.TemplateService
	log             *zap.Logger
}

func NewTemplateHandler(templateService *services.TemplateService, log *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		lifecycleHandler: lifecycleHandler{svc: templateService, log: log},
		templateService:  templateService,
		log:              log,
	}
}

func templateInput(req dto.TemplateRequest) services.TemplateInput {
	in := services.TemplateInput{
		Name:                req.Name,
		AllowCategoryChange: req.AllowCategoryChange,
		CategoryID:          req.CategoryID,
		TypeID:              req.TypeID,
		LanguageID:          req.LanguageID,
		BodyMessage:         req.BodyMessage,
		Header:              req.Header,
		HeaderText:          req.HeaderText,
		HeaderTypeID:        req.HeaderTypeID,
		Footer:              req.Footer,
		FooterText:          req.FooterText,
	}
	if req.Buttons != nil {
		in.Buttons = make([]services.ButtonInput, 0, len(req.Buttons))
		for _, b := range req.Buttons {
			in.Buttons = append(in.Buttons, services.ButtonInput{
				Text:        b.Text,
				URL:         b.URL,
				PhoneNumber: b.PhoneNumber,
				TypeID:      b.TypeID,
			})
		}
	}
	return in
}

func (h *TemplateHandler) CreateTemplate(c *fiber.Ctx) error {
	var req dto.TemplateRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	tpl, err := h.templateService.Create(c.Context(), middleware.GetUserID(c), templateInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, tpl)
}

func (h *TemplateHandler) GetTemplate(c *fiber.Ctx) error {
	tpl, err := h.templateService.Get(c.Context(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, tpl)
}

func (h *TemplateHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.templateService.ListActive(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, templates)
}

func (h *TemplateHandler) ListArchivedTemplates(c *fiber.Ctx) error {
	templates, err := h.templateService.ListArchived(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, templates)
}

func (h *TemplateHandler) UpdateTemplate(c *fiber.Ctx) error {
	var req dto.TemplateRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	tpl, err := h.templateService.Update(c.Context(), middleware.GetUserID(c), c.Params("id"), templateInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, tpl)
}
