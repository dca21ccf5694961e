package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reachdesk/backend/internal/http/dto"
	"github.com/reachdesk/backend/internal/middleware"
	"github.com/reachdesk/backend/internal/models"
	"github.com/reachdesk/backend/internal/services"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	lifecycleHandler
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{
		lifecycleHandler: lifecycleHandler{svc: campaignService, log: log},
		campaignService:  campaignService,
		log:              log,
	}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	campaign := &models.Campaign{
		Name:  req.Name,
		Excel: req.Excel,
	}
	if err := h.campaignService.Create(c.Context(), middleware.GetUserID(c), campaign); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, campaign)
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	campaign, err := h.campaignService.Get(c.Context(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, campaign)
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.campaignService.ListActive(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, campaigns)
}

func (h *CampaignHandler) ListArchivedCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.campaignService.ListArchived(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, campaigns)
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	var req dto.UpdateCampaignRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	updated, err := h.campaignService.Update(c.Context(), middleware.GetUserID(c), c.Params("id"), models.CampaignUpdate{
		Name:  req.Name,
		Excel: req.Excel,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, updated)
}
