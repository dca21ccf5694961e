package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reachdesk/backend/internal/http/dto"
	"github.com/reachdesk/backend/internal/middleware"
	"github.com/reachdesk/backend/internal/models"
	"github.com/reachdesk/backend/internal/services"
	"go.uber.org/zap"
)

type ListHandler struct {
	lifecycleHandler
	listService *services.ListService
	log         *zap.Logger
}

func NewListHandler(listService *services.ListService, log *zap.Logger) *ListHandler {
	return &ListHandler{
		lifecycleHandler: lifecycleHandler{svc: listService, log: log},
		listService:      listService,
		log:              log,
	}
}

func campaignFilter(c *fiber.Ctx) *string {
	if v := c.Query("campaignId"); v != "" {
		return &v
	}
	return nil
}

func (h *ListHandler) CreateList(c *fiber.Ctx) error {
	var req dto.CreateListRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	list := &models.List{
		Name:                                 req.Name,
		CampaignID:                           req.CampaignID,
		SendingType:                          req.SendingType,
		IgnoreCustomersReceivedMessageWithin: req.IgnoreCustomersReceivedMessage,
		DailyLimit:                           req.DailyLimit,
		DailySendingLimit:                    req.DailySendingLimit,
		FromSr:                               req.FromSrl,
		ToSr:                                 req.ToSrl,
		Type:                                 req.Type,
		ScheduleDate:                         req.ScheduleDate,
	}
	if err := h.listService.Create(c.Context(), middleware.GetUserID(c), list); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, list)
}

func (h *ListHandler) GetList(c *fiber.Ctx) error {
	list, err := h.listService.Get(c.Context(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, list)
}

func (h *ListHandler) ListLists(c *fiber.Ctx) error {
	lists, err := h.listService.ListActive(c.Context(), middleware.GetUserID(c), campaignFilter(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, lists)
}

func (h *ListHandler) ListArchivedLists(c *fiber.Ctx) error {
	lists, err := h.listService.ListArchived(c.Context(), middleware.GetUserID(c), campaignFilter(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, lists)
}

func (h *ListHandler) UpdateList(c *fiber.Ctx) error {
	var req dto.UpdateListRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	updated, err := h.listService.Update(c.Context(), middleware.GetUserID(c), c.Params("id"), models.ListUpdate{
		Name:                                 req.Name,
		SendingType:                          req.SendingType,
		IgnoreCustomersReceivedMessageWithin: req.IgnoreCustomersReceivedMessage,
		DailyLimit:                           req.DailyLimit,
		DailySendingLimit:                    req.DailySendingLimit,
		FromSr:                               req.FromSrl,
		ToSr:                                 req.ToSrl,
		Type:                                 req.Type,
		ScheduleDate:                         req.ScheduleDate,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, updated)
}
