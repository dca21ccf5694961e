package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reachdesk/backend/internal/http/dto"
	"github.com/reachdesk/backend/internal/middleware"
	"github.com/reachdesk/backend/internal/models"
	"github.com/reachdesk/backend/internal/services"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contactService *services.ContactService
	log            *zap.Logger
}

func NewContactHandler(contactService *services.ContactService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{contactService: contactService, log: log}
}

func contactModel(req dto.ContactRequest) models.Contact {
	hasWhatsApp := true
	if req.HasWhatsApp != nil {
		hasWhatsApp = *req.HasWhatsApp
	}
	return models.Contact{
		Phone:            req.Phone,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		HasWhatsApp:      hasWhatsApp,
		BlockedCampaigns: req.BlockedCampaigns,
		BlockedFromBot:   req.BlockedFromBot,
		BlockedFromCC:    req.BlockedFromCC,
	}
}

func (h *ContactHandler) CreateContact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	contact := contactModel(req)
	if err := h.contactService.Create(c.Context(), middleware.GetUserID(c), &contact); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, contact)
}

func (h *ContactHandler) BulkCreateContacts(c *fiber.Ctx) error {
	var reqs []dto.ContactRequest
	if err := parseBody(c, &reqs); err != nil {
		return respondError(c, h.log, err)
	}
	contacts := make([]models.Contact, 0, len(reqs))
	for _, req := range reqs {
		contacts = append(contacts, contactModel(req))
	}
	created, err := h.contactService.BulkCreate(c.Context(), middleware.GetUserID(c), contacts)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, created)
}

func (h *ContactHandler) GetContact(c *fiber.Ctx) error {
	contact, err := h.contactService.Get(c.Context(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, contact)
}

// ListContacts accepts ?filterKey=hasWhatsApp|blockedCampaigns|blockedFromBot|blockedFromCC.
func (h *ContactHandler) ListContacts(c *fiber.Ctx) error {
	contacts, err := h.contactService.List(c.Context(), middleware.GetUserID(c), c.Query("filterKey"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, contacts)
}

func (h *ContactHandler) UpdateContact(c *fiber.Ctx) error {
	var req dto.UpdateContactRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	updated, err := h.contactService.Update(c.Context(), middleware.GetUserID(c), c.Params("id"), models.ContactUpdate{
		Phone:            req.Phone,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		HasWhatsApp:      req.HasWhatsApp,
		BlockedCampaigns: req.BlockedCampaigns,
		BlockedFromBot:   req.BlockedFromBot,
		BlockedFromCC:    req.BlockedFromCC,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, updated)
}

func (h *ContactHandler) DeleteContact(c *fiber.Ctx) error {
	id, err := h.contactService.Delete(c.Context(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, dto.IDResponse{ID: id})
}

func (h *ContactHandler) BulkDeleteContacts(c *fiber.Ctx) error {
	var req dto.BulkDeleteRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	ids, err := h.contactService.BulkDelete(c.Context(), middleware.GetUserID(c), req.IDs)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, dto.IDsResponse(ids))
}
