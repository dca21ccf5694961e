package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/reachdesk/backend/internal/http/dto"
	"github.com/reachdesk/backend/internal/middleware"
	"github.com/reachdesk/backend/internal/models"
	"go.uber.org/zap"
)

type lifecycleService interface {
	Archive(ctx context.Context, userID, id string) (string, error)
	Stop(ctx context.Context, userID, id string) (string, error)
	Restore(ctx context.Context, userID, id string) (string, error)
	Delete(ctx context.Context, userID, id string) (string, error)
	BulkDelete(ctx context.Context, userID string, ids []string) ([]string, error)
	History(ctx context.Context, userID, id string, limit, offset int) ([]models.AuditLog, error)
}

// lifecycleHandler serves the transition endpoints shared by campaigns,
// lists and templates.
type lifecycleHandler struct {
	svc lifecycleService
	log *zap.Logger
}

type transitionFunc func(ctx context.Context, userID, id string) (string, error)

func (h lifecycleHandler) transition(fn transitionFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := fn(c.Context(), middleware.GetUserID(c), c.Params("id"))
		if err != nil {
			return respondError(c, h.log, err)
		}
		return ok(c, dto.IDResponse{ID: id})
	}
}

func (h lifecycleHandler) Archive(c *fiber.Ctx) error { return h.transition(h.svc.Archive)(c) }
func (h lifecycleHandler) Stop(c *fiber.Ctx) error    { return h.transition(h.svc.Stop)(c) }
func (h lifecycleHandler) Restore(c *fiber.Ctx) error { return h.transition(h.svc.Restore)(c) }
func (h lifecycleHandler) Delete(c *fiber.Ctx) error  { return h.transition(h.svc.Delete)(c) }

func (h lifecycleHandler) BulkDelete(c *fiber.Ctx) error {
	var req dto.BulkDeleteRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	ids, err := h.svc.BulkDelete(c.Context(), middleware.GetUserID(c), req.IDs)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, dto.IDsResponse(ids))
}

// History serves ?limit=&offset= pages of the row's audit trail.
func (h lifecycleHandler) History(c *fiber.Ctx) error {
	logs, err := h.svc.History(c.Context(), middleware.GetUserID(c), c.Params("id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, logs)
}
