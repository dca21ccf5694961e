package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/events"
	"github.com/reachdesk/backend/internal/models"
	"go.uber.org/zap"
)

type CampaignService struct {
	*Lifecycle
	campaignRepo CampaignStore
	rec          recorder
}

func NewCampaignService(
	campaignRepo CampaignStore,
	auditRepo AuditStore,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	rec := newRecorder(models.EntityCampaign, auditRepo, publisher, log)
	return &CampaignService{
		Lifecycle:    newLifecycle(campaignRepo, models.CampaignStatusStopped, func(ctx context.Context, userID, id string) error {
			_, err := campaignRepo.Get(ctx, userID, id)
			return err
		}, rec),
		campaignRepo: campaignRepo,
		rec:          rec,
	}
}

func (s *CampaignService) Create(ctx context.Context, userID string, c *models.Campaign) error {
	if userID == "" {
		return apperr.ErrUnauthorized
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return apperr.Validation("name is required", "name")
	}

	c.ID = uuid.NewString()
	c.UserID = userID
	c.Status = models.CampaignStatusRunning
	c.RecordStatus = models.RecordStatusCreated

	if err := s.campaignRepo.Create(ctx, c); err != nil {
		return wrapStoreErr(models.EntityCampaign, "create", err)
	}
	s.rec.logAudit(ctx, userID, "created", c.ID, map[string]any{"name": c.Name})
	return nil
}

func (s *CampaignService) Get(ctx context.Context, userID, id string) (*models.Campaign, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if id == "" {
		return nil, apperr.ErrMissingParameter
	}
	c, err := s.campaignRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, wrapStoreErr(models.EntityCampaign, "get", err)
	}
	return c, nil
}

// ListActive returns the caller's created campaigns, newest first.
func (s *CampaignService) ListActive(ctx context.Context, userID string) ([]models.Campaign, error) {
	return s.list(ctx, userID, models.RecordStatusCreated)
}

func (s *CampaignService) ListArchived(ctx context.Context, userID string) ([]models.Campaign, error) {
	return s.list(ctx, userID, models.RecordStatusArchived)
}

func (s *CampaignService) list(ctx context.Context, userID, recordStatus string) ([]models.Campaign, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	campaigns, err := s.campaignRepo.List(ctx, userID, recordStatus)
	if err != nil {
		return nil, wrapStoreErr(models.EntityCampaign, "list", err)
	}
	return campaigns, nil
}

func (s *CampaignService) Update(ctx context.Context, userID, id string, u models.CampaignUpdate) (*models.Campaign, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if id == "" {
		return nil, apperr.ErrMissingParameter
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return nil, apperr.Validation("name must not be empty", "name")
		}
		u.Name = &name
	}

	c, err := s.campaignRepo.Update(ctx, userID, id, u)
	if err != nil {
		return nil, wrapStoreErr(models.EntityCampaign, "update", err)
	}
	s.rec.logAudit(ctx, userID, "updated", id, nil)
	return c, nil
}
