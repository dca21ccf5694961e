package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/events"
	"github.com/reachdesk/backend/internal/models"
	"go.uber.org/zap"
)

// ListService manages sending lists. A list is only reachable through a
// campaign owned by the caller.
type ListService struct {
	*Lifecycle
	listRepo ListStore
	rec      recorder
}

func NewListService(
	listRepo ListStore,
	auditRepo AuditStore,
	publisher events.Publisher,
	log *zap.Logger,
) *ListService {
	rec := newRecorder(models.EntityList, auditRepo, publisher, log)
	return &ListService{
		Lifecycle: newLifecycle(listRepo, models.ListStatusStopped, func(ctx context.Context, userID, id string) error {
			_, err := listRepo.Get(ctx, userID, id)
			return err
		}, rec),
		listRepo:  listRepo,
		rec:       rec,
	}
}

func validateListType(listType *string) error {
	if listType == nil {
		return nil
	}
	switch *listType {
	case models.ListTypeRunNow, models.ListTypeSchedule:
		return nil
	}
	return apperr.Validation(fmt.Sprintf("type must be %q or %q", models.ListTypeRunNow, models.ListTypeSchedule), "type")
}

func (s *ListService) Create(ctx context.Context, userID string, l *models.List) error {
	if userID == "" {
		return apperr.ErrUnauthorized
	}
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return apperr.Validation("name is required", "name")
	}
	if l.CampaignID == "" {
		return apperr.Validation("campaignId is required", "campaignId")
	}
	if err := validateListType(l.Type); err != nil {
		return err
	}
	if l.Type != nil && *l.Type == models.ListTypeSchedule && l.ScheduleDate == nil {
		return apperr.Validation("scheduleDate is required for scheduled lists", "scheduleDate")
	}

	l.ID = uuid.NewString()
	l.Status = models.ListStatusRunning
	l.RecordStatus = models.RecordStatusCreated

	if err := s.listRepo.Create(ctx, userID, l); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%s %w", models.EntityCampaign, apperr.ErrNotFound)
		}
		return wrapStoreErr(models.EntityList, "create", err)
	}
	s.rec.logAudit(ctx, userID, "created", l.ID, map[string]any{"campaign_id": l.CampaignID})
	return nil
}

func (s *ListService) Get(ctx context.Context, userID, id string) (*models.List, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if id == "" {
		return nil, apperr.ErrMissingParameter
	}
	l, err := s.listRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, wrapStoreErr(models.EntityList, "get", err)
	}
	return l, nil
}

// ListActive returns created lists across the caller's campaigns, or only
// those of campaignID when it is set.
func (s *ListService) ListActive(ctx context.Context, userID string, campaignID *string) ([]models.ListWithCampaign, error) {
	return s.list(ctx, userID, models.ListFilter{RecordStatus: models.RecordStatusCreated, CampaignID: campaignID})
}

func (s *ListService) ListArchived(ctx context.Context, userID string, campaignID *string) ([]models.ListWithCampaign, error) {
	return s.list(ctx, userID, models.ListFilter{RecordStatus: models.RecordStatusArchived, CampaignID: campaignID})
}

func (s *ListService) list(ctx context.Context, userID string, f models.ListFilter) ([]models.ListWithCampaign, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if f.CampaignID != nil && *f.CampaignID == "" {
		f.CampaignID = nil
	}
	lists, err := s.listRepo.List(ctx, userID, f)
	if err != nil {
		return nil, wrapStoreErr(models.EntityList, "list", err)
	}
	return lists, nil
}

func (s *ListService) Update(ctx context.Context, userID, id string, u models.ListUpdate) (*models.List, error) {
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
	if err := validateListType(u.Type); err != nil {
		return nil, err
	}
	if u.Type != nil && *u.Type == models.ListTypeSchedule && u.ScheduleDate == nil {
		current, err := s.listRepo.Get(ctx, userID, id)
		if err != nil {
			return nil, wrapStoreErr(models.EntityList, "update", err)
		}
		if current.ScheduleDate == nil {
			return nil, apperr.Validation("scheduleDate is required for scheduled lists", "scheduleDate")
		}
	}

	l, err := s.listRepo.Update(ctx, userID, id, u)
	if err != nil {
		return nil, wrapStoreErr(models.EntityList, "update", err)
	}
	s.rec.logAudit(ctx, userID, "updated", id, nil)
	return l, nil
}
