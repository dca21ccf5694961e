package memstore

import (
	"context"
	"time"

	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/models"
)

type CampaignStore struct {
	s *Store
}

func (c *CampaignStore) Create(_ context.Context, campaign *models.Campaign) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	campaign.CreationDate = c.s.now()
	c.s.campaigns[campaign.ID] = *campaign
	return nil
}

// owned returns a visible campaign of userID. Callers hold the lock.
func (c *CampaignStore) owned(userID, id string) (models.Campaign, bool) {
	row, ok := c.s.campaigns[id]
	if !ok || row.UserID != userID || !models.IsVisible(row.RecordStatus) {
		return models.Campaign{}, false
	}
	return row, true
}

func (c *CampaignStore) Get(_ context.Context, userID, id string) (*models.Campaign, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	row, ok := c.owned(userID, id)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &row, nil
}

func (c *CampaignStore) List(_ context.Context, userID, recordStatus string) ([]models.Campaign, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	out := []models.Campaign{}
	for _, row := range c.s.campaigns {
		if row.UserID == userID && row.RecordStatus == recordStatus {
			out = append(out, row)
		}
	}
	newestFirst(out, func(r models.Campaign) time.Time { return r.CreationDate })
	return out, nil
}

func (c *CampaignStore) Update(_ context.Context, userID, id string, u models.CampaignUpdate) (*models.Campaign, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	row, ok := c.owned(userID, id)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	setIf(&row.Name, u.Name)
	setIf(&row.Excel, u.Excel)
	c.s.campaigns[id] = row
	return &row, nil
}

func (c *CampaignStore) Apply(ctx context.Context, userID, id string, ch models.StateChange) (string, error) {
	affected, err := c.ApplyBulk(ctx, userID, []string{id}, ch)
	if err != nil {
		return "", err
	}
	return single(affected)
}

func (c *CampaignStore) ApplyBulk(_ context.Context, userID string, ids []string, ch models.StateChange) ([]string, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	return applyBulk(ids, ch,
		func(id string) (campaignRow, bool) {
			row, ok := c.s.campaigns[id]
			if !ok || row.UserID != userID {
				return campaignRow{}, false
			}
			return campaignRow{&row}, true
		},
		func(r campaignRow) { c.s.campaigns[r.ID] = *r.Campaign },
	), nil
}
