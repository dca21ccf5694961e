package memstore

import (
	"context"
	"time"

	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/models"
)

// ListStore resolves ownership through the parent campaign, like the SQL
// join in repositories.ListRepo.
type ListStore struct {
	s *Store
}

// ownerOf returns the owner of the list's campaign. Callers hold the lock.
func (l *ListStore) ownerOf(list models.List) (models.Campaign, bool) {
	c, ok := l.s.campaigns[list.CampaignID]
	return c, ok
}

func (l *ListStore) Create(_ context.Context, userID string, list *models.List) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	c, ok := l.s.campaigns[list.CampaignID]
	if !ok || c.UserID != userID || !models.IsVisible(c.RecordStatus) {
		return apperr.ErrNotFound
	}
	list.CreationDate = l.s.now()
	l.s.lists[list.ID] = *list
	return nil
}

func (l *ListStore) owned(userID, id string) (models.List, bool) {
	row, ok := l.s.lists[id]
	if !ok || !models.IsVisible(row.RecordStatus) {
		return models.List{}, false
	}
	c, ok := l.ownerOf(row)
	if !ok || c.UserID != userID {
		return models.List{}, false
	}
	return row, true
}

func (l *ListStore) Get(_ context.Context, userID, id string) (*models.List, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	row, ok := l.owned(userID, id)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &row, nil
}

func (l *ListStore) List(_ context.Context, userID string, f models.ListFilter) ([]models.ListWithCampaign, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	out := []models.ListWithCampaign{}
	for _, row := range l.s.lists {
		if row.RecordStatus != f.RecordStatus {
			continue
		}
		if f.CampaignID != nil && row.CampaignID != *f.CampaignID {
			continue
		}
		c, ok := l.ownerOf(row)
		if !ok || c.UserID != userID {
			continue
		}
		out = append(out, models.ListWithCampaign{List: row, Campaign: c.Name})
	}
	newestFirst(out, func(r models.ListWithCampaign) time.Time { return r.CreationDate })
	return out, nil
}

func (l *ListStore) Update(_ context.Context, userID, id string, u models.ListUpdate) (*models.List, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	row, ok := l.owned(userID, id)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if u.Name != nil {
		row.Name = *u.Name
	}
	if u.SendingType != nil {
		row.SendingType = u.SendingType
	}
	if u.IgnoreCustomersReceivedMessageWithin != nil {
		row.IgnoreCustomersReceivedMessageWithin = u.IgnoreCustomersReceivedMessageWithin
	}
	if u.DailyLimit != nil {
		row.DailyLimit = u.DailyLimit
	}
	if u.DailySendingLimit != nil {
		row.DailySendingLimit = u.DailySendingLimit
	}
	if u.FromSr != nil {
		row.FromSr = u.FromSr
	}
	if u.ToSr != nil {
		row.ToSr = u.ToSr
	}
	if u.Type != nil {
		row.Type = u.Type
	}
	if u.ScheduleDate != nil {
		row.ScheduleDate = u.ScheduleDate
	}
	l.s.lists[id] = row
	return &row, nil
}

func (l *ListStore) Apply(ctx context.Context, userID, id string, ch models.StateChange) (string, error) {
	affected, err := l.ApplyBulk(ctx, userID, []string{id}, ch)
	if err != nil {
		return "", err
	}
	return single(affected)
}

func (l *ListStore) ApplyBulk(_ context.Context, userID string, ids []string, ch models.StateChange) ([]string, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	return applyBulk(ids, ch,
		func(id string) (listRow, bool) {
			row, ok := l.s.lists[id]
			if !ok {
				return listRow{}, false
			}
			if c, ok := l.ownerOf(row); !ok || c.UserID != userID {
				return listRow{}, false
			}
			return listRow{&row}, true
		},
		func(r listRow) { l.s.lists[r.ID] = *r.List },
	), nil
}
