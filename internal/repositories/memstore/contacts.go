package memstore

import (
	"context"
	"time"

	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/models"
)

type ContactStore struct {
	s *Store
}

func (c *ContactStore) Create(_ context.Context, contact *models.Contact) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	contact.CreatedAt = c.s.now()
	c.s.contacts[contact.ID] = *contact
	return nil
}

func (c *ContactStore) CreateMany(_ context.Context, contacts []models.Contact) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for i := range contacts {
		contacts[i].CreatedAt = c.s.now()
		c.s.contacts[contacts[i].ID] = contacts[i]
	}
	return nil
}

func (c *ContactStore) Get(_ context.Context, userID, id string) (*models.Contact, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	row, ok := c.s.contacts[id]
	if !ok || row.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	return &row, nil
}

func (c *ContactStore) List(_ context.Context, userID, flag string) ([]models.Contact, error) {
	if flag != "" && !models.IsContactFlag(flag) {
		return nil, apperr.Validation("unknown filter key", "filterKey")
	}

	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	out := []models.Contact{}
	for _, row := range c.s.contacts {
		if row.UserID != userID {
			continue
		}
		if flag != "" && !row.Flag(flag) {
			continue
		}
		out = append(out, row)
	}
	newestFirst(out, func(r models.Contact) time.Time { return r.CreatedAt })
	return out, nil
}

func (c *ContactStore) Update(_ context.Context, userID, id string, u models.ContactUpdate) (*models.Contact, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	row, ok := c.s.contacts[id]
	if !ok || row.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	setIf(&row.Phone, u.Phone)
	setIf(&row.FirstName, u.FirstName)
	setIf(&row.LastName, u.LastName)
	setIf(&row.Email, u.Email)
	setIf(&row.HasWhatsApp, u.HasWhatsApp)
	setIf(&row.BlockedCampaigns, u.BlockedCampaigns)
	setIf(&row.BlockedFromBot, u.BlockedFromBot)
	setIf(&row.BlockedFromCC, u.BlockedFromCC)
	c.s.contacts[id] = row
	return &row, nil
}

func (c *ContactStore) Delete(ctx context.Context, userID, id string) (string, error) {
	deleted, err := c.DeleteMany(ctx, userID, []string{id})
	if err != nil {
		return "", err
	}
	return single(deleted)
}

func (c *ContactStore) DeleteMany(_ context.Context, userID string, ids []string) ([]string, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	deleted := []string{}
	for _, id := range ids {
		row, ok := c.s.contacts[id]
		if !ok || row.UserID != userID {
			continue
		}
		delete(c.s.contacts, id)
		deleted = append(deleted, id)
	}
	return deleted, nil
}
