package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/reachdesk/backend/internal/models"
)

type AuditStore struct {
	s *Store
}

func (a *AuditStore) Log(_ context.Context, entry models.AuditLog) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	entry.ID = uuid.New()
	entry.CreatedAt = a.s.now()
	a.s.audit = append(a.s.audit, entry)
	return nil
}

func (a *AuditStore) GetByEntity(_ context.Context, entityType, entityID string, limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}

	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	matched := []models.AuditLog{}
	for _, e := range a.s.audit {
		if e.EntityType == entityType && e.EntityID == entityID {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	if offset >= len(matched) {
		return []models.AuditLog{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
