package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/models"
)

type LookupStore struct {
	s *Store
}

func (l *LookupStore) List(_ context.Context, kind models.LookupKind) ([]models.Lookup, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	rows, ok := l.s.lookups[kind]
	if !ok {
		return nil, fmt.Errorf("unknown lookup kind %q", kind)
	}
	out := append([]models.Lookup{}, rows...)
	if kind == models.LookupButtonType {
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out, nil
}

func (l *LookupStore) Exists(_ context.Context, kind models.LookupKind, id string) (bool, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	rows, ok := l.s.lookups[kind]
	if !ok {
		return false, fmt.Errorf("unknown lookup kind %q", kind)
	}
	for _, r := range rows {
		if r.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Remove drops a lookup row. Templates referencing it stop appearing in
// reads, as they would after a manual delete in postgres.
func (l *LookupStore) Remove(kind models.LookupKind, id string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	rows := l.s.lookups[kind]
	for i, r := range rows {
		if r.ID == id {
			l.s.lookups[kind] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}
