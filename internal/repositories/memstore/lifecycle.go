package memstore

import (
	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/models"
)

// lifecycleRow exposes the two status axes of a stored row.
type lifecycleRow interface {
	recordStatus() string
	set(ch models.StateChange)
}

type campaignRow struct{ *models.Campaign }

func (r campaignRow) recordStatus() string { return r.RecordStatus }
func (r campaignRow) set(ch models.StateChange) {
	if ch.RecordStatus != "" {
		r.RecordStatus = ch.RecordStatus
	}
	if ch.Status != "" {
		r.Status = ch.Status
	}
}

type listRow struct{ *models.List }

func (r listRow) recordStatus() string { return r.RecordStatus }
func (r listRow) set(ch models.StateChange) {
	if ch.RecordStatus != "" {
		r.RecordStatus = ch.RecordStatus
	}
	if ch.Status != "" {
		r.Status = ch.Status
	}
}

type templateRow struct{ *models.Template }

func (r templateRow) recordStatus() string { return r.RecordStatus }
func (r templateRow) set(ch models.StateChange) {
	if ch.RecordStatus != "" {
		r.RecordStatus = ch.RecordStatus
	}
	if ch.Status != "" {
		r.Status = ch.Status
	}
}

// applyBulk changes every id for which lookup returns an owned row in one of
// ch.From. lookup returns nil for absent or foreign rows; commit writes the
// row back. Callers hold the write lock.
func applyBulk[R lifecycleRow](ids []string, ch models.StateChange, lookup func(id string) (R, bool), commit func(R)) []string {
	affected := []string{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		row, ok := lookup(id)
		if !ok || !ch.Matches(row.recordStatus()) {
			continue
		}
		row.set(ch)
		commit(row)
		affected = append(affected, id)
	}
	return affected
}

func single(affected []string) (string, error) {
	if len(affected) == 0 {
		return "", apperr.ErrNotFound
	}
	return affected[0], nil
}
