package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/events"
	"github.com/reachdesk/backend/internal/metrics"
	"github.com/reachdesk/backend/internal/models"
	"go.uber.org/zap"
)

// recorder writes the audit trail and lifecycle events for one entity.
// Neither failure is returned to the caller.
type recorder struct {
	entity    string
	audit     AuditStore
	publisher events.Publisher
	log       *zap.Logger
}

func newRecorder(entity string, audit AuditStore, publisher events.Publisher, log *zap.Logger) recorder {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return recorder{entity: entity, audit: audit, publisher: publisher, log: log}
}

func (r recorder) logAudit(ctx context.Context, userID, action, id string, meta map[string]any) {
	if r.audit == nil {
		return
	}
	err := r.audit.Log(ctx, models.AuditLog{
		ActorUserID: userID,
		Action:      r.entity + "_" + action,
		EntityType:  r.entity,
		EntityID:    id,
		Meta:        meta,
	})
	if err != nil {
		r.log.Warn("audit log failed",
			zap.String("entity", r.entity),
			zap.String("action", action),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}

// transitioned records a lifecycle change over ids. Empty ids record nothing.
func (r recorder) transitioned(ctx context.Context, userID, action string, ids []string) {
	if len(ids) == 0 {
		return
	}
	metrics.LifecycleTransitionsTotal.WithLabelValues(r.entity, action).Add(float64(len(ids)))
	for _, id := range ids {
		r.logAudit(ctx, userID, action, id, nil)
	}

	err := r.publisher.Publish(ctx, events.LifecycleChannel, events.LifecycleEvent(r.entity, action, userID, ids))
	if err != nil {
		metrics.EventPublishFailureTotal.WithLabelValues(events.LifecycleChannel).Inc()
		r.log.Warn("lifecycle event publish failed",
			zap.String("entity", r.entity),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// history pages through the audit rows of one entity id.
func (r recorder) history(ctx context.Context, id string, limit, offset int) ([]models.AuditLog, error) {
	if r.audit == nil {
		return []models.AuditLog{}, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	} else if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	logs, err := r.audit.GetByEntity(ctx, r.entity, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("audit history %s: %w", r.entity, err)
	}
	return logs, nil
}

// visibleFunc returns apperr.ErrNotFound unless userID owns the visible row id.
type visibleFunc func(ctx context.Context, userID, id string) error

// Lifecycle runs the record state machine for one entity type. Campaign,
// list and template services embed it.
type Lifecycle struct {
	store         LifecycleStore
	stoppedStatus string
	visible       visibleFunc
	rec           recorder
}

func newLifecycle(store LifecycleStore, stoppedStatus string, visible visibleFunc, rec recorder) *Lifecycle {
	return &Lifecycle{store: store, stoppedStatus: stoppedStatus, visible: visible, rec: rec}
}

// History returns the audit trail of a row the caller can still see.
func (l *Lifecycle) History(ctx context.Context, userID, id string, limit, offset int) ([]models.AuditLog, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if id == "" {
		return nil, apperr.ErrMissingParameter
	}
	if err := l.visible(ctx, userID, id); err != nil {
		return nil, l.wrap("history", err)
	}
	return l.rec.history(ctx, id, limit, offset)
}

// Archive moves a created row to archived and stops it.
func (l *Lifecycle) Archive(ctx context.Context, userID, id string) (string, error) {
	return l.apply(ctx, userID, id, models.TransitionArchive)
}

// Stop sets the sending status to stopped and leaves the record status.
func (l *Lifecycle) Stop(ctx context.Context, userID, id string) (string, error) {
	return l.apply(ctx, userID, id, models.TransitionStop)
}

// Restore moves an archived row back to created. The sending status is kept.
func (l *Lifecycle) Restore(ctx context.Context, userID, id string) (string, error) {
	return l.apply(ctx, userID, id, models.TransitionRestore)
}

// Delete soft-deletes a created or archived row.
func (l *Lifecycle) Delete(ctx context.Context, userID, id string) (string, error) {
	return l.apply(ctx, userID, id, models.TransitionDelete)
}

// BulkDelete soft-deletes the subset of ids owned by userID and returns it.
// Foreign and unknown ids are skipped without error.
func (l *Lifecycle) BulkDelete(ctx context.Context, userID string, ids []string) ([]string, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	affected, err := l.store.ApplyBulk(ctx, userID, ids, models.TransitionDelete.Resolve(l.stoppedStatus))
	if err != nil {
		return nil, fmt.Errorf("bulk delete %s: %w", l.rec.entity, err)
	}
	l.rec.transitioned(ctx, userID, models.TransitionDelete.Action, affected)
	return affected, nil
}

func (l *Lifecycle) apply(ctx context.Context, userID, id string, t models.Transition) (string, error) {
	if userID == "" {
		return "", apperr.ErrUnauthorized
	}
	if id == "" {
		return "", apperr.ErrMissingParameter
	}

	affected, err := l.store.Apply(ctx, userID, id, t.Resolve(l.stoppedStatus))
	if err != nil {
		return "", l.wrap(t.Action, err)
	}
	l.rec.transitioned(ctx, userID, t.Action, []string{affected})
	return affected, nil
}

// wrap turns a store error into the error returned to handlers. Not found
// keeps its kind and gains the entity name.
func (l *Lifecycle) wrap(op string, err error) error {
	return wrapStoreErr(l.rec.entity, op, err)
}

func wrapStoreErr(entity, op string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("%s %w", entity, apperr.ErrNotFound)
	}
	if apperr.IsValidation(err) {
		return err
	}
	return fmt.Errorf("%s %s: %w", op, entity, err)
}
