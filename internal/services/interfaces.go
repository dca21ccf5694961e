package services

import (
	"context"

	"github.com/reachdesk/backend/internal/models"
)

// LifecycleStore applies a resolved transition to rows owned by userID.
// Apply returns apperr.ErrNotFound when no row matched; ApplyBulk returns
// the ids it changed.
type LifecycleStore interface {
	Apply(ctx context.Context, userID, id string, ch models.StateChange) (string, error)
	ApplyBulk(ctx context.Context, userID string, ids []string, ch models.StateChange) ([]string, error)
}

type CampaignStore interface {
	LifecycleStore
	Create(ctx context.Context, c *models.Campaign) error
	Get(ctx context.Context, userID, id string) (*models.Campaign, error)
	List(ctx context.Context, userID, recordStatus string) ([]models.Campaign, error)
	Update(ctx context.Context, userID, id string, u models.CampaignUpdate) (*models.Campaign, error)
}

type ListStore interface {
	LifecycleStore
	// Create reports apperr.ErrNotFound when the campaign is not owned by
	// userID or is deleted.
	Create(ctx context.Context, userID string, l *models.List) error
	Get(ctx context.Context, userID, id string) (*models.List, error)
	List(ctx context.Context, userID string, f models.ListFilter) ([]models.ListWithCampaign, error)
	Update(ctx context.Context, userID, id string, u models.ListUpdate) (*models.List, error)
}

type TemplateStore interface {
	LifecycleStore
	Create(ctx context.Context, t *models.Template, parts models.TemplateParts) error
	Get(ctx context.Context, userID, id string) (*models.TemplateDetail, error)
	List(ctx context.Context, userID, recordStatus string) ([]models.TemplateWithLookups, error)
	Update(ctx context.Context, userID, id string, u models.TemplateUpdate, parts models.TemplateParts) (*models.Template, error)
}

type ContactStore interface {
	Create(ctx context.Context, c *models.Contact) error
	CreateMany(ctx context.Context, contacts []models.Contact) error
	Get(ctx context.Context, userID, id string) (*models.Contact, error)
	List(ctx context.Context, userID, flag string) ([]models.Contact, error)
	Update(ctx context.Context, userID, id string, u models.ContactUpdate) (*models.Contact, error)
	Delete(ctx context.Context, userID, id string) (string, error)
	DeleteMany(ctx context.Context, userID string, ids []string) ([]string, error)
}

type LookupStore interface {
	List(ctx context.Context, kind models.LookupKind) ([]models.Lookup, error)
	Exists(ctx context.Context, kind models.LookupKind, id string) (bool, error)
}

// AuditStore keeps the audit trail. GetByEntity returns newest first.
type AuditStore interface {
	Log(ctx context.Context, entry models.AuditLog) error
	GetByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]models.AuditLog, error)
}
