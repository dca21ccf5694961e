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

// ContactService has no lifecycle axis: deletes remove rows.
type ContactService struct {
	contactRepo ContactStore
	rec         recorder
}

func NewContactService(
	contactRepo ContactStore,
	auditRepo AuditStore,
	publisher events.Publisher,
	log *zap.Logger,
) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		rec:         newRecorder(models.EntityContact, auditRepo, publisher, log),
	}
}

func checkContact(c *models.Contact) error {
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Phone == "" {
		return apperr.Validation("phone is required", "phone")
	}
	return nil
}

func (s *ContactService) Create(ctx context.Context, userID string, c *models.Contact) error {
	if userID == "" {
		return apperr.ErrUnauthorized
	}
	if err := checkContact(c); err != nil {
		return err
	}
	c.ID = uuid.NewString()
	c.UserID = userID

	if err := s.contactRepo.Create(ctx, c); err != nil {
		return wrapStoreErr(models.EntityContact, "create", err)
	}
	s.rec.logAudit(ctx, userID, "created", c.ID, nil)
	return nil
}

// BulkCreate inserts all contacts or none.
func (s *ContactService) BulkCreate(ctx context.Context, userID string, contacts []models.Contact) ([]models.Contact, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	for i := range contacts {
		if err := checkContact(&contacts[i]); err != nil {
			return nil, err
		}
		contacts[i].ID = uuid.NewString()
		contacts[i].UserID = userID
	}
	if len(contacts) == 0 {
		return []models.Contact{}, nil
	}

	if err := s.contactRepo.CreateMany(ctx, contacts); err != nil {
		return nil, wrapStoreErr(models.EntityContact, "bulk create", err)
	}
	for _, c := range contacts {
		s.rec.logAudit(ctx, userID, "created", c.ID, map[string]any{"bulk": true})
	}
	return contacts, nil
}

func (s *ContactService) Get(ctx context.Context, userID, id string) (*models.Contact, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if id == "" {
		return nil, apperr.ErrMissingParameter
	}
	c, err := s.contactRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, wrapStoreErr(models.EntityContact, "get", err)
	}
	return c, nil
}

// List returns the caller's contacts, newest first. A non-empty filterKey
// keeps only contacts with that flag set.
func (s *ContactService) List(ctx context.Context, userID, filterKey string) ([]models.Contact, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if filterKey != "" && !models.IsContactFlag(filterKey) {
		return nil, apperr.Validation("unknown filter key "+filterKey, "filterKey")
	}
	contacts, err := s.contactRepo.List(ctx, userID, filterKey)
	if err != nil {
		return nil, wrapStoreErr(models.EntityContact, "list", err)
	}
	return contacts, nil
}

// Update applies the non-nil fields of u. A phone, when sent, must not be
// blank.
func (s *ContactService) Update(ctx context.Context, userID, id string, u models.ContactUpdate) (*models.Contact, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if id == "" {
		return nil, apperr.ErrMissingParameter
	}
	if u.Phone != nil {
		phone := strings.TrimSpace(*u.Phone)
		if phone == "" {
			return nil, apperr.Validation("phone must not be empty", "phone")
		}
		u.Phone = &phone
	}
	updated, err := s.contactRepo.Update(ctx, userID, id, u)
	if err != nil {
		return nil, wrapStoreErr(models.EntityContact, "update", err)
	}
	s.rec.logAudit(ctx, userID, "updated", id, nil)
	return updated, nil
}

func (s *ContactService) Delete(ctx context.Context, userID, id string) (string, error) {
	if userID == "" {
		return "", apperr.ErrUnauthorized
	}
	if id == "" {
		return "", apperr.ErrMissingParameter
	}
	deleted, err := s.contactRepo.Delete(ctx, userID, id)
	if err != nil {
		return "", wrapStoreErr(models.EntityContact, "delete", err)
	}
	s.rec.transitioned(ctx, userID, "delete", []string{deleted})
	return deleted, nil
}

func (s *ContactService) BulkDelete(ctx context.Context, userID string, ids []string) ([]string, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	deleted, err := s.contactRepo.DeleteMany(ctx, userID, ids)
	if err != nil {
		return nil, wrapStoreErr(models.EntityContact, "bulk delete", err)
	}
	s.rec.transitioned(ctx, userID, "delete", deleted)
	return deleted, nil
}
