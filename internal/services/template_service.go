package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/events"
	"github.com/reachdesk/backend/internal/models"
	"go.uber.org/zap"
)

// TemplateInput is a full template edit, parts included.
type TemplateInput struct {
	Name                string
	AllowCategoryChange bool
	CategoryID          string
	TypeID              string
	LanguageID          string
	BodyMessage         string

	Header       bool
	HeaderText   *string
	HeaderTypeID string

	Footer     bool
	FooterText string

	// Buttons nil keeps the current buttons on update.
	Buttons []ButtonInput
}

type ButtonInput struct {
	Text        string
	URL         *string
	PhoneNumber *string
	TypeID      string
}

type TemplateService struct {
	*Lifecycle
	templateRepo TemplateStore
	lookupRepo   LookupStore
	rec          recorder
}

func NewTemplateService(
	templateRepo TemplateStore,
	lookupRepo LookupStore,
	auditRepo AuditStore,
	publisher events.Publisher,
	log *zap.Logger,
) *TemplateService {
	rec := newRecorder(models.EntityTemplate, auditRepo, publisher, log)
	return &TemplateService{
		Lifecycle:    newLifecycle(templateRepo, models.TemplateStatusStopped, func(ctx context.Context, userID, id string) error {
			_, err := templateRepo.Get(ctx, userID, id)
			return err
		}, rec),
		templateRepo: templateRepo,
		lookupRepo:   lookupRepo,
		rec:          rec,
	}
}

type lookupRef struct {
	kind  models.LookupKind
	id    string
	field string
}

// validate checks the payload shape and every lookup reference. It runs
// before any template row is touched.
func (s *TemplateService) validate(ctx context.Context, in *TemplateInput) error {
	in.Name = strings.TrimSpace(in.Name)
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.BodyMessage) == "" {
		missing = append(missing, "bodyMessage")
	}
	if in.Header && in.HeaderTypeID == "" {
		missing = append(missing, "headerTypeId")
	}
	if in.Footer && strings.TrimSpace(in.FooterText) == "" {
		missing = append(missing, "footerText")
	}
	for i, b := range in.Buttons {
		if strings.TrimSpace(b.Text) == "" {
			missing = append(missing, fmt.Sprintf("buttons[%d].text", i))
		}
	}
	if len(missing) > 0 {
		return apperr.Validation("missing required fields: "+strings.Join(missing, ", "), missing...)
	}

	refs := []lookupRef{
		{models.LookupCategory, in.CategoryID, "categoryId"},
		{models.LookupType, in.TypeID, "typeId"},
		{models.LookupLanguage, in.LanguageID, "languageId"},
	}
	if in.Header {
		refs = append(refs, lookupRef{models.LookupHeaderType, in.HeaderTypeID, "headerTypeId"})
	}
	for i, b := range in.Buttons {
		refs = append(refs, lookupRef{models.LookupButtonType, b.TypeID, fmt.Sprintf("buttons[%d].typeId", i)})
	}

	var unknown []string
	for _, ref := range refs {
		ok, err := s.lookupRepo.Exists(ctx, ref.kind, ref.id)
		if err != nil {
			return fmt.Errorf("check %s: %w", ref.kind, err)
		}
		if !ok {
			unknown = append(unknown, ref.field)
		}
	}
	if len(unknown) > 0 {
		return apperr.Validation("unknown reference: "+strings.Join(unknown, ", "), unknown...)
	}
	return nil
}

// parts builds the sub-rows with fresh ids. The store may swap a header or
// footer id for the one the template already references.
func (in TemplateInput) parts() models.TemplateParts {
	var p models.TemplateParts
	if in.Header {
		p.Header = &models.TemplateHeader{ID: uuid.NewString(), Text: in.HeaderText, TypeID: in.HeaderTypeID}
	}
	if in.Footer {
		p.Footer = &models.TemplateFooter{ID: uuid.NewString(), Text: in.FooterText}
	}
	if in.Buttons != nil {
		p.Buttons = make([]models.TemplateButton, 0, len(in.Buttons))
		for _, b := range in.Buttons {
			p.Buttons = append(p.Buttons, models.TemplateButton{
				ID:          uuid.NewString(),
				Text:        b.Text,
				URL:         b.URL,
				PhoneNumber: b.PhoneNumber,
				TypeID:      b.TypeID,
			})
		}
	}
	return p
}

func (s *TemplateService) Create(ctx context.Context, userID string, in TemplateInput) (*models.Template, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	t := &models.Template{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Name:                in.Name,
		AllowCategoryChange: in.AllowCategoryChange,
		CategoryID:          in.CategoryID,
		TypeID:              in.TypeID,
		LanguageID:          in.LanguageID,
		BodyMessage:         in.BodyMessage,
		Status:              models.TemplateStatusRunning,
		RecordStatus:        models.RecordStatusCreated,
	}
	if err := s.templateRepo.Create(ctx, t, in.parts()); err != nil {
		return nil, wrapStoreErr(models.EntityTemplate, "create", err)
	}
	s.rec.logAudit(ctx, userID, "created", t.ID, map[string]any{
		"header": t.HeaderID != nil,
		"footer": t.FooterID != nil,
	})
	return t, nil
}

func (s *TemplateService) Get(ctx context.Context, userID, id string) (*models.TemplateDetail, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if id == "" {
		return nil, apperr.ErrMissingParameter
	}
	t, err := s.templateRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, wrapStoreErr(models.EntityTemplate, "get", err)
	}
	return t, nil
}

func (s *TemplateService) ListActive(ctx context.Context, userID string) ([]models.TemplateWithLookups, error) {
	return s.list(ctx, userID, models.RecordStatusCreated)
}

func (s *TemplateService) ListArchived(ctx context.Context, userID string) ([]models.TemplateWithLookups, error) {
	return s.list(ctx, userID, models.RecordStatusArchived)
}

func (s *TemplateService) list(ctx context.Context, userID, recordStatus string) ([]models.TemplateWithLookups, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	templates, err := s.templateRepo.List(ctx, userID, recordStatus)
	if err != nil {
		return nil, wrapStoreErr(models.EntityTemplate, "list", err)
	}
	return templates, nil
}

// Update replaces the template fields and re-attaches header and footer
// according to the flags. A detached header or footer row is kept.
func (s *TemplateService) Update(ctx context.Context, userID, id string, in TemplateInput) (*models.Template, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if id == "" {
		return nil, apperr.ErrMissingParameter
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	u := models.TemplateUpdate{
		Name:                in.Name,
		AllowCategoryChange: in.AllowCategoryChange,
		CategoryID:          in.CategoryID,
		TypeID:              in.TypeID,
		LanguageID:          in.LanguageID,
		BodyMessage:         in.BodyMessage,
	}
	t, err := s.templateRepo.Update(ctx, userID, id, u, in.parts())
	if err != nil {
		return nil, wrapStoreErr(models.EntityTemplate, "update", err)
	}
	s.rec.logAudit(ctx, userID, "updated", id, map[string]any{
		"header": t.HeaderID != nil,
		"footer": t.FooterID != nil,
	})
	return t, nil
}
