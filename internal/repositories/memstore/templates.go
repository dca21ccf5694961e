package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/models"
)

type TemplateStore struct {
	s *Store
}

// lookupName resolves a lookup id. Callers hold the lock.
func (t *TemplateStore) lookupName(kind models.LookupKind, id string) (string, bool) {
	for _, l := range t.s.lookups[kind] {
		if l.ID == id {
			return l.Name, true
		}
	}
	return "", false
}

// withLookups mirrors the inner joins of the SQL read path: a template whose
// category, type or language does not resolve is not returned.
func (t *TemplateStore) withLookups(row models.Template) (models.TemplateWithLookups, bool) {
	out := models.TemplateWithLookups{Template: row}
	var ok bool
	if out.Category, ok = t.lookupName(models.LookupCategory, row.CategoryID); !ok {
		return out, false
	}
	if out.Type, ok = t.lookupName(models.LookupType, row.TypeID); !ok {
		return out, false
	}
	if out.Language, ok = t.lookupName(models.LookupLanguage, row.LanguageID); !ok {
		return out, false
	}
	return out, true
}

func (t *TemplateStore) owned(userID, id string) (models.Template, bool) {
	row, ok := t.s.templates[id]
	if !ok || row.UserID != userID || !models.IsVisible(row.RecordStatus) {
		return models.Template{}, false
	}
	return row, true
}

func (t *TemplateStore) Create(_ context.Context, tpl *models.Template, parts models.TemplateParts) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	tpl.HeaderID = nil
	if parts.Header != nil {
		t.s.headers[parts.Header.ID] = *parts.Header
		id := parts.Header.ID
		tpl.HeaderID = &id
	}
	tpl.FooterID = nil
	if parts.Footer != nil {
		t.s.footers[parts.Footer.ID] = *parts.Footer
		id := parts.Footer.ID
		tpl.FooterID = &id
	}
	tpl.CreationDate = t.s.now()
	t.s.templates[tpl.ID] = *tpl
	t.putButtons(tpl.ID, parts.Buttons)
	return nil
}

func (t *TemplateStore) putButtons(templateID string, buttons []models.TemplateButton) {
	for i := range buttons {
		id := templateID
		buttons[i].TemplateID = &id
		t.s.buttons[buttons[i].ID] = buttons[i]
	}
}

func (t *TemplateStore) Get(_ context.Context, userID, id string) (*models.TemplateDetail, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	row, ok := t.owned(userID, id)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if _, ok := t.withLookups(row); !ok {
		return nil, apperr.ErrNotFound
	}

	d := &models.TemplateDetail{Template: row, Buttons: []models.TemplateButton{}}
	if row.HeaderID != nil {
		if h, ok := t.s.headers[*row.HeaderID]; ok {
			d.Header = &h
		}
	}
	if row.FooterID != nil {
		if f, ok := t.s.footers[*row.FooterID]; ok {
			d.Footer = &f
		}
	}
	for _, b := range t.s.buttons {
		if b.TemplateID != nil && *b.TemplateID == id {
			d.Buttons = append(d.Buttons, b)
		}
	}
	sort.Slice(d.Buttons, func(i, j int) bool { return d.Buttons[i].ID < d.Buttons[j].ID })
	return d, nil
}

func (t *TemplateStore) List(_ context.Context, userID, recordStatus string) ([]models.TemplateWithLookups, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	out := []models.TemplateWithLookups{}
	for _, row := range t.s.templates {
		if row.UserID != userID || row.RecordStatus != recordStatus {
			continue
		}
		if joined, ok := t.withLookups(row); ok {
			out = append(out, joined)
		}
	}
	newestFirst(out, func(r models.TemplateWithLookups) time.Time { return r.CreationDate })
	return out, nil
}

func (t *TemplateStore) Update(_ context.Context, userID, id string, u models.TemplateUpdate, parts models.TemplateParts) (*models.Template, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	row, ok := t.owned(userID, id)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	var headerID *string
	if parts.Header != nil {
		if row.HeaderID != nil {
			if _, exists := t.s.headers[*row.HeaderID]; exists {
				parts.Header.ID = *row.HeaderID
			}
		}
		t.s.headers[parts.Header.ID] = *parts.Header
		hid := parts.Header.ID
		headerID = &hid
	}
	var footerID *string
	if parts.Footer != nil {
		if row.FooterID != nil {
			if _, exists := t.s.footers[*row.FooterID]; exists {
				parts.Footer.ID = *row.FooterID
			}
		}
		t.s.footers[parts.Footer.ID] = *parts.Footer
		fid := parts.Footer.ID
		footerID = &fid
	}

	row.Name = u.Name
	row.AllowCategoryChange = u.AllowCategoryChange
	row.CategoryID = u.CategoryID
	row.TypeID = u.TypeID
	row.LanguageID = u.LanguageID
	row.BodyMessage = u.BodyMessage
	row.HeaderID = headerID
	row.FooterID = footerID
	t.s.templates[id] = row

	if parts.Buttons != nil {
		for bid, b := range t.s.buttons {
			if b.TemplateID != nil && *b.TemplateID == id {
				delete(t.s.buttons, bid)
			}
		}
		t.putButtons(id, parts.Buttons)
	}
	return &row, nil
}

func (t *TemplateStore) Apply(ctx context.Context, userID, id string, ch models.StateChange) (string, error) {
	affected, err := t.ApplyBulk(ctx, userID, []string{id}, ch)
	if err != nil {
		return "", err
	}
	return single(affected)
}

func (t *TemplateStore) ApplyBulk(_ context.Context, userID string, ids []string, ch models.StateChange) ([]string, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	return applyBulk(ids, ch,
		func(id string) (templateRow, bool) {
			row, ok := t.s.templates[id]
			if !ok || row.UserID != userID {
				return templateRow{}, false
			}
			return templateRow{&row}, true
		},
		func(r templateRow) { t.s.templates[r.ID] = *r.Template },
	), nil
}

// HeaderCount and FooterCount report stored rows, orphans included.
func (t *TemplateStore) HeaderCount() int {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	return len(t.s.headers)
}

func (t *TemplateStore) FooterCount() int {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	return len(t.s.footers)
}
