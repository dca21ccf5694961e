package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reachdesk/backend/internal/models"
)

type TemplateRepo struct {
	pool *pgxpool.Pool
}

func NewTemplateRepo(pool *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{pool: pool}
}

const templateColumns = `t.id, t.user_id, t.name, t.allow_category_change, t.category_id,
	t.type_id, t.language_id, t.header_id, t.body_message, t.footer_id,
	t.status, t.record_status, t.creation_date`

// Templates whose lookups no longer resolve drop out of every read.
const templateLookupJoins = `
	INNER JOIN template_categories cat ON cat.id = t.category_id
	INNER JOIN template_types ty ON ty.id = t.type_id
	INNER JOIN template_languages lang ON lang.id = t.language_id`

func templateDest(t *models.Template) []any {
	return []any{
		&t.ID, &t.UserID, &t.Name, &t.AllowCategoryChange, &t.CategoryID,
		&t.TypeID, &t.LanguageID, &t.HeaderID, &t.BodyMessage, &t.FooterID,
		&t.Status, &t.RecordStatus, &t.CreationDate,
	}
}

func (r *TemplateRepo) List(ctx context.Context, userID, recordStatus string) ([]models.TemplateWithLookups, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+templateColumns+`, cat.name, ty.name, lang.name
		FROM templates t`+templateLookupJoins+`
		WHERE t.user_id = $1 AND t.record_status = $2
		ORDER BY t.creation_date DESC
	`, userID, recordStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []models.TemplateWithLookups{}
	for rows.Next() {
		var t models.TemplateWithLookups
		dest := append(templateDest(&t.Template), &t.Category, &t.Type, &t.Language)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *TemplateRepo) Get(ctx context.Context, userID, id string) (*models.TemplateDetail, error) {
	var d models.TemplateDetail
	err := r.pool.QueryRow(ctx, `
		SELECT `+templateColumns+`
		FROM templates t`+templateLookupJoins+`
		WHERE t.user_id = $1 AND t.id = $2 AND t.record_status = ANY($3)
	`, userID, id, models.VisibleRecordStatuses).Scan(templateDest(&d.Template)...)
	if err != nil {
		return nil, notFound(err)
	}

	if d.HeaderID != nil {
		var h models.TemplateHeader
		err := r.pool.QueryRow(ctx, `SELECT id, text, type_id FROM template_headers WHERE id = $1`, *d.HeaderID).
			Scan(&h.ID, &h.Text, &h.TypeID)
		if err == nil {
			d.Header = &h
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	if d.FooterID != nil {
		var f models.TemplateFooter
		err := r.pool.QueryRow(ctx, `SELECT id, text FROM template_footers WHERE id = $1`, *d.FooterID).
			Scan(&f.ID, &f.Text)
		if err == nil {
			d.Footer = &f
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, text, url, phone_number, type_id, template_id
		FROM template_buttons WHERE template_id = $1 ORDER BY id
	`, d.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	d.Buttons = []models.TemplateButton{}
	for rows.Next() {
		var b models.TemplateButton
		if err := rows.Scan(&b.ID, &b.Text, &b.URL, &b.PhoneNumber, &b.TypeID, &b.TemplateID); err != nil {
			return nil, err
		}
		d.Buttons = append(d.Buttons, b)
	}
	return &d, rows.Err()
}

// Create writes header, footer, template and buttons in one transaction.
// The template's header_id/footer_id are taken from parts.
func (r *TemplateRepo) Create(ctx context.Context, t *models.Template, parts models.TemplateParts) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t.HeaderID = nil
	if parts.Header != nil {
		if err := insertHeader(ctx, tx, parts.Header); err != nil {
			return err
		}
		t.HeaderID = &parts.Header.ID
	}
	t.FooterID = nil
	if parts.Footer != nil {
		if err := insertFooter(ctx, tx, parts.Footer); err != nil {
			return err
		}
		t.FooterID = &parts.Footer.ID
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO templates (id, user_id, name, allow_category_change, category_id,
			type_id, language_id, header_id, body_message, footer_id, status, record_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING creation_date
	`, t.ID, t.UserID, t.Name, t.AllowCategoryChange, t.CategoryID,
		t.TypeID, t.LanguageID, t.HeaderID, t.BodyMessage, t.FooterID, t.Status, t.RecordStatus,
	).Scan(&t.CreationDate)
	if err != nil {
		return err
	}

	if err := replaceButtons(ctx, tx, t.ID, parts.Buttons); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update edits an owned, visible template and its parts in one transaction.
// An existing header or footer row is updated in place; when the flag is off
// the reference is cleared and the old row is left as is.
func (r *TemplateRepo) Update(ctx context.Context, userID, id string, u models.TemplateUpdate, parts models.TemplateParts) (*models.Template, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var currentHeader, currentFooter *string
	err = tx.QueryRow(ctx, `
		SELECT header_id, footer_id FROM templates
		WHERE user_id = $1 AND id = $2 AND record_status = ANY($3)
		FOR UPDATE
	`, userID, id, models.VisibleRecordStatuses).Scan(&currentHeader, &currentFooter)
	if err != nil {
		return nil, notFound(err)
	}

	var headerID *string
	if parts.Header != nil {
		if err := upsertHeader(ctx, tx, currentHeader, parts.Header); err != nil {
			return nil, err
		}
		headerID = &parts.Header.ID
	}
	var footerID *string
	if parts.Footer != nil {
		if err := upsertFooter(ctx, tx, currentFooter, parts.Footer); err != nil {
			return nil, err
		}
		footerID = &parts.Footer.ID
	}

	var t models.Template
	err = tx.QueryRow(ctx, `
		UPDATE templates t SET
			name = $1, allow_category_change = $2, category_id = $3, type_id = $4,
			language_id = $5, body_message = $6, header_id = $7, footer_id = $8
		WHERE t.id = $9
		RETURNING `+templateColumns,
		u.Name, u.AllowCategoryChange, u.CategoryID, u.TypeID,
		u.LanguageID, u.BodyMessage, headerID, footerID, id,
	).Scan(templateDest(&t)...)
	if err != nil {
		return nil, notFound(err)
	}

	if parts.Buttons != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM template_buttons WHERE template_id = $1`, id); err != nil {
			return nil, err
		}
		if err := replaceButtons(ctx, tx, id, parts.Buttons); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepo) Apply(ctx context.Context, userID, id string, ch models.StateChange) (string, error) {
	return applySingle(ctx, r.pool, "templates", ownedByUser, userID, id, ch)
}

func (r *TemplateRepo) ApplyBulk(ctx context.Context, userID string, ids []string, ch models.StateChange) ([]string, error) {
	return applyStateChange(ctx, r.pool, "templates", ownedByUser, userID, ids, ch)
}

func insertHeader(ctx context.Context, tx pgx.Tx, h *models.TemplateHeader) error {
	_, err := tx.Exec(ctx, `INSERT INTO template_headers (id, text, type_id) VALUES ($1, $2, $3)`,
		h.ID, h.Text, h.TypeID)
	return err
}

func insertFooter(ctx context.Context, tx pgx.Tx, f *models.TemplateFooter) error {
	_, err := tx.Exec(ctx, `INSERT INTO template_footers (id, text) VALUES ($1, $2)`, f.ID, f.Text)
	return err
}

// upsertHeader updates the template's current header row, or inserts h when
// there is none. h.ID ends up holding the row that the template references.
func upsertHeader(ctx context.Context, tx pgx.Tx, current *string, h *models.TemplateHeader) error {
	if current != nil {
		tag, err := tx.Exec(ctx, `UPDATE template_headers SET text = $1, type_id = $2 WHERE id = $3`,
			h.Text, h.TypeID, *current)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			h.ID = *current
			return nil
		}
	}
	return insertHeader(ctx, tx, h)
}

func upsertFooter(ctx context.Context, tx pgx.Tx, current *string, f *models.TemplateFooter) error {
	if current != nil {
		tag, err := tx.Exec(ctx, `UPDATE template_footers SET text = $1 WHERE id = $2`, f.Text, *current)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			f.ID = *current
			return nil
		}
	}
	return insertFooter(ctx, tx, f)
}

func replaceButtons(ctx context.Context, tx pgx.Tx, templateID string, buttons []models.TemplateButton) error {
	for i := range buttons {
		b := &buttons[i]
		b.TemplateID = &templateID
		_, err := tx.Exec(ctx, `
			INSERT INTO template_buttons (id, text, url, phone_number, type_id, template_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, b.ID, b.Text, b.URL, b.PhoneNumber, b.TypeID, templateID)
		if err != nil {
			return err
		}
	}
	return nil
}
