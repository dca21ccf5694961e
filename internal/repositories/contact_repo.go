package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/models"
)

type ContactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

const contactColumns = `id, user_id, phone, first_name, last_name, email,
	has_whatsapp, blocked_campaigns, blocked_from_bot, blocked_from_cc, created_at`

// contactFlagColumns whitelists the filterable flag columns.
var contactFlagColumns = map[string]string{
	models.ContactFlagHasWhatsApp:      "has_whatsapp",
	models.ContactFlagBlockedCampaigns: "blocked_campaigns",
	models.ContactFlagBlockedFromBot:   "blocked_from_bot",
	models.ContactFlagBlockedFromCC:    "blocked_from_cc",
}

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.UserID, &c.Phone, &c.FirstName, &c.LastName, &c.Email,
		&c.HasWhatsApp, &c.BlockedCampaigns, &c.BlockedFromBot, &c.BlockedFromCC, &c.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *ContactRepo) Create(ctx context.Context, c *models.Contact) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO contacts (id, user_id, phone, first_name, last_name, email,
			has_whatsapp, blocked_campaigns, blocked_from_bot, blocked_from_cc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`, c.ID, c.UserID, c.Phone, c.FirstName, c.LastName, c.Email,
		c.HasWhatsApp, c.BlockedCampaigns, c.BlockedFromBot, c.BlockedFromCC,
	).Scan(&c.CreatedAt)
}

// CreateMany inserts all contacts in one transaction.
func (r *ContactRepo) CreateMany(ctx context.Context, contacts []models.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, c := range contacts {
		batch.Queue(`
			INSERT INTO contacts (id, user_id, phone, first_name, last_name, email,
				has_whatsapp, blocked_campaigns, blocked_from_bot, blocked_from_cc)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at
		`, c.ID, c.UserID, c.Phone, c.FirstName, c.LastName, c.Email,
			c.HasWhatsApp, c.BlockedCampaigns, c.BlockedFromBot, c.BlockedFromCC)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range contacts {
		if err := br.QueryRow().Scan(&contacts[i].CreatedAt); err != nil {
			_ = br.Close()
			return err
		}
	}
	if err := br.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ContactRepo) Get(ctx context.Context, userID, id string) (*models.Contact, error) {
	return scanContact(r.pool.QueryRow(ctx, `
		SELECT `+contactColumns+` FROM contacts WHERE user_id = $1 AND id = $2
	`, userID, id))
}

// List returns the user's contacts, optionally only those with flag set.
func (r *ContactRepo) List(ctx context.Context, userID, flag string) ([]models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1`
	if flag != "" {
		column, ok := contactFlagColumns[flag]
		if !ok {
			return nil, apperr.Validation("unknown filter key", "filterKey")
		}
		query += " AND " + column + " = true"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepo) Update(ctx context.Context, userID, id string, u models.ContactUpdate) (*models.Contact, error) {
	return scanContact(r.pool.QueryRow(ctx, `
		UPDATE contacts SET
			phone = COALESCE($1, phone),
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			email = COALESCE($4, email),
			has_whatsapp = COALESCE($5, has_whatsapp),
			blocked_campaigns = COALESCE($6, blocked_campaigns),
			blocked_from_bot = COALESCE($7, blocked_from_bot),
			blocked_from_cc = COALESCE($8, blocked_from_cc)
		WHERE user_id = $9 AND id = $10
		RETURNING `+contactColumns,
		u.Phone, u.FirstName, u.LastName, u.Email,
		u.HasWhatsApp, u.BlockedCampaigns, u.BlockedFromBot, u.BlockedFromCC,
		userID, id))
}

func (r *ContactRepo) Delete(ctx context.Context, userID, id string) (string, error) {
	var deleted string
	err := r.pool.QueryRow(ctx, `
		DELETE FROM contacts WHERE user_id = $1 AND id = $2 RETURNING id
	`, userID, id).Scan(&deleted)
	if err != nil {
		return "", notFound(err)
	}
	return deleted, nil
}

func (r *ContactRepo) DeleteMany(ctx context.Context, userID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		DELETE FROM contacts WHERE user_id = $1 AND id = ANY($2) RETURNING id
	`, userID, ids)
	if err != nil {
		return nil, err
	}
	deleted, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		deleted = []string{}
	}
	return deleted, nil
}
