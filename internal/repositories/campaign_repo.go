package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reachdesk/backend/internal/models"
)

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

const campaignColumns = `id, user_id, name, status, record_status, creation_date, excel`

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Status, &c.RecordStatus, &c.CreationDate, &c.Excel)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (id, user_id, name, status, record_status, excel)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING creation_date
	`, c.ID, c.UserID, c.Name, c.Status, c.RecordStatus, c.Excel,
	).Scan(&c.CreationDate)
}

func (r *CampaignRepo) Get(ctx context.Context, userID, id string) (*models.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE user_id = $1 AND id = $2 AND record_status = ANY($3)
	`, userID, id, models.VisibleRecordStatuses))
}

func (r *CampaignRepo) List(ctx context.Context, userID, recordStatus string) ([]models.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE user_id = $1 AND record_status = $2
		ORDER BY creation_date DESC
	`, userID, recordStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepo) Update(ctx context.Context, userID, id string, u models.CampaignUpdate) (*models.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx, `
		UPDATE campaigns SET
			name = COALESCE($1, name),
			excel = COALESCE($2, excel)
		WHERE user_id = $3 AND id = $4 AND record_status = ANY($5)
		RETURNING `+campaignColumns,
		u.Name, u.Excel, userID, id, models.VisibleRecordStatuses))
}

func (r *CampaignRepo) Apply(ctx context.Context, userID, id string, ch models.StateChange) (string, error) {
	return applySingle(ctx, r.pool, "campaigns", ownedByUser, userID, id, ch)
}

func (r *CampaignRepo) ApplyBulk(ctx context.Context, userID string, ids []string, ch models.StateChange) ([]string, error) {
	return applyStateChange(ctx, r.pool, "campaigns", ownedByUser, userID, ids, ch)
}
