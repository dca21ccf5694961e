package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reachdesk/backend/internal/models"
)

// ListRepo never filters on a list owner column: lists are always reached
// through a join on campaigns.user_id.
type ListRepo struct {
	pool *pgxpool.Pool
}

func NewListRepo(pool *pgxpool.Pool) *ListRepo {
	return &ListRepo{pool: pool}
}

const listColumns = `l.id, l.name, l.status, l.record_status, l.creation_date, l.campaign_id,
	l.sending_type, l.ignore_customers_received_message_within, l.daily_limit,
	l.daily_sending_limit, l.from_sr, l.to_sr, l.type, l.schedule_date`

func listDest(l *models.List) []any {
	return []any{
		&l.ID, &l.Name, &l.Status, &l.RecordStatus, &l.CreationDate, &l.CampaignID,
		&l.SendingType, &l.IgnoreCustomersReceivedMessageWithin, &l.DailyLimit,
		&l.DailySendingLimit, &l.FromSr, &l.ToSr, &l.Type, &l.ScheduleDate,
	}
}

func scanList(row pgx.Row) (*models.List, error) {
	var l models.List
	if err := row.Scan(listDest(&l)...); err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

// Create inserts the list only when its campaign belongs to userID and is
// not deleted; otherwise it reports not found.
func (r *ListRepo) Create(ctx context.Context, userID string, l *models.List) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO lists (id, name, status, record_status, campaign_id,
			sending_type, ignore_customers_received_message_within, daily_limit,
			daily_sending_limit, from_sr, to_sr, type, schedule_date)
		SELECT $1, $2, $3, $4, c.id, $6, $7, $8, $9, $10, $11, $12, $13
		FROM campaigns c
		WHERE c.id = $5 AND c.user_id = $14 AND c.record_status = ANY($15)
		RETURNING creation_date
	`, l.ID, l.Name, l.Status, l.RecordStatus, l.CampaignID,
		l.SendingType, l.IgnoreCustomersReceivedMessageWithin, l.DailyLimit,
		l.DailySendingLimit, l.FromSr, l.ToSr, l.Type, l.ScheduleDate,
		userID, models.VisibleRecordStatuses,
	).Scan(&l.CreationDate)
	return notFound(err)
}

func (r *ListRepo) Get(ctx context.Context, userID, id string) (*models.List, error) {
	return scanList(r.pool.QueryRow(ctx, `
		SELECT `+listColumns+`
		FROM lists l
		INNER JOIN campaigns c ON c.id = l.campaign_id
		WHERE c.user_id = $1 AND l.id = $2 AND l.record_status = ANY($3)
	`, userID, id, models.VisibleRecordStatuses))
}

func (r *ListRepo) List(ctx context.Context, userID string, f models.ListFilter) ([]models.ListWithCampaign, error) {
	query := `
		SELECT ` + listColumns + `, c.name
		FROM lists l
		INNER JOIN campaigns c ON c.id = l.campaign_id
		WHERE c.user_id = $1 AND l.record_status = $2
	`
	args := []any{userID, f.RecordStatus}
	if f.CampaignID != nil {
		args = append(args, *f.CampaignID)
		query += fmt.Sprintf(" AND l.campaign_id = $%d", len(args))
	}
	query += " ORDER BY l.creation_date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []models.ListWithCampaign{}
	for rows.Next() {
		var l models.ListWithCampaign
		dest := append(listDest(&l.List), &l.Campaign)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (r *ListRepo) Update(ctx context.Context, userID, id string, u models.ListUpdate) (*models.List, error) {
	return scanList(r.pool.QueryRow(ctx, `
		UPDATE lists l SET
			name = COALESCE($1, l.name),
			sending_type = COALESCE($2, l.sending_type),
			ignore_customers_received_message_within = COALESCE($3, l.ignore_customers_received_message_within),
			daily_limit = COALESCE($4, l.daily_limit),
			daily_sending_limit = COALESCE($5, l.daily_sending_limit),
			from_sr = COALESCE($6, l.from_sr),
			to_sr = COALESCE($7, l.to_sr),
			type = COALESCE($8, l.type),
			schedule_date = COALESCE($9, l.schedule_date)
		FROM campaigns c
		WHERE c.id = l.campaign_id AND c.user_id = $10 AND l.id = $11 AND l.record_status = ANY($12)
		RETURNING `+listColumns,
		u.Name, u.SendingType, u.IgnoreCustomersReceivedMessageWithin, u.DailyLimit,
		u.DailySendingLimit, u.FromSr, u.ToSr, u.Type, u.ScheduleDate,
		userID, id, models.VisibleRecordStatuses))
}

func (r *ListRepo) Apply(ctx context.Context, userID, id string, ch models.StateChange) (string, error) {
	return applySingle(ctx, r.pool, "lists", ownedByCampaign, userID, id, ch)
}

func (r *ListRepo) ApplyBulk(ctx context.Context, userID string, ids []string, ch models.StateChange) ([]string, error) {
	return applyStateChange(ctx, r.pool, "lists", ownedByCampaign, userID, ids, ch)
}
