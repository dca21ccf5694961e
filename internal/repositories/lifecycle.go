package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/models"
)

// Owner clauses compare against $5 in applyStateChange.
const (
	ownedByUser     = "user_id = $5"
	ownedByCampaign = "campaign_id IN (SELECT c.id FROM campaigns c WHERE c.user_id = $5)"
)

// applyStateChange runs one UPDATE over the owned rows among ids that are
// currently in one of ch.From and returns the ids it touched.
func applyStateChange(ctx context.Context, pool *pgxpool.Pool, table, ownerClause, userID string, ids []string, ch models.StateChange) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	query := fmt.Sprintf(`
		UPDATE %s SET
			record_status = COALESCE(NULLIF($1::text, ''), record_status),
			status = COALESCE(NULLIF($2::text, ''), status)
		WHERE id = ANY($3) AND record_status = ANY($4) AND %s
		RETURNING id
	`, table, ownerClause)

	rows, err := pool.Query(ctx, query, ch.RecordStatus, ch.Status, ids, ch.From, userID)
	if err != nil {
		return nil, err
	}
	affected, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if affected == nil {
		affected = []string{}
	}
	return affected, nil
}

func applySingle(ctx context.Context, pool *pgxpool.Pool, table, ownerClause, userID, id string, ch models.StateChange) (string, error) {
	affected, err := applyStateChange(ctx, pool, table, ownerClause, userID, []string{id}, ch)
	if err != nil {
		return "", err
	}
	if len(affected) == 0 {
		return "", apperr.ErrNotFound
	}
	return affected[0], nil
}

// notFound maps pgx.ErrNoRows onto the shared not-found error.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return err
}
