package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reachdesk/backend/internal/models"
)

type LookupRepo struct {
	pool *pgxpool.Pool
}

func NewLookupRepo(pool *pgxpool.Pool) *LookupRepo {
	return &LookupRepo{pool: pool}
}

var lookupTables = map[models.LookupKind]struct {
	table   string
	orderBy string
}{
	models.LookupCategory:   {"template_categories", "name"},
	models.LookupType:       {"template_types", "name"},
	models.LookupLanguage:   {"template_languages", "name"},
	models.LookupHeaderType: {"template_header_types", "name"},
	models.LookupButtonType: {"template_button_types", "id"},
}

func lookupTable(kind models.LookupKind) (string, string, error) {
	t, ok := lookupTables[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown lookup kind %q", kind)
	}
	return t.table, t.orderBy, nil
}

func (r *LookupRepo) List(ctx context.Context, kind models.LookupKind) ([]models.Lookup, error) {
	table, orderBy, err := lookupTable(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT id, name FROM %s ORDER BY %s`, table, orderBy))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lookups := []models.Lookup{}
	for rows.Next() {
		var l models.Lookup
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}

func (r *LookupRepo) Exists(ctx context.Context, kind models.LookupKind, id string) (bool, error) {
	table, _, err := lookupTable(kind)
	if err != nil {
		return false, err
	}
	var exists bool
	err = r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, table), id).Scan(&exists)
	return exists, err
}
