package asset

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"idms/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const columns = "id, asset_name, category, serial_number, status, asset_condition, COALESCE(assigned_to, '')"

func scanAsset(row pgx.Row) (Asset, error) {
	var out Asset
	if err := row.Scan(&out.ID, &out.AssetName, &out.Category, &out.SerialNumber, &out.Status, &out.Condition, &out.AssignedTo); err != nil {
		return Asset{}, mapErr(err)
	}
	return out, nil
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (s *Store) query(ctx context.Context, sql string, args ...any) ([]Asset, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) List(ctx context.Context) ([]Asset, error) {
	return s.query(ctx, "SELECT "+columns+" FROM assets ORDER BY id")
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Asset, error) {
	return s.query(ctx, "SELECT "+columns+" FROM assets WHERE assigned_to = $1 ORDER BY id", employeeID)
}

func (s *Store) Create(ctx context.Context, a Asset) (Asset, error) {
	return scanAsset(s.DB.QueryRow(ctx, `
    INSERT INTO assets (asset_name, category, serial_number, status, asset_condition, assigned_to)
    VALUES ($1,$2,$3,$4,$5,NULLIF($6, ''))
    RETURNING `+columns, a.AssetName, a.Category, a.SerialNumber, a.Status, a.Condition, a.AssignedTo))
}

func (s *Store) Update(ctx context.Context, id int64, a Asset) (Asset, error) {
	return scanAsset(s.DB.QueryRow(ctx, `
    UPDATE assets
    SET asset_name = $2, category = $3, serial_number = $4, status = $5, asset_condition = $6, assigned_to = NULLIF($7, '')
    WHERE id = $1
    RETURNING `+columns, id, a.AssetName, a.Category, a.SerialNumber, a.Status, a.Condition, a.AssignedTo))
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM assets WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
