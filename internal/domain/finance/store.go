package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"idms/internal/platform/db"
	"idms/internal/wiredate"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

// Table names come from the Resources catalogue, never from requests.
func table(res Resource) (string, error) {
	if _, ok := Lookup(res.Name); !ok || res.Table == "" {
		return "", ErrUnknownResource
	}
	return res.Table, nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var e Expense
	var date time.Time
	var amount string
	var recipient *string
	if err := row.Scan(&e.ID, &date, &amount, &e.Description, &recipient, &e.CreatedAt); err != nil {
		return Expense{}, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("scan amount: %w", err)
	}
	e.Date = wiredate.FromTime(date)
	e.Amount = parsed
	if recipient != nil {
		e.Recipient = *recipient
	}
	return e, nil
}

func (s *Store) List(ctx context.Context, res Resource) ([]Expense, error) {
	tbl, err := table(res)
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.Query(ctx, fmt.Sprintf(`
    SELECT id, date, amount::text, description, recipient, created_at
    FROM %s
    ORDER BY id
  `, tbl))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, res Resource, id int64) (Expense, error) {
	tbl, err := table(res)
	if err != nil {
		return Expense{}, err
	}
	e, err := scanExpense(s.DB.QueryRow(ctx, fmt.Sprintf(`
    SELECT id, date, amount::text, description, recipient, created_at
    FROM %s
    WHERE id = $1
  `, tbl), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrNotFound
	}
	return e, err
}

func nullableRecipient(res Resource, in ExpenseInput) *string {
	if !res.HasRecipient {
		return nil
	}
	recipient := in.Recipient
	return &recipient
}

func (s *Store) Create(ctx context.Context, res Resource, in ExpenseInput) (Expense, error) {
	tbl, err := table(res)
	if err != nil {
		return Expense{}, err
	}
	return scanExpense(s.DB.QueryRow(ctx, fmt.Sprintf(`
    INSERT INTO %s (date, amount, description, recipient)
    VALUES ($1, $2::numeric, $3, $4)
    RETURNING id, date, amount::text, description, recipient, created_at
  `, tbl), in.Date.Time(), in.Amount.String(), in.Description, nullableRecipient(res, in)))
}

func (s *Store) Update(ctx context.Context, res Resource, id int64, in ExpenseInput) (Expense, error) {
	tbl, err := table(res)
	if err != nil {
		return Expense{}, err
	}
	e, err := scanExpense(s.DB.QueryRow(ctx, fmt.Sprintf(`
    UPDATE %s
    SET date = $2, amount = $3::numeric, description = $4, recipient = $5
    WHERE id = $1
    RETURNING id, date, amount::text, description, recipient, created_at
  `, tbl), id, in.Date.Time(), in.Amount.String(), in.Description, nullableRecipient(res, in)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrNotFound
	}
	return e, err
}

func (s *Store) Delete(ctx context.Context, res Resource, id int64) error {
	tbl, err := table(res)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", tbl), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
