package auth

import (
	"context"
	"errors"
	"strings"

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

const userColumns = `id, email, username, full_name, password_hash, roles, COALESCE(employee_id, ''),
    department, position, status, last_login, created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.PasswordHash, &u.Roles, &u.EmployeeID,
		&u.Department, &u.Position, &u.Status, &u.LastLogin, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE lower(email) = lower($1)", strings.TrimSpace(email)))
}

func (s *Store) FindByEmployeeID(ctx context.Context, employeeID string) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE employee_id = $1", employeeID))
}

func (s *Store) Create(ctx context.Context, u User) (User, error) {
	created, err := scanUser(s.DB.QueryRow(ctx, `
    INSERT INTO users (email, username, full_name, password_hash, roles, employee_id, department, position, status)
    VALUES ($1,$2,$3,$4,$5,NULLIF($6, ''),$7,$8,$9)
    RETURNING `+userColumns,
		u.Email, u.Username, u.FullName, u.PasswordHash, u.Roles, u.EmployeeID, u.Department, u.Position, u.Status))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return User{}, ErrDuplicate
	}
	return created, err
}

func (s *Store) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", id)
	return err
}
