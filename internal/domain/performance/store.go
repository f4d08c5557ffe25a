package performance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"idms/internal/platform/db"
	"idms/internal/wiredate"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const columns = `id, employee_id, employee_name, position, department, review_status, rating,
    last_review_date, next_review_date, goals, feedback, achievements, reviewer`

const newestFirstOrder = " ORDER BY last_review_date DESC, id DESC"

func scanReview(row pgx.Row) (Review, error) {
	var out Review
	var last time.Time
	var next *time.Time
	if err := row.Scan(&out.ID, &out.EmployeeID, &out.EmployeeName, &out.Position, &out.Department,
		&out.ReviewStatus, &out.Rating, &last, &next, &out.Goals, &out.Feedback, &out.Achievements, &out.Reviewer); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	out.LastReviewDate = wiredate.FromTime(last)
	if next != nil {
		out.NextReviewDate = wiredate.FromTime(*next)
	}
	return out, nil
}

func (s *Store) query(ctx context.Context, sql string, args ...any) ([]Review, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullableDate(d wiredate.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time()
}

func (s *Store) List(ctx context.Context) ([]Review, error) {
	return s.query(ctx, "SELECT "+columns+" FROM performance_reviews"+newestFirstOrder)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Review, error) {
	return s.query(ctx, "SELECT "+columns+" FROM performance_reviews WHERE employee_id = $1"+newestFirstOrder, employeeID)
}

func (s *Store) Create(ctx context.Context, r Review) (Review, error) {
	return scanReview(s.DB.QueryRow(ctx, `
    INSERT INTO performance_reviews (employee_id, employee_name, position, department, review_status, rating,
        last_review_date, next_review_date, goals, feedback, achievements, reviewer)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING `+columns,
		r.EmployeeID, r.EmployeeName, r.Position, r.Department, r.ReviewStatus, r.Rating,
		r.LastReviewDate.Time(), nullableDate(r.NextReviewDate), r.Goals, r.Feedback, r.Achievements, r.Reviewer))
}

func (s *Store) Update(ctx context.Context, id int64, r Review) (Review, error) {
	return scanReview(s.DB.QueryRow(ctx, `
    UPDATE performance_reviews
    SET employee_id = $2, employee_name = $3, position = $4, department = $5, review_status = $6, rating = $7,
        last_review_date = $8, next_review_date = $9, goals = $10, feedback = $11, achievements = $12, reviewer = $13
    WHERE id = $1
    RETURNING `+columns,
		id, r.EmployeeID, r.EmployeeName, r.Position, r.Department, r.ReviewStatus, r.Rating,
		r.LastReviewDate.Time(), nullableDate(r.NextReviewDate), r.Goals, r.Feedback, r.Achievements, r.Reviewer))
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM performance_reviews WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
