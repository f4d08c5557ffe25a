package attendance

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

const columns = `id, employee_id, date, COALESCE(check_in_time, ''), COALESCE(check_out_time, ''),
    status, work_hours, updated_at`

func scanRecord(row pgx.Row) (Record, error) {
	var out Record
	var date time.Time
	if err := row.Scan(&out.ID, &out.EmployeeID, &date, &out.CheckInTime, &out.CheckOutTime,
		&out.Status, &out.WorkHours, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	out.Date = wiredate.FromTime(date)
	return out, nil
}

func (s *Store) Get(ctx context.Context, employeeID string, date wiredate.Date) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, "SELECT "+columns+" FROM attendance WHERE employee_id = $1 AND date = $2", employeeID, date.Time()))
}

// Save inserts or replaces the row for (employee, date).
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, date, check_in_time, check_out_time, status, work_hours)
    VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
    ON CONFLICT (employee_id, date) DO UPDATE
    SET check_in_time = EXCLUDED.check_in_time,
        check_out_time = EXCLUDED.check_out_time,
        status = EXCLUDED.status,
        work_hours = EXCLUDED.work_hours,
        updated_at = now()
    RETURNING `+columns,
		rec.EmployeeID, rec.Date.Time(), rec.CheckInTime, rec.CheckOutTime, rec.Status, rec.WorkHours))
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+columns+" FROM attendance WHERE employee_id = $1 ORDER BY date DESC", employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
