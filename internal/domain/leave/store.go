package leave

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

const requestColumns = `id, employee_id, employee_name, leave_type, start_date, end_date,
    number_of_days, status, reason, COALESCE(hr_comments, ''), request_date, created_at`

func scanRequest(row pgx.Row) (Request, error) {
	var out Request
	var start, end, requested time.Time
	if err := row.Scan(&out.ID, &out.EmployeeID, &out.EmployeeName, &out.LeaveType, &start, &end,
		&out.NumberOfDays, &out.Status, &out.Reason, &out.HRComments, &requested, &out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}
	out.StartDate = wiredate.FromTime(start)
	out.EndDate = wiredate.FromTime(end)
	out.RequestDate = wiredate.FromTime(requested)
	return out, nil
}

func collectRequests(rows pgx.Rows) ([]Request, error) {
	defer rows.Close()
	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) CreateRequest(ctx context.Context, req Request) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, employee_name, leave_type, start_date, end_date, number_of_days, status, reason, request_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING `+requestColumns,
		req.EmployeeID, req.EmployeeName, req.LeaveType, req.StartDate.Time(), req.EndDate.Time(),
		req.NumberOfDays, req.Status, req.Reason, req.RequestDate.Time()))
}

func (s *Store) GetRequest(ctx context.Context, id int64) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, "SELECT "+requestColumns+" FROM leave_requests WHERE id = $1", id))
}

func (s *Store) ListRequests(ctx context.Context) ([]Request, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+requestColumns+" FROM leave_requests ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (s *Store) ListRequestsByEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+requestColumns+" FROM leave_requests WHERE employee_id = $1 ORDER BY id DESC", employeeID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

// UpdateRequestStatus only moves pending requests.
func (s *Store) UpdateRequestStatus(ctx context.Context, id int64, status, hrComments string) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, `
    UPDATE leave_requests
    SET status = $2, hr_comments = NULLIF($3, ''), decided_at = now()
    WHERE id = $1 AND status = 'PENDING'
    RETURNING `+requestColumns, id, status, hrComments))
	if errors.Is(err, ErrNotFound) {
		if _, getErr := s.GetRequest(ctx, id); getErr == nil {
			return Request{}, ErrInvalidState
		}
	}
	return req, err
}

const holidayColumns = "id, holiday_name, start_date, end_date, day, type, coverage"

func scanHoliday(row pgx.Row) (Holiday, error) {
	var out Holiday
	var start, end time.Time
	if err := row.Scan(&out.ID, &out.HolidayName, &start, &end, &out.Day, &out.Type, &out.Coverage); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Holiday{}, ErrNotFound
		}
		return Holiday{}, err
	}
	out.StartDate = wiredate.FromTime(start)
	out.EndDate = wiredate.FromTime(end)
	return out, nil
}

func (s *Store) ListHolidays(ctx context.Context) ([]Holiday, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+holidayColumns+" FROM holidays ORDER BY start_date, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) CreateHoliday(ctx context.Context, h Holiday) (Holiday, error) {
	return scanHoliday(s.DB.QueryRow(ctx, `
    INSERT INTO holidays (holiday_name, start_date, end_date, day, type, coverage)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING `+holidayColumns,
		h.HolidayName, h.StartDate.Time(), h.EndDate.Time(), h.Day, h.Type, h.Coverage))
}

func (s *Store) UpdateHoliday(ctx context.Context, id int64, h Holiday) (Holiday, error) {
	return scanHoliday(s.DB.QueryRow(ctx, `
    UPDATE holidays
    SET holiday_name = $2, start_date = $3, end_date = $4, day = $5, type = $6, coverage = $7
    WHERE id = $1
    RETURNING `+holidayColumns,
		id, h.HolidayName, h.StartDate.Time(), h.EndDate.Time(), h.Day, h.Type, h.Coverage))
}

func (s *Store) DeleteHoliday(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM holidays WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
