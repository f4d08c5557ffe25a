package memo

import (
	"context"
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

const columns = `id, title, meeting_type, meeting_date, priority, content, sent_by, sent_by_name,
    recipient_employee_ids, recipient_departments, sent_to_all, sent_at, status`

func scanMemo(row pgx.Row) (Memo, error) {
	var out Memo
	var meeting *time.Time
	if err := row.Scan(&out.ID, &out.Title, &out.MeetingType, &meeting, &out.Priority, &out.Content,
		&out.SentBy, &out.SentByName, &out.RecipientEmployeeIDs, &out.RecipientDepartments,
		&out.SentToAll, &out.SentAt, &out.Status); err != nil {
		return Memo{}, err
	}
	if meeting != nil {
		out.MeetingDate = wiredate.FromTime(*meeting)
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, m Memo) (Memo, error) {
	var meeting *time.Time
	if !m.MeetingDate.IsZero() {
		t := m.MeetingDate.Time()
		meeting = &t
	}
	return scanMemo(s.DB.QueryRow(ctx, `
    INSERT INTO memos (title, meeting_type, meeting_date, priority, content, sent_by, sent_by_name,
      recipient_employee_ids, recipient_departments, sent_to_all, sent_at, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING `+columns,
		m.Title, m.MeetingType, meeting, m.Priority, m.Content, m.SentBy, m.SentByName,
		m.RecipientEmployeeIDs, m.RecipientDepartments, m.SentToAll, m.SentAt, m.Status))
}

func (s *Store) ListFor(ctx context.Context, a Audience) ([]Memo, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+columns+`
    FROM memos
    WHERE status = 'sent'
      AND (sent_to_all
        OR $1 = ANY(recipient_employee_ids)
        OR ($2 <> '' AND lower($2) = ANY(SELECT lower(d) FROM unnest(recipient_departments) AS d)))
    ORDER BY sent_at DESC, id DESC
  `, a.EmployeeID, a.Department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Memo
	for rows.Next() {
		m, err := scanMemo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
