package document

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"idms/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const columns = "id, employee_id, document_type, original_file_name, file_type, size, uploaded_at"

func scanDocument(row pgx.Row) (Document, error) {
	var out Document
	if err := row.Scan(&out.ID, &out.EmployeeID, &out.DocumentType, &out.OriginalFileName, &out.FileType, &out.Size, &out.UploadedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return out, nil
}

func (s *Store) query(ctx context.Context, sql string, args ...any) ([]Document, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) List(ctx context.Context) ([]Document, error) {
	return s.query(ctx, "SELECT "+columns+" FROM employee_documents ORDER BY id")
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Document, error) {
	return s.query(ctx, "SELECT "+columns+" FROM employee_documents WHERE employee_id = $1 ORDER BY id", employeeID)
}

func (s *Store) Put(ctx context.Context, f File) (Document, error) {
	return scanDocument(s.DB.QueryRow(ctx, `
    INSERT INTO employee_documents (employee_id, document_type, original_file_name, file_type, size, content)
    VALUES ($1,$2,$3,$4,$5,$6)
    ON CONFLICT (employee_id, document_type) DO UPDATE
    SET original_file_name = EXCLUDED.original_file_name, file_type = EXCLUDED.file_type,
        size = EXCLUDED.size, content = EXCLUDED.content, uploaded_at = now()
    RETURNING `+columns, f.EmployeeID, f.DocumentType, f.OriginalFileName, f.FileType, f.Size, f.Content))
}

func (s *Store) Get(ctx context.Context, employeeID, docType string) (File, error) {
	var out File
	err := s.DB.QueryRow(ctx, `
    SELECT `+columns+`, content FROM employee_documents
    WHERE employee_id = $1 AND document_type = $2`, employeeID, docType).
		Scan(&out.ID, &out.EmployeeID, &out.DocumentType, &out.OriginalFileName, &out.FileType, &out.Size, &out.UploadedAt, &out.Content)
	if errors.Is(err, pgx.ErrNoRows) {
		return File{}, ErrNotFound
	}
	if err != nil {
		return File{}, err
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employee_documents WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
