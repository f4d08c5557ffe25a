package document

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]Document, error) {
	docs, err := s.Store.List(ctx)
	return withLinks(docs), err
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Document, error) {
	docs, err := s.Store.ListByEmployee(ctx, employeeID)
	return withLinks(docs), err
}

// Upload stores the file, replacing any earlier document of the same
// type for the employee.
func (s *Service) Upload(ctx context.Context, in Upload) (Document, error) {
	docType := NormalizeType(in.DocumentType)
	if !slices.Contains(Types, docType) {
		return Document{}, fmt.Errorf("%w: unknown document type %q", ErrInvalidInput, in.DocumentType)
	}
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return Document{}, fmt.Errorf("%w: employee id is required", ErrInvalidInput)
	}
	if len(in.Content) == 0 {
		return Document{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}
	if len(in.Content) > MaxFileBytes {
		return Document{}, ErrTooLarge
	}
	name := filepath.Base(strings.TrimSpace(in.FileName))
	if name == "." || name == string(filepath.Separator) {
		name = strings.ToLower(docType)
	}
	fileType := strings.TrimSpace(in.FileType)
	if fileType == "" || fileType == "application/octet-stream" {
		fileType = http.DetectContentType(in.Content)
	}
	doc, err := s.Store.Put(ctx, File{
		Document: Document{
			EmployeeID:       employeeID,
			DocumentType:     docType,
			OriginalFileName: name,
			FileType:         fileType,
			Size:             int64(len(in.Content)),
		},
		Content: in.Content,
	})
	if err != nil {
		return Document{}, err
	}
	return withLink(doc), nil
}

func (s *Service) Download(ctx context.Context, employeeID, docType string) (File, error) {
	return s.Store.Get(ctx, employeeID, NormalizeType(docType))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}

func withLink(d Document) Document {
	d.FileDownloadURI = DownloadPath(d.EmployeeID, d.DocumentType)
	return d
}

func withLinks(docs []Document) []Document {
	for i := range docs {
		docs[i] = withLink(docs[i])
	}
	return docs
}
