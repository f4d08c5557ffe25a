package page

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"idms/internal/portal/liststate"
	"idms/internal/portal/records"
	"idms/internal/portal/resource"
	"idms/internal/portal/session"
)

const documentsPageName = "documents"

// MsgDownloadFailed is the toast for any failed download.
const MsgDownloadFailed = "Failed to download document. Please try again."

// ErrNoDocument is returned when the list holds no document of a type.
var ErrNoDocument = errors.New("no document of that type")

// DocumentsPage lists the signed-in employee's documents and moves files
// in and out. The client is rooted at /api/hr.
type DocumentsPage struct {
	session *session.Service
	client  *resource.Client[records.Document]
	list    *liststate.Store[records.Document, int64]
	notify  Notifier
}

func NewDocumentsPage(sess *session.Service, client *resource.Client[records.Document], notify Notifier) *DocumentsPage {
	return &DocumentsPage{
		session: sess,
		client:  client,
		list:    liststate.New(records.DocumentKey, liststate.Append),
		notify:  notify,
	}
}

func (p *DocumentsPage) Load(ctx context.Context) error {
	employeeID := p.session.Current().EmployeeID
	if employeeID == "" {
		return failure(p.notify, documentsPageName, "load", ErrNoEmployee)
	}
	items, err := p.client.ListAt(ctx, "documents/employee/"+url.PathEscape(employeeID))
	if err != nil {
		return failure(p.notify, documentsPageName, "load", err)
	}
	p.list.ReplaceAll(items)
	return nil
}

func (p *DocumentsPage) Items() []records.Document { return p.list.Items() }

// Find returns the listed document of docType.
func (p *DocumentsPage) Find(docType string) (records.Document, bool) {
	for _, d := range p.list.Items() {
		if strings.EqualFold(d.DocumentType, docType) {
			return d, true
		}
	}
	return records.Document{}, false
}

// Download writes the file of docType to w. Only listed documents can be
// fetched.
func (p *DocumentsPage) Download(ctx context.Context, docType string, w io.Writer) (records.Document, error) {
	doc, ok := p.Find(docType)
	if !ok {
		return records.Document{}, p.downloadFailed(docType, ErrNoDocument)
	}
	if err := p.client.Download(ctx, doc.DownloadPath(), w); err != nil {
		return records.Document{}, p.downloadFailed(docType, err)
	}
	return doc, nil
}

func (p *DocumentsPage) downloadFailed(docType string, err error) error {
	slog.Error("page operation failed", "page", documentsPageName, "op", "download", "type", docType, "err", err)
	p.notify.Error(MsgDownloadFailed)
	return err
}

// Upload sends a file as the employee's document of docType, replacing
// any earlier one.
func (p *DocumentsPage) Upload(ctx context.Context, docType, fileName string, content io.Reader) error {
	employeeID := p.session.Current().EmployeeID
	if employeeID == "" {
		return failure(p.notify, documentsPageName, "upload", ErrNoEmployee)
	}
	subpath := "upload/" + url.PathEscape(strings.ToLower(docType)) + "/" + url.PathEscape(employeeID)
	doc, err := p.client.Upload(ctx, subpath, "file", fileName, content)
	if err != nil {
		return failure(p.notify, documentsPageName, "upload", err)
	}
	p.list.UpsertByID(doc)
	p.notify.Success(records.DocumentLabel(doc.DocumentType) + " uploaded successfully")
	return nil
}
