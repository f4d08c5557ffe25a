// Package portal wires every page of the IDMS portal to one backend and
// one session.
package portal

import (
	"context"
	"fmt"
	"io"

	"idms/internal/portal/page"
	"idms/internal/portal/records"
	"idms/internal/portal/resource"
	"idms/internal/portal/session"
)

type (
	ExpensePage = page.CRUD[records.Expense, records.ExpenseForm]
	HolidayPage = page.CRUD[records.Holiday, records.HolidayForm]
	AssetPage   = page.CRUD[records.Asset, records.AssetForm]
)

// ExpenseSync is how each finance page catches up after a change.
// Commissions and travel patch the one entry; the rest refetch.
func ExpenseSync(name string) page.SyncMode {
	switch name {
	case "commissions", "travel":
		return page.SyncSplice
	}
	return page.SyncRefetch
}

type Portal struct {
	Session  *session.Service
	Auth     *session.Authenticator
	Notifier page.Notifier

	Expenses    map[string]*ExpensePage
	Holidays    *HolidayPage
	Assets      *AssetPage
	Leave       *page.LeavePage
	LeaveBoard  *page.LeaveBoard
	Attendance  *page.AttendancePage
	Memos       *page.MemoFeed
	Dashboard   *page.Dashboard
	Performance *page.PerformancePage
	Documents   *page.DocumentsPage

	expenseClients map[string]*resource.Client[records.Expense]
	assetClient    *resource.Client[records.Asset]
}

// New builds every page. cfg.Tokens is replaced by sess.
func New(cfg resource.Config, sess *session.Service, notify page.Notifier) *Portal {
	cfg.Tokens = sess
	p := &Portal{
		Session:        sess,
		Auth:           session.NewAuthenticator(cfg, sess),
		Notifier:       notify,
		Expenses:       make(map[string]*ExpensePage, len(records.ExpenseResources)),
		expenseClients: make(map[string]*resource.Client[records.Expense], len(records.ExpenseResources)),
	}
	for _, r := range records.ExpenseResources {
		client := resource.New[records.Expense](cfg, r.Path(), records.ExpenseMapper{Resource: r})
		p.expenseClients[r.Name] = client
		p.Expenses[r.Name] = page.NewCRUD[records.Expense, records.ExpenseForm](r.Label, client, records.ExpenseBinding{Resource: r}, notify, ExpenseSync(r.Name))
	}

	holidays := resource.New[records.Holiday](cfg, "/api/holidays", records.HolidayMapper{})
	leaves := resource.New[records.Leave](cfg, "/api/leave-requests", records.LeaveMapper{})
	p.assetClient = resource.New[records.Asset](cfg, "/api/assets", records.AssetMapper{})

	p.Holidays = page.NewCRUD[records.Holiday, records.HolidayForm]("Holiday", holidays, records.HolidayBinding{}, notify, page.SyncRefetch)
	p.Assets = page.NewCRUD[records.Asset, records.AssetForm]("Asset", p.assetClient, records.AssetBinding{}, notify, page.SyncRefetch)
	p.Leave = page.NewLeavePage(sess, leaves, holidays, notify)
	p.LeaveBoard = page.NewLeaveBoard(leaves, notify)
	p.Attendance = page.NewAttendancePage(sess, resource.New[records.Attendance](cfg, "/api/attendance", records.AttendanceMapper{}), notify)
	p.Memos = page.NewMemoFeed(sess, resource.New[records.Memo](cfg, "/api/memos", records.MemoMapper{}), notify)
	p.Dashboard = page.NewDashboard(p.expenseClients, notify)
	p.Performance = page.NewPerformancePage(sess, resource.New[records.Review](cfg, "/api/performance-reviews", records.ReviewMapper{}), notify)
	p.Documents = page.NewDocumentsPage(sess, resource.New[records.Document](cfg, "/api/hr", records.DocumentMapper{}), notify)
	return p
}

// Expense returns the page for a finance collection such as "rent".
func (p *Portal) Expense(name string) (*ExpensePage, error) {
	pg, ok := p.Expenses[name]
	if !ok {
		return nil, fmt.Errorf("unknown finance resource %q", name)
	}
	return pg, nil
}

// ExportPDF writes the server's PDF summary of one finance collection.
func (p *Portal) ExportPDF(ctx context.Context, name string, w io.Writer) error {
	client, ok := p.expenseClients[name]
	if !ok {
		return fmt.Errorf("unknown finance resource %q", name)
	}
	return client.Download(ctx, "export/pdf", w)
}

// MyAssets lists the assets assigned to the signed-in employee.
func (p *Portal) MyAssets(ctx context.Context) ([]records.Asset, error) {
	employeeID := p.Session.Current().EmployeeID
	if employeeID == "" {
		return nil, page.ErrNoEmployee
	}
	return p.assetClient.ListBy(ctx, employeeID)
}
