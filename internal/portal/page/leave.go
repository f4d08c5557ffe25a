package page

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"idms/internal/portal/editsession"
	"idms/internal/portal/form"
	"idms/internal/portal/liststate"
	"idms/internal/portal/records"
	"idms/internal/portal/resource"
	"idms/internal/portal/session"
)

const leavePageName = "leave"

// LeavePage is an employee's leave history, the holiday calendar and the
// request form.
type LeavePage struct {
	session  *session.Service
	leaves   *resource.Client[records.Leave]
	holidays *resource.Client[records.Holiday]
	history  *liststate.Store[records.Leave, int64]
	calendar *liststate.Store[records.Holiday, int64]
	form     *editsession.Session[records.LeaveForm]
	notify   Notifier
}

func NewLeavePage(sess *session.Service, leaves *resource.Client[records.Leave], holidays *resource.Client[records.Holiday], notify Notifier) *LeavePage {
	return &LeavePage{
		session:  sess,
		leaves:   leaves,
		holidays: holidays,
		history:  liststate.New(records.LeaveKey, liststate.Prepend),
		calendar: liststate.New(records.HolidayBinding{}.Key, liststate.Append),
		form:     editsession.New(func() records.LeaveForm { return records.LeaveForm{} }),
		notify:   notify,
	}
}

// Load fetches the history and the holidays together.
func (p *LeavePage) Load(ctx context.Context) error {
	employeeID := p.session.Current().EmployeeID
	if employeeID == "" {
		return failure(p.notify, leavePageName, "load", ErrNoEmployee)
	}
	var (
		history  []records.Leave
		holidays []records.Holiday
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history, err = p.leaves.ListBy(gctx, employeeID)
		return err
	})
	g.Go(func() error {
		var err error
		holidays, err = p.holidays.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(p.notify, leavePageName, "load", err)
	}
	p.history.ReplaceAll(history)
	p.calendar.ReplaceAll(holidays)
	return nil
}

func (p *LeavePage) History() []records.Leave { return p.history.Items() }

func (p *LeavePage) Holidays() []records.Holiday { return p.calendar.Items() }

func (p *LeavePage) Form() records.LeaveForm { return p.form.Form() }

func (p *LeavePage) Input(fn func(*records.LeaveForm)) { p.form.Update(fn) }

func (p *LeavePage) Cancel() { p.form.Cancel() }

// Submit sends the request form. Nothing is sent when the form is invalid,
// including a start date after the end date.
func (p *LeavePage) Submit(ctx context.Context) error {
	st := p.session.Current()
	if st.EmployeeID == "" {
		return failure(p.notify, leavePageName, "submit", ErrNoEmployee)
	}
	request, err := records.BuildLeave(p.form.Form(), st.EmployeeID, st.EmployeeName)
	if err != nil {
		return failure(p.notify, leavePageName, "submit", err)
	}
	tok := p.form.Issue()
	created, err := p.leaves.CreateAt(ctx, "employee", request)
	if err != nil {
		return failure(p.notify, leavePageName, "submit", err)
	}
	settle(p.form, tok, leavePageName, "submit")
	p.history.UpsertByID(created)
	p.notify.Success("Leave request submitted successfully")
	return nil
}

// Taken sums the approved days per leave type.
func (p *LeavePage) Taken() map[string]int {
	out := make(map[string]int, len(records.LeaveTypes))
	for _, l := range p.history.Items() {
		if l.Status == records.StatusApproved {
			out[l.LeaveType] += l.NumberOfDays
		}
	}
	return out
}

const leaveBoardName = "leave-board"

// LeaveBoard is HR's view of every leave request.
type LeaveBoard struct {
	leaves *resource.Client[records.Leave]
	list   *liststate.Store[records.Leave, int64]
	notify Notifier
}

func NewLeaveBoard(leaves *resource.Client[records.Leave], notify Notifier) *LeaveBoard {
	return &LeaveBoard{
		leaves: leaves,
		list:   liststate.New(records.LeaveKey, liststate.Append),
		notify: notify,
	}
}

func (b *LeaveBoard) Load(ctx context.Context) error {
	items, err := b.leaves.ListAt(ctx, "hr/all")
	if err != nil {
		return failure(b.notify, leaveBoardName, "load", err)
	}
	b.list.ReplaceAll(items)
	return nil
}

func (b *LeaveBoard) Items() []records.Leave { return b.list.Items() }

// Pending lists the requests still awaiting a decision.
func (b *LeaveBoard) Pending() []records.Leave {
	var out []records.Leave
	for _, l := range b.list.Items() {
		if l.Status == records.StatusPending {
			out = append(out, l)
		}
	}
	return out
}

func (b *LeaveBoard) Approve(ctx context.Context, id int64, comments string) error {
	return b.decide(ctx, id, records.StatusApproved, comments)
}

// Reject needs a comment for the employee.
func (b *LeaveBoard) Reject(ctx context.Context, id int64, comments string) error {
	if strings.TrimSpace(comments) == "" {
		var v form.Validator
		v.Add("hrComments", "is required when rejecting")
		return failure(b.notify, leaveBoardName, "reject", v.Err())
	}
	return b.decide(ctx, id, records.StatusRejected, comments)
}

func (b *LeaveBoard) decide(ctx context.Context, id int64, status, comments string) error {
	body := records.Decision{Status: strings.ToUpper(status), HRComments: strings.TrimSpace(comments)}
	updated, err := b.leaves.Call(ctx, http.MethodPut, fmt.Sprintf("%d/status", id), body)
	if err != nil {
		return failure(b.notify, leaveBoardName, status, err)
	}
	b.list.UpsertByID(updated)
	b.notify.Success("Leave request " + status)
	return nil
}
