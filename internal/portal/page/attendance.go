package page

import (
	"cmp"
	"context"
	"slices"
	"time"

	"idms/internal/portal/liststate"
	"idms/internal/portal/records"
	"idms/internal/portal/resource"
	"idms/internal/portal/session"
	"idms/internal/wiredate"
)

const attendancePageName = "attendance"

type Period int

const (
	PeriodWeek Period = iota
	PeriodMonth
	PeriodYear
)

func (p Period) String() string {
	switch p {
	case PeriodMonth:
		return "month"
	case PeriodYear:
		return "year"
	}
	return "week"
}

// AttendanceStats counts the days of a filtered view.
type AttendanceStats struct {
	Present   int
	Late      int
	HalfDay   int
	Absent    int
	WorkHours float64
}

// AttendancePage is an employee's attendance log with sign-in and sign-out.
type AttendancePage struct {
	session *session.Service
	client  *resource.Client[records.Attendance]
	list    *liststate.Store[records.Attendance, int64]
	notify  Notifier
}

func NewAttendancePage(sess *session.Service, client *resource.Client[records.Attendance], notify Notifier) *AttendancePage {
	return &AttendancePage{
		session: sess,
		client:  client,
		list:    liststate.New(records.AttendanceKey, liststate.Prepend),
		notify:  notify,
	}
}

func (p *AttendancePage) Load(ctx context.Context) error {
	employeeID := p.session.Current().EmployeeID
	if employeeID == "" {
		return failure(p.notify, attendancePageName, "load", ErrNoEmployee)
	}
	items, err := p.client.ListBy(ctx, employeeID)
	if err != nil {
		return failure(p.notify, attendancePageName, "load", err)
	}
	p.list.ReplaceAll(items)
	return nil
}

func (p *AttendancePage) Items() []records.Attendance { return p.list.Items() }

// SignIn marks the check-in for now's day.
func (p *AttendancePage) SignIn(ctx context.Context, now time.Time) error {
	return p.mark(ctx, "sign-in", now, true)
}

// SignOut marks the check-out for now's day.
func (p *AttendancePage) SignOut(ctx context.Context, now time.Time) error {
	return p.mark(ctx, "sign-out", now, false)
}

func (p *AttendancePage) mark(ctx context.Context, op string, now time.Time, in bool) error {
	employeeID := p.session.Current().EmployeeID
	if employeeID == "" {
		return failure(p.notify, attendancePageName, op, ErrNoEmployee)
	}
	body := records.Attendance{EmployeeID: employeeID, Date: wiredate.FromTime(now)}
	clock := now.Format("15:04:05")
	if in {
		body.CheckInTime = clock
	} else {
		body.CheckOutTime = clock
	}
	saved, err := p.client.CreateAt(ctx, "mark", body)
	if err != nil {
		return failure(p.notify, attendancePageName, op, err)
	}
	p.list.UpsertByID(saved)
	if in {
		p.notify.Success("Signed in at " + saved.CheckInTime)
	} else {
		p.notify.Success("Signed out at " + saved.CheckOutTime)
	}
	return nil
}

// Today returns the record for now's day, if any.
func (p *AttendancePage) Today(now time.Time) (records.Attendance, bool) {
	today := wiredate.FromTime(now)
	for _, a := range p.list.Items() {
		if a.Date == today {
			return a, true
		}
	}
	return records.Attendance{}, false
}

// Filter returns the records inside period around now, newest first. A
// week starts on Sunday.
func (p *AttendancePage) Filter(period Period, now time.Time) []records.Attendance {
	today := wiredate.FromTime(now)
	var from, to wiredate.Date
	switch period {
	case PeriodMonth:
		from = wiredate.New(today.Year, today.Month, 1)
		to = wiredate.FromTime(from.Time().AddDate(0, 1, -1))
	case PeriodYear:
		from = wiredate.New(today.Year, time.January, 1)
		to = wiredate.New(today.Year, time.December, 31)
	default:
		from = today.AddDays(-int(today.Weekday()))
		to = from.AddDays(6)
	}
	var out []records.Attendance
	for _, a := range p.list.Items() {
		if !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b records.Attendance) int {
		if c := b.Date.Time().Compare(a.Date.Time()); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out
}

func Stats(items []records.Attendance) AttendanceStats {
	var s AttendanceStats
	for _, a := range items {
		switch a.Status {
		case records.AttendancePresent:
			s.Present++
		case records.AttendanceLate:
			s.Late++
		case records.AttendanceHalfDay:
			s.HalfDay++
		case records.AttendanceAbsent:
			s.Absent++
		}
		s.WorkHours += a.WorkHours
	}
	return s
}
