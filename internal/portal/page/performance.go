package page

import (
	"context"

	"idms/internal/portal/liststate"
	"idms/internal/portal/records"
	"idms/internal/portal/resource"
	"idms/internal/portal/session"
)

const performancePageName = "performance"

// PerformancePage is the signed-in employee's read-only review history.
// The server lists reviews newest first.
type PerformancePage struct {
	session *session.Service
	client  *resource.Client[records.Review]
	list    *liststate.Store[records.Review, int64]
	notify  Notifier
}

func NewPerformancePage(sess *session.Service, client *resource.Client[records.Review], notify Notifier) *PerformancePage {
	return &PerformancePage{
		session: sess,
		client:  client,
		list:    liststate.New(records.ReviewKey, liststate.Append),
		notify:  notify,
	}
}

func (p *PerformancePage) Load(ctx context.Context) error {
	employeeID := p.session.Current().EmployeeID
	if employeeID == "" {
		return failure(p.notify, performancePageName, "load", ErrNoEmployee)
	}
	items, err := p.client.ListBy(ctx, employeeID)
	if err != nil {
		return failure(p.notify, performancePageName, "load", err)
	}
	p.list.ReplaceAll(items)
	return nil
}

func (p *PerformancePage) Items() []records.Review { return p.list.Items() }

// Current is the latest review, which carries the current rating.
func (p *PerformancePage) Current() (records.Review, bool) {
	items := p.list.Items()
	if len(items) == 0 {
		return records.Review{}, false
	}
	return items[0], true
}

// Achievements lists the non-empty achievements across all reviews.
func (p *PerformancePage) Achievements() []string {
	return collect(p.list.Items(), func(r records.Review) string { return r.Achievements })
}

// Goals lists the non-empty goals across all reviews.
func (p *PerformancePage) Goals() []string {
	return collect(p.list.Items(), func(r records.Review) string { return r.Goals })
}

func collect(reviews []records.Review, field func(records.Review) string) []string {
	var out []string
	for _, r := range reviews {
		if v := field(r); v != "" {
			out = append(out, v)
		}
	}
	return out
}
