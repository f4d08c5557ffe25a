package page

import (
	"context"
	"net/url"
	"strings"

	"idms/internal/portal/editsession"
	"idms/internal/portal/liststate"
	"idms/internal/portal/records"
	"idms/internal/portal/resource"
	"idms/internal/portal/session"
)

const memoFeedName = "memos"

// MemoFeed lists the memos that reach the signed-in employee and sends new
// ones.
type MemoFeed struct {
	session *session.Service
	client  *resource.Client[records.Memo]
	list    *liststate.Store[records.Memo, int64]
	form    *editsession.Session[records.MemoForm]
	notify  Notifier
}

func NewMemoFeed(sess *session.Service, client *resource.Client[records.Memo], notify Notifier) *MemoFeed {
	return &MemoFeed{
		session: sess,
		client:  client,
		list:    liststate.New(records.MemoKey, liststate.Prepend),
		form:    editsession.New(func() records.MemoForm { return records.MemoForm{} }),
		notify:  notify,
	}
}

func (f *MemoFeed) Load(ctx context.Context) error {
	st := f.session.Current()
	if st.EmployeeID == "" {
		return failure(f.notify, memoFeedName, "load", ErrNoEmployee)
	}
	subpath := "employee/" + url.PathEscape(st.EmployeeID)
	if st.Department != "" {
		subpath += "?department=" + url.QueryEscape(st.Department)
	}
	items, err := f.client.ListAt(ctx, subpath)
	if err != nil {
		return failure(f.notify, memoFeedName, "load", err)
	}
	f.list.ReplaceAll(items)
	return nil
}

func (f *MemoFeed) Items() []records.Memo { return f.list.Items() }

func (f *MemoFeed) Form() records.MemoForm { return f.form.Form() }

func (f *MemoFeed) Input(fn func(*records.MemoForm)) { f.form.Update(fn) }

func (f *MemoFeed) Cancel() { f.form.Cancel() }

// Send posts the form as the signed-in user. A memo that reaches the
// sender shows at the top of the feed.
func (f *MemoFeed) Send(ctx context.Context) error {
	st := f.session.Current()
	sentBy := st.EmployeeID
	if sentBy == "" {
		sentBy = st.Email
	}
	memo, err := records.BuildMemo(f.form.Form(), sentBy, st.EmployeeName)
	if err != nil {
		return failure(f.notify, memoFeedName, "send", err)
	}
	tok := f.form.Issue()
	sent, err := f.client.Create(ctx, memo)
	if err != nil {
		return failure(f.notify, memoFeedName, "send", err)
	}
	settle(f.form, tok, memoFeedName, "send")
	if reaches(sent, st) {
		f.list.UpsertByID(sent)
	}
	f.notify.Success("Memo sent successfully")
	return nil
}

func reaches(m records.Memo, st session.State) bool {
	if m.SentToAll {
		return true
	}
	for _, id := range m.RecipientEmployeeIDs {
		if st.EmployeeID != "" && id == st.EmployeeID {
			return true
		}
	}
	for _, d := range m.RecipientDepartments {
		if st.Department != "" && strings.EqualFold(d, st.Department) {
			return true
		}
	}
	return false
}
