package portalcli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"idms/internal/portal"
	"idms/internal/portal/page"
	"idms/internal/portal/records"
	"idms/internal/portal/session"
)

func table(env *Env) *tabwriter.Writer {
	return tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
}

func cmdLogin(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("IDMS_PASSWORD"), "password (or IDMS_PASSWORD)")
	if err := parse(fs, args, "email", "password"); err != nil {
		return err
	}
	state, err := env.Portal.Auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "logged in as %s, home %s\n", state.Email, session.HomeRoute(state))
	return nil
}

func cmdEmployeeLogin(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("employee-login")
	id := fs.String("id", "", "employee id or email")
	password := fs.String("password", os.Getenv("IDMS_PASSWORD"), "password (or IDMS_PASSWORD)")
	if err := parse(fs, args, "id", "password"); err != nil {
		return err
	}
	state, err := env.Portal.Auth.EmployeeLogin(ctx, *id, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "logged in as %s (%s), home %s\n", state.EmployeeName, state.EmployeeID, session.HomeRoute(state))
	return nil
}

func cmdLogout(_ context.Context, env *Env, _ []string) error {
	if err := env.Portal.Auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, "logged out")
	return nil
}

func cmdWhoami(_ context.Context, env *Env, _ []string) error {
	st := env.Portal.Session.Current()
	if !st.LoggedIn() {
		fmt.Fprintln(env.Out, "not logged in")
		return nil
	}
	w := table(env)
	fmt.Fprintf(w, "email\t%s\n", st.Email)
	fmt.Fprintf(w, "roles\t%s\n", strings.Join(st.Roles, ","))
	if st.EmployeeID != "" {
		fmt.Fprintf(w, "employee\t%s %s\n", st.EmployeeID, st.EmployeeName)
	}
	if st.Department != "" {
		fmt.Fprintf(w, "department\t%s\n", st.Department)
	}
	fmt.Fprintf(w, "home\t%s\n", session.HomeRoute(st))
	return w.Flush()
}

func printExpenses(env *Env, pg *portal.ExpensePage) error {
	w := table(env)
	fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tDESCRIPTION\tRECIPIENT")
	for _, e := range pg.Items() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.DisplayDate(), e.DisplayAmount(), e.Description, e.Recipient)
	}
	return w.Flush()
}

// loadExpenses resolves -resource and loads that page.
func loadExpenses(ctx context.Context, env *Env, name string) (*portal.ExpensePage, error) {
	if err := requireLogin(env); err != nil {
		return nil, err
	}
	pg, err := env.Portal.Expense(name)
	if err != nil {
		return nil, err
	}
	return pg, pg.Load(ctx)
}

func cmdList(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("list")
	name := fs.String("resource", "", "finance resource, e.g. rent")
	if err := parse(fs, args, "resource"); err != nil {
		return err
	}
	pg, err := loadExpenses(ctx, env, *name)
	if err != nil {
		return err
	}
	return printExpenses(env, pg)
}

func cmdAdd(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("add")
	name := fs.String("resource", "", "finance resource, e.g. rent")
	date := fs.String("date", "", "date as YYYY-MM-DD")
	amount := fs.String("amount", "", "amount")
	description := fs.String("description", "", "description, at most six words")
	recipient := fs.String("recipient", "", "recipient for commissions and incentives")
	if err := parse(fs, args, "resource"); err != nil {
		return err
	}
	pg, err := loadExpenses(ctx, env, *name)
	if err != nil {
		return err
	}
	pg.Begin()
	pg.Input(func(f *records.ExpenseForm) {
		f.Date = *date
		f.Amount = *amount
		f.SetDescription(*description)
		f.Recipient = *recipient
	})
	if err := pg.Submit(ctx); err != nil {
		return err
	}
	return printExpenses(env, pg)
}

func cmdUpdate(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("update")
	name := fs.String("resource", "", "finance resource, e.g. rent")
	id := fs.Int64("id", 0, "record id")
	date := fs.String("date", "", "new date as YYYY-MM-DD")
	amount := fs.String("amount", "", "new amount")
	description := fs.String("description", "", "new description")
	recipient := fs.String("recipient", "", "new recipient")
	if err := parse(fs, args, "resource", "id"); err != nil {
		return err
	}
	pg, err := loadExpenses(ctx, env, *name)
	if err != nil {
		return err
	}
	if err := pg.Edit(*id); err != nil {
		return err
	}
	pg.Input(func(f *records.ExpenseForm) {
		if *date != "" {
			f.Date = *date
		}
		if *amount != "" {
			f.Amount = *amount
		}
		if *description != "" {
			f.SetDescription(*description)
		}
		if *recipient != "" {
			f.Recipient = *recipient
		}
	})
	if err := pg.Submit(ctx); err != nil {
		return err
	}
	return printExpenses(env, pg)
}

func cmdDelete(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("delete")
	name := fs.String("resource", "", "finance resource, e.g. rent")
	id := fs.Int64("id", 0, "record id")
	if err := parse(fs, args, "resource", "id"); err != nil {
		return err
	}
	pg, err := loadExpenses(ctx, env, *name)
	if err != nil {
		return err
	}
	if err := pg.Remove(ctx, *id); err != nil {
		return err
	}
	return printExpenses(env, pg)
}

func cmdExport(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("export")
	name := fs.String("resource", "", "finance resource, e.g. rent")
	out := fs.String("out", "", "output PDF path")
	if err := parse(fs, args, "resource", "out"); err != nil {
		return err
	}
	if err := requireLogin(env); err != nil {
		return err
	}
	file, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := env.Portal.ExportPDF(ctx, *name, file); err != nil {
		_ = file.Close()
		_ = os.Remove(*out)
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "wrote %s\n", *out)
	return nil
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func cmdDashboard(ctx context.Context, env *Env, _ []string) error {
	if err := requireLogin(env); err != nil {
		return err
	}
	if err := env.Portal.Dashboard.Load(ctx); err != nil {
		return err
	}
	s := env.Portal.Dashboard.Summary()
	w := table(env)
	fmt.Fprintln(w, "RESOURCE\tKIND\tTOTAL")
	for _, r := range records.ExpenseResources {
		kind := "variable"
		if r.Fixed {
			kind = "fixed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Label, kind, money(s.ByResource[r.Name]))
	}
	fmt.Fprintf(w, "\nfixed\t\t%s\n", money(s.Fixed))
	fmt.Fprintf(w, "variable\t\t%s\n", money(s.Variable))
	fmt.Fprintf(w, "total\t\t%s\n", money(s.Total))
	fmt.Fprintf(w, "budget\t\t%s\n", money(s.Budget))
	fmt.Fprintf(w, "savings\t\t%s\n", money(s.Savings))
	return w.Flush()
}

func printLeaves(env *Env, leaves []records.Leave) error {
	w := table(env)
	fmt.Fprintln(w, "ID\tEMPLOYEE\tTYPE\tFROM\tTO\tDAYS\tSTATUS\tREASON\tHR COMMENTS")
	for _, l := range leaves {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			l.ID, l.EmployeeID, l.LeaveType, l.StartDate.Display(), l.EndDate.Display(), l.NumberOfDays, l.Status, l.Reason, l.HRComments)
	}
	return w.Flush()
}

func printHolidays(env *Env, holidays []records.Holiday) error {
	w := table(env)
	fmt.Fprintln(w, "ID\tHOLIDAY\tFROM\tTO\tDAY\tTYPE")
	for _, h := range holidays {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", h.ID, h.HolidayName, h.StartDate.Display(), h.EndDate.Display(), h.Day, h.Type)
	}
	return w.Flush()
}

func cmdLeave(ctx context.Context, env *Env, _ []string) error {
	if err := requireLogin(env); err != nil {
		return err
	}
	leave := env.Portal.Leave
	if err := leave.Load(ctx); err != nil {
		return err
	}
	if err := printLeaves(env, leave.History()); err != nil {
		return err
	}
	fmt.Fprintln(env.Out)
	return printHolidays(env, leave.Holidays())
}

func cmdLeaveRequest(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("leave-request")
	leaveType := fs.String("type", "casual", "casual, sick or holiday")
	start := fs.String("start", "", "first day as YYYY-MM-DD")
	end := fs.String("end", "", "last day as YYYY-MM-DD")
	reason := fs.String("reason", "", "reason")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireLogin(env); err != nil {
		return err
	}
	leave := env.Portal.Leave
	if err := leave.Load(ctx); err != nil {
		return err
	}
	leave.Input(func(f *records.LeaveForm) {
		f.LeaveType = *leaveType
		f.StartDate = *start
		f.EndDate = *end
		f.Reason = *reason
	})
	if err := leave.Submit(ctx); err != nil {
		return err
	}
	return printLeaves(env, leave.History())
}

func cmdBoard(ctx context.Context, env *Env, _ []string) error {
	if err := requireLogin(env); err != nil {
		return err
	}
	if err := env.Portal.LeaveBoard.Load(ctx); err != nil {
		return err
	}
	return printLeaves(env, env.Portal.LeaveBoard.Pending())
}

func decide(ctx context.Context, env *Env, name string, args []string, apply func(*page.LeaveBoard, context.Context, int64, string) error) error {
	fs := newFlags(name)
	id := fs.Int64("id", 0, "leave request id")
	comments := fs.String("comments", "", "comments for the employee")
	if err := parse(fs, args, "id"); err != nil {
		return err
	}
	if err := requireLogin(env); err != nil {
		return err
	}
	board := env.Portal.LeaveBoard
	if err := board.Load(ctx); err != nil {
		return err
	}
	if err := apply(board, ctx, *id, *comments); err != nil {
		return err
	}
	return printLeaves(env, board.Pending())
}

func cmdApprove(ctx context.Context, env *Env, args []string) error {
	return decide(ctx, env, "approve", args, (*page.LeaveBoard).Approve)
}

func cmdReject(ctx context.Context, env *Env, args []string) error {
	return decide(ctx, env, "reject", args, (*page.LeaveBoard).Reject)
}

func cmdAttendance(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("attendance")
	periodName := fs.String("period", "week", "week, month or year")
	if err := parse(fs, args); err != nil {
		return err
	}
	var period page.Period
	switch *periodName {
	case "week":
		period = page.PeriodWeek
	case "month":
		period = page.PeriodMonth
	case "year":
		period = page.PeriodYear
	default:
		return fmt.Errorf("%w: unknown period %q", ErrUsage, *periodName)
	}
	if err := requireLogin(env); err != nil {
		return err
	}
	attendance := env.Portal.Attendance
	if err := attendance.Load(ctx); err != nil {
		return err
	}
	rows := attendance.Filter(period, time.Now())
	w := table(env)
	fmt.Fprintln(w, "DATE\tIN\tOUT\tHOURS\tSTATUS")
	for _, a := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Date.Display(), a.CheckInTime, a.CheckOutTime, money(a.WorkHours), a.Status)
	}
	stats := page.Stats(rows)
	fmt.Fprintf(w, "\npresent %d, late %d, half-day %d, absent %d, hours %s\n", stats.Present, stats.Late, stats.HalfDay, stats.Absent, money(stats.WorkHours))
	return w.Flush()
}

func mark(ctx context.Context, env *Env, signIn bool) error {
	if err := requireLogin(env); err != nil {
		return err
	}
	now := time.Now()
	attendance := env.Portal.Attendance
	var err error
	if signIn {
		err = attendance.SignIn(ctx, now)
	} else {
		err = attendance.SignOut(ctx, now)
	}
	if err != nil {
		return err
	}
	today, _ := attendance.Today(now)
	fmt.Fprintf(env.Out, "%s: in %s, out %s, %s\n", today.Date.Display(), today.CheckInTime, today.CheckOutTime, today.Status)
	return nil
}

func cmdSignIn(ctx context.Context, env *Env, _ []string) error  { return mark(ctx, env, true) }
func cmdSignOut(ctx context.Context, env *Env, _ []string) error { return mark(ctx, env, false) }

func cmdMemos(ctx context.Context, env *Env, _ []string) error {
	if err := requireLogin(env); err != nil {
		return err
	}
	feed := env.Portal.Memos
	if err := feed.Load(ctx); err != nil {
		return err
	}
	w := table(env)
	fmt.Fprintln(w, "ID\tSENT\tPRIORITY\tFROM\tTITLE\tMEETING")
	for _, m := range feed.Items() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.SentAt.Local().Format("2006-01-02 15:04"), m.Priority, m.SentByName, m.Title, m.MeetingDate.Display())
	}
	return w.Flush()
}

func cmdMemoSend(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("memo-send")
	title := fs.String("title", "", "title")
	content := fs.String("content", "", "body")
	employees := fs.String("employees", "", "comma separated employee ids")
	departments := fs.String("departments", "", "comma separated departments")
	all := fs.Bool("all", false, "send to everyone")
	priority := fs.String("priority", "", "High, Medium or Low")
	meetingType := fs.String("meeting-type", "", "meeting type")
	date := fs.String("date", "", "meeting date as YYYY-MM-DD")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireLogin(env); err != nil {
		return err
	}
	feed := env.Portal.Memos
	feed.Input(func(f *records.MemoForm) {
		f.Title = *title
		f.Content = *content
		f.Employees = *employees
		f.Departments = *departments
		f.SentToAll = *all
		f.Priority = *priority
		f.MeetingType = *meetingType
		f.MeetingDate = *date
	})
	if err := feed.Send(ctx); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, "memo sent")
	return nil
}

func cmdHolidays(ctx context.Context, env *Env, _ []string) error {
	if err := requireLogin(env); err != nil {
		return err
	}
	holidays := env.Portal.Holidays
	if err := holidays.Load(ctx); err != nil {
		return err
	}
	return printHolidays(env, holidays.Items())
}

func cmdAssets(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("assets")
	mine := fs.Bool("mine", false, "only assets assigned to me")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireLogin(env); err != nil {
		return err
	}
	var items []records.Asset
	if *mine {
		var err error
		if items, err = env.Portal.MyAssets(ctx); err != nil {
			return err
		}
	} else {
		if err := env.Portal.Assets.Load(ctx); err != nil {
			return err
		}
		items = env.Portal.Assets.Items()
	}
	w := table(env)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSERIAL\tSTATUS\tCONDITION\tASSIGNED")
	for _, a := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.AssetName, a.Category, a.SerialNumber, a.Status, a.Condition, a.AssignedTo)
	}
	return w.Flush()
}

func cmdPerformance(ctx context.Context, env *Env, _ []string) error {
	if err := requireLogin(env); err != nil {
		return err
	}
	perf := env.Portal.Performance
	if err := perf.Load(ctx); err != nil {
		return err
	}
	if current, ok := perf.Current(); ok {
		fmt.Fprintf(env.Out, "current rating %s (%s), next review %s\n", current.DisplayRating(), current.ReviewStatus, current.NextReviewDate.Display())
	}
	w := table(env)
	fmt.Fprintln(w, "ID\tREVIEWED\tRATING\tSTATUS\tREVIEWER\tFEEDBACK")
	for _, r := range perf.Items() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.LastReviewDate.Display(), r.DisplayRating(), r.ReviewStatus, r.Reviewer, r.Feedback)
	}
	return w.Flush()
}

func cmdDocuments(ctx context.Context, env *Env, _ []string) error {
	if err := requireLogin(env); err != nil {
		return err
	}
	docs := env.Portal.Documents
	if err := docs.Load(ctx); err != nil {
		return err
	}
	w := table(env)
	fmt.Fprintln(w, "TYPE\tFILE\tKIND\tSIZE")
	for _, docType := range records.DocumentTypes {
		d, ok := docs.Find(docType)
		if !ok {
			fmt.Fprintf(w, "%s\t-\t-\t-\n", records.DocumentLabel(docType))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", records.DocumentLabel(docType), d.Name, d.FileType, d.Size)
	}
	return w.Flush()
}

func cmdDocumentUpload(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("document-upload")
	docType := fs.String("type", "", "resume, markscard, idproof or offerletter")
	path := fs.String("file", "", "file to upload")
	if err := parse(fs, args, "type", "file"); err != nil {
		return err
	}
	if err := requireLogin(env); err != nil {
		return err
	}
	file, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := env.Portal.Documents.Upload(ctx, *docType, filepath.Base(*path), file); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "uploaded %s as %s\n", *path, records.DocumentLabel(*docType))
	return nil
}

func cmdDocumentDownload(ctx context.Context, env *Env, args []string) error {
	fs := newFlags("document-download")
	docType := fs.String("type", "", "resume, markscard, idproof or offerletter")
	out := fs.String("out", "", "output path")
	if err := parse(fs, args, "type", "out"); err != nil {
		return err
	}
	if err := requireLogin(env); err != nil {
		return err
	}
	docs := env.Portal.Documents
	if err := docs.Load(ctx); err != nil {
		return err
	}
	file, err := os.Create(*out)
	if err != nil {
		return err
	}
	doc, err := docs.Download(ctx, *docType, file)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(*out)
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "wrote %s (%s)\n", *out, doc.Name)
	return nil
}
