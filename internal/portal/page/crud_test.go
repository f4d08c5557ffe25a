package page_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idms/internal/portal"
	"idms/internal/portal/editsession"
	"idms/internal/portal/form"
	"idms/internal/portal/page"
	"idms/internal/portal/portaltest"
	"idms/internal/portal/records"
	"idms/internal/portal/resource"
	"idms/internal/portal/session"
)

type fixture struct {
	backend *portaltest.Backend
	notify  *portaltest.Notifier
	portal  *portal.Portal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := portaltest.Start(t)
	return withSession(t, backend, backend.LoginAdmin(t))
}

func withSession(t *testing.T, backend *portaltest.Backend, sess *session.Service) *fixture {
	t.Helper()
	notify := &portaltest.Notifier{}
	return &fixture{
		backend: backend,
		notify:  notify,
		portal:  portal.New(backend.ClientConfig(nil), sess, notify),
	}
}

func (f *fixture) expensePage(t *testing.T, name string) *portal.ExpensePage {
	t.Helper()
	pg, err := f.portal.Expense(name)
	require.NoError(t, err)
	return pg
}

func addExpense(t *testing.T, pg *portal.ExpensePage, date, amount, description, recipient string) {
	t.Helper()
	pg.Begin()
	pg.Input(func(f *records.ExpenseForm) {
		f.Date = date
		f.Amount = amount
		f.SetDescription(description)
		f.Recipient = recipient
	})
	require.NoError(t, pg.Submit(context.Background()))
}

// rawList fetches a collection without the portal's mappers.
func rawList(t *testing.T, f *fixture, path string) []map[string]any {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, f.backend.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+f.portal.Session.Token())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateThenListRoundTrip(t *testing.T) {
	f := newFixture(t)
	rent := f.expensePage(t, "rent")
	require.NoError(t, rent.Load(context.Background()))
	assert.Empty(t, rent.Items())

	addExpense(t, rent, "2025-06-01", "15000", "June office rent", "")

	items := rent.Items()
	require.Len(t, items, 1)
	assert.NotZero(t, items[0].ID)
	assert.Equal(t, "6/1/2025", items[0].DisplayDate())
	assert.Equal(t, "15000.00", items[0].DisplayAmount())
	assert.Equal(t, "June office rent", items[0].Description)
	assert.Equal(t, editsession.Idle, rent.Mode())
	assert.Equal(t, records.ExpenseForm{}, rent.Form())
	assert.Equal(t, []string{"Rent added successfully"}, f.notify.Successes())

	fresh := portal.New(f.backend.ClientConfig(nil), f.portal.Session, f.notify)
	pg, err := fresh.Expense("rent")
	require.NoError(t, err)
	require.NoError(t, pg.Load(context.Background()))
	assert.Equal(t, items, pg.Items())
}

func TestUpdateChangesOnlyTheEditedRecord(t *testing.T) {
	f := newFixture(t)
	water := f.expensePage(t, "water-bills")
	addExpense(t, water, "2025-06-01", "100", "first", "")
	addExpense(t, water, "2025-06-02", "200", "second", "")
	before := water.Items()
	require.Len(t, before, 2)

	require.NoError(t, water.Edit(before[0].ID))
	assert.Equal(t, editsession.Editing, water.Mode())
	water.Input(func(f *records.ExpenseForm) { f.Amount = "150" })
	require.NoError(t, water.Submit(context.Background()))

	after := water.Items()
	require.Len(t, after, 2)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, 150.0, after[0].Amount)
	assert.Equal(t, before[1], after[1])
	assert.Equal(t, editsession.Idle, water.Mode())
}

func TestEditLastWriterWins(t *testing.T) {
	f := newFixture(t)
	sims := f.expensePage(t, "sim-bills")
	addExpense(t, sims, "2025-06-01", "10", "line one", "")
	addExpense(t, sims, "2025-06-02", "20", "line two", "")
	items := sims.Items()

	require.NoError(t, sims.Edit(items[0].ID))
	sims.Input(func(f *records.ExpenseForm) { f.Amount = "99" })
	require.NoError(t, sims.Edit(items[1].ID))

	assert.Equal(t, "line two", sims.Form().Description)
	assert.Equal(t, "20", sims.Form().Amount)
	require.NoError(t, sims.Submit(context.Background()))
	got, ok := sims.Get(items[0].ID)
	require.True(t, ok)
	assert.Equal(t, 10.0, got.Amount)
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	internet := f.expensePage(t, "internet-bills")
	addExpense(t, internet, "2025-06-01", "80", "fibre", "")
	id := internet.Items()[0].ID

	require.NoError(t, internet.Remove(context.Background(), id))
	assert.Empty(t, internet.Items())
	assert.Empty(t, rawList(t, f, "/api/internet-bills"))
}

func TestRemoveMissingLeavesListAndToastsError(t *testing.T) {
	f := newFixture(t)
	salaries := f.expensePage(t, "salaries")
	addExpense(t, salaries, "2025-06-01", "5000", "june payroll", "")
	before := salaries.Items()
	require.NotEqual(t, int64(5), before[0].ID)

	err := salaries.Remove(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, resource.StatusCode(err))
	assert.Equal(t, before, salaries.Items())
	assert.Len(t, f.notify.Errors(), 1)
}

func TestDescriptionTruncatedToSixWords(t *testing.T) {
	f := newFixture(t)
	electric := f.expensePage(t, "electric-bills")
	addExpense(t, electric, "2025-06-03", "1200", "one two three four five six seven eight", "")

	items := electric.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "one two three four five six", items[0].Description)
	assert.Equal(t, 6, form.WordCount(items[0].Description))
	assert.Equal(t, "one two three four five six", rawList(t, f, "/api/electric-bills")[0]["description"])
}

func TestValidationBlocksSubmitWithoutRequest(t *testing.T) {
	f := newFixture(t)
	rent := f.expensePage(t, "rent")
	rent.Begin()
	rent.Input(func(f *records.ExpenseForm) { f.Date = "2025-06-01" })
	sent := f.backend.Requests.Count("POST /api/rent")

	err := rent.Submit(context.Background())
	var verr *form.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, sent, f.backend.Requests.Count("POST /api/rent"))
	assert.Equal(t, editsession.Creating, rent.Mode())
	assert.Len(t, f.notify.Errors(), 1)
}

func TestServerRejectsNegativeAmount(t *testing.T) {
	f := newFixture(t)
	rent := f.expensePage(t, "rent")
	rent.Begin()
	rent.Input(func(f *records.ExpenseForm) {
		f.Date = "2025-06-01"
		f.Amount = "-5"
		f.Description = "refund"
	})

	err := rent.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, resource.StatusCode(err))
	var httpErr *resource.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "validation_error", httpErr.Code)
	assert.Empty(t, rent.Items())
	assert.Equal(t, "-5", rent.Form().Amount)
}

func TestCommissionDatesTravelCompact(t *testing.T) {
	f := newFixture(t)
	commissions := f.expensePage(t, "commissions")
	addExpense(t, commissions, "2025-06-01", "300", "deal closed", "Ravi")

	raw := rawList(t, f, "/api/commissions")
	require.Len(t, raw, 1)
	assert.Equal(t, "20250601", raw[0]["date"])
	assert.Equal(t, "Ravi", raw[0]["recipient"])
	assert.Equal(t, "6/1/2025", commissions.Items()[0].DisplayDate())

	expo := f.expensePage(t, "expo-advertisements")
	addExpense(t, expo, "2025-07-04", "900", "booth", "")
	assert.Equal(t, "2025-07-04", rawList(t, f, "/api/expo-advertisements")[0]["date"])
}

func TestSplicePagesDoNotRefetch(t *testing.T) {
	f := newFixture(t)
	travel := f.expensePage(t, "travel")
	require.NoError(t, travel.Load(context.Background()))
	lists := f.backend.Requests.Count("GET /api/travel")

	addExpense(t, travel, "2025-06-05", "45", "taxi", "")
	require.NoError(t, travel.Remove(context.Background(), travel.Items()[0].ID))
	assert.Equal(t, lists, f.backend.Requests.Count("GET /api/travel"))

	rent := f.expensePage(t, "rent")
	addExpense(t, rent, "2025-06-01", "15000", "rent", "")
	assert.Equal(t, 1, f.backend.Requests.Count("GET /api/rent"))
}

func TestIncentivesSubmitDispatchesOnMode(t *testing.T) {
	f := newFixture(t)
	incentives := f.expensePage(t, "incentives")
	addExpense(t, incentives, "2025-06-01", "250", "target met", "Asha")
	id := incentives.Items()[0].ID

	require.NoError(t, incentives.Edit(id))
	incentives.Input(func(f *records.ExpenseForm) { f.Recipient = "Asha K" })
	require.NoError(t, incentives.Submit(context.Background()))

	items := incentives.Items()
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "Asha K", items[0].Recipient)
	assert.Equal(t, 1, f.backend.Requests.Count("PUT /api/incentives/"))
}

func TestUpdateWithoutEditFails(t *testing.T) {
	f := newFixture(t)
	err := f.expensePage(t, "rent").Update(context.Background())
	assert.ErrorIs(t, err, page.ErrNotEditing)
}

type slowBackend struct {
	arrived chan struct{}
	release chan struct{}
}

func (b *slowBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)
	b.arrived <- struct{}{}
	<-b.release
	_, _ = w.Write([]byte(`{"id":7,"date":[2025,6,1],"amount":10,"description":"late"}`))
}

func TestLateAddKeepsNewerFormAndStillSplicesList(t *testing.T) {
	backend := &slowBackend{arrived: make(chan struct{}), release: make(chan struct{})}
	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)

	rent, _ := records.LookupExpense("rent")
	client := resource.New[records.Expense](resource.Config{BaseURL: ts.URL}, rent.Path(), records.ExpenseMapper{Resource: rent})
	notify := &portaltest.Notifier{}
	pg := page.NewCRUD[records.Expense, records.ExpenseForm]("Rent", client, records.ExpenseBinding{Resource: rent}, notify, page.SyncSplice)

	pg.Begin()
	pg.Input(func(f *records.ExpenseForm) {
		f.Date = "2025-06-01"
		f.Amount = "10"
		f.Description = "late"
	})
	done := make(chan error, 1)
	go func() { done <- pg.Add(context.Background()) }()

	<-backend.arrived
	pg.Cancel()
	pg.Begin()
	pg.Input(func(f *records.ExpenseForm) { f.Description = "typed after cancel" })
	close(backend.release)

	require.NoError(t, <-done)
	items := pg.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, "typed after cancel", pg.Form().Description)
	assert.Equal(t, editsession.Creating, pg.Mode())
	assert.Equal(t, []string{"Rent added successfully"}, notify.Successes())
}

// heldTransport parks every request with the given method until release
// is closed.
type heldTransport struct {
	next    http.RoundTripper
	method  string
	arrived chan struct{}
	release chan struct{}
}

func (h *heldTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method == h.method {
		h.arrived <- struct{}{}
		<-h.release
	}
	return h.next.RoundTrip(req)
}

func TestLateUpdateAfterEditingAnotherRowRefreshesList(t *testing.T) {
	f := newFixture(t)
	seed := f.expensePage(t, "rent")
	addExpense(t, seed, "2025-06-01", "15000", "june rent", "")
	addExpense(t, seed, "2025-07-01", "15000", "july rent", "")
	first, second := seed.Items()[0].ID, seed.Items()[1].ID

	held := &heldTransport{method: http.MethodPut, arrived: make(chan struct{}), release: make(chan struct{})}
	cfg := f.backend.ClientConfig(f.portal.Session)
	held.next = cfg.HTTPClient.Transport
	cfg.HTTPClient = &http.Client{Transport: held}
	rent, _ := records.LookupExpense("rent")
	notify := &portaltest.Notifier{}
	pg := page.NewCRUD[records.Expense, records.ExpenseForm]("Rent", resource.New[records.Expense](cfg, rent.Path(), records.ExpenseMapper{Resource: rent}), records.ExpenseBinding{Resource: rent}, notify, page.SyncRefetch)
	require.NoError(t, pg.Load(context.Background()))

	require.NoError(t, pg.Edit(first))
	pg.Input(func(f *records.ExpenseForm) { f.Amount = "99999" })
	done := make(chan error, 1)
	go func() { done <- pg.Update(context.Background()) }()

	<-held.arrived
	require.NoError(t, pg.Edit(second))
	close(held.release)

	require.NoError(t, <-done)
	got, ok := pg.Get(first)
	require.True(t, ok)
	assert.Equal(t, "99999.00", got.DisplayAmount())

	assert.Equal(t, editsession.Editing, pg.Mode())
	id, editing := pg.EditingID()
	require.True(t, editing)
	assert.Equal(t, second, id)
	assert.Equal(t, "july rent", pg.Form().Description)
	assert.Equal(t, []string{"Rent updated successfully"}, notify.Successes())
}
