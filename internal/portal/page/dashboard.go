package page

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"idms/internal/portal/records"
	"idms/internal/portal/resource"
)

const dashboardName = "finance-dashboard"

// MonthlyBudget is the fixed budget savings are measured against.
const MonthlyBudget = 25000.0

// Summary totals every finance collection.
type Summary struct {
	ByResource map[string]float64
	Fixed      float64
	Variable   float64
	Total      float64
	Budget     float64
	Savings    float64
}

// Dashboard loads all finance collections at once and totals them.
type Dashboard struct {
	clients map[string]*resource.Client[records.Expense]
	notify  Notifier

	mu    sync.RWMutex
	items map[string][]records.Expense
}

// NewDashboard needs a client for every entry of records.ExpenseResources.
func NewDashboard(clients map[string]*resource.Client[records.Expense], notify Notifier) *Dashboard {
	return &Dashboard{clients: clients, notify: notify, items: map[string][]records.Expense{}}
}

func (d *Dashboard) Load(ctx context.Context) error {
	results := make([][]records.Expense, len(records.ExpenseResources))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range records.ExpenseResources {
		client, ok := d.clients[r.Name]
		if !ok {
			continue
		}
		i := i
		g.Go(func() error {
			items, err := client.List(gctx)
			results[i] = items
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return failure(d.notify, dashboardName, "load", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, r := range records.ExpenseResources {
		d.items[r.Name] = results[i]
	}
	return nil
}

// Items returns the loaded records of one collection.
func (d *Dashboard) Items(name string) []records.Expense {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]records.Expense(nil), d.items[name]...)
}

func (d *Dashboard) Summary() Summary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s := Summary{ByResource: make(map[string]float64, len(records.ExpenseResources)), Budget: MonthlyBudget}
	for _, r := range records.ExpenseResources {
		var sum float64
		for _, e := range d.items[r.Name] {
			sum += e.Amount
		}
		s.ByResource[r.Name] = sum
		if r.Fixed {
			s.Fixed += sum
		} else {
			s.Variable += sum
		}
	}
	s.Total = s.Fixed + s.Variable
	s.Savings = s.Budget - s.Total
	return s
}
