package finance

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"idms/internal/wiredate"
)

func validInput() ExpenseInput {
	return ExpenseInput{
		Date:        wiredate.New(2025, time.June, 1),
		Amount:      decimal.NewFromInt(1200),
		Description: "office power bill",
	}
}

func TestCheck(t *testing.T) {
	rent, _ := Lookup("rent")
	incentives, _ := Lookup("incentives")
	tests := []struct {
		name    string
		res     Resource
		mutate  func(*ExpenseInput)
		wantErr bool
	}{
		{name: "valid", res: rent, mutate: func(*ExpenseInput) {}},
		{name: "missing date", res: rent, mutate: func(in *ExpenseInput) { in.Date = wiredate.Date{} }, wantErr: true},
		{name: "negative amount", res: rent, mutate: func(in *ExpenseInput) { in.Amount = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "zero amount", res: rent, mutate: func(in *ExpenseInput) { in.Amount = decimal.Zero }},
		{name: "recipient required", res: incentives, mutate: func(*ExpenseInput) {}, wantErr: true},
		{name: "recipient given", res: incentives, mutate: func(in *ExpenseInput) { in.Recipient = "Ops" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := Check(tc.res, in)
			if tc.wantErr && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestServiceCRUDWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), "INR")
	rent, _ := Lookup("rent")
	water, _ := Lookup("water-bills")

	first, err := svc.Create(ctx, rent, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, rent, validInput())
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
	other, err := svc.Create(ctx, water, validInput())
	if err != nil {
		t.Fatalf("create water: %v", err)
	}
	if other.ID != 1 {
		t.Fatalf("ids are per resource, got %d", other.ID)
	}

	patch := validInput()
	patch.Description = "renegotiated rent"
	updated, err := svc.Update(ctx, rent, first.ID, patch)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != "renegotiated rent" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	items, _ := svc.List(ctx, rent)
	if len(items) != 2 || items[0].Description != "renegotiated rent" || items[1].Description != "office power bill" {
		t.Fatalf("update must touch only its record: %+v", items)
	}

	if err := svc.Delete(ctx, rent, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, rent, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := svc.Update(ctx, rent, 42, validInput()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestReportProducesPDF(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), "INR")
	commissions, _ := Lookup("commissions")
	in := validInput()
	in.Recipient = "Sales"
	if _, err := svc.Create(ctx, commissions, in); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := svc.Report(ctx, commissions, &buf); err != nil {
		t.Fatalf("report: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF output, got %q", buf.Bytes()[:min(buf.Len(), 8)])
	}
}

func TestTotal(t *testing.T) {
	items := []Expense{
		{Amount: decimal.RequireFromString("10.10")},
		{Amount: decimal.RequireFromString("0.20")},
	}
	if got := Total(items).StringFixed(2); got != "10.30" {
		t.Fatalf("expected 10.30, got %s", got)
	}
}
