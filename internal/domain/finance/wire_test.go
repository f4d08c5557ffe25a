package finance

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"idms/internal/wiredate"
)

func mustResource(t *testing.T, name string) Resource {
	t.Helper()
	res, ok := Lookup(name)
	if !ok {
		t.Fatalf("resource %s not registered", name)
	}
	return res
}

func TestMarshalExpenseKeepsPerResourceDateShape(t *testing.T) {
	e := Expense{
		ID:          1,
		Date:        wiredate.New(2025, time.June, 1),
		Amount:      decimal.NewFromInt(15000),
		Description: "monthly office rent",
		Recipient:   "North team",
	}
	tests := []struct {
		resource string
		want     string
	}{
		{"rent", `{"id":1,"date":[2025,6,1],"amount":15000.00,"description":"monthly office rent"}`},
		{"commissions", `{"id":1,"date":"20250601","amount":15000.00,"description":"monthly office rent","recipient":"North team"}`},
		{"expo-advertisements", `{"id":1,"date":"2025-06-01","amount":15000.00,"description":"monthly office rent"}`},
		{"incentives", `{"id":1,"date":[2025,6,1],"amount":15000.00,"description":"monthly office rent","recipient":"North team"}`},
	}
	for _, tc := range tests {
		t.Run(tc.resource, func(t *testing.T) {
			raw, err := MarshalExpense(mustResource(t, tc.resource), e)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(raw) != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, raw)
			}
		})
	}
}

func TestUnmarshalInput(t *testing.T) {
	res := mustResource(t, "commissions")
	in, err := UnmarshalInput(res, []byte(`{"id":99,"date":"20250315","amount":1250.5,"recipient":" Sales ","description":"Q1 deal"}`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if in.Date != wiredate.New(2025, time.March, 15) {
		t.Fatalf("unexpected date %v", in.Date)
	}
	if !in.Amount.Equal(decimal.RequireFromString("1250.5")) {
		t.Fatalf("unexpected amount %s", in.Amount)
	}
	if in.Recipient != "Sales" {
		t.Fatalf("expected trimmed recipient, got %q", in.Recipient)
	}

	rent := mustResource(t, "rent")
	in, err = UnmarshalInput(rent, []byte(`{"date":[2025,6,1],"amount":10,"description":"x","recipient":"ignored"}`))
	if err != nil {
		t.Fatalf("unmarshal rent: %v", err)
	}
	if in.Recipient != "" {
		t.Fatalf("rent must not carry a recipient, got %q", in.Recipient)
	}

	if _, err := UnmarshalInput(rent, []byte(`{"date":"2025-06-01","amount":10}`)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for string date on array resource, got %v", err)
	}
}

func TestMarshalExpensesEmptyIsArray(t *testing.T) {
	raw, err := MarshalExpenses(mustResource(t, "rent"), nil)
	if err != nil {
		t.Fatal(err)
	}
	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil || string(raw) != "[]" {
		t.Fatalf("expected empty array, got %s (%v)", raw, err)
	}
}
