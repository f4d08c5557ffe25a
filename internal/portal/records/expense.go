// Package records is the client-side catalogue of portal record types and
// the wire contract of each collection they come from.
package records

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"idms/internal/portal/form"
	"idms/internal/wiredate"
)

// ExpenseResource is one finance collection and its date encoding.
type ExpenseResource struct {
	Name         string
	Label        string
	Fixed        bool
	Codec        wiredate.Codec
	HasRecipient bool
}

func (r ExpenseResource) Path() string { return "/api/" + r.Name }

// ExpenseResources lists the finance collections in dashboard order.
var ExpenseResources = []ExpenseResource{
	{Name: "rent", Label: "Rent", Fixed: true, Codec: wiredate.Array},
	{Name: "electric-bills", Label: "Electric Bills", Fixed: true, Codec: wiredate.Array},
	{Name: "internet-bills", Label: "Internet Bills", Fixed: true, Codec: wiredate.Array},
	{Name: "sim-bills", Label: "SIM Bills", Fixed: true, Codec: wiredate.Array},
	{Name: "water-bills", Label: "Water Bills", Fixed: true, Codec: wiredate.Array},
	{Name: "salaries", Label: "Salaries", Fixed: true, Codec: wiredate.Array},
	{Name: "travel", Label: "Travel", Codec: wiredate.Array},
	{Name: "expo-advertisements", Label: "Expo Advertisements", Codec: wiredate.ISO},
	{Name: "incentives", Label: "Incentives", Codec: wiredate.Array, HasRecipient: true},
	{Name: "commissions", Label: "Commissions", Codec: wiredate.Compact, HasRecipient: true},
}

func LookupExpense(name string) (ExpenseResource, bool) {
	for _, r := range ExpenseResources {
		if r.Name == name {
			return r, true
		}
	}
	return ExpenseResource{}, false
}

type Expense struct {
	ID          int64
	Date        wiredate.Date
	Amount      float64
	Description string
	Recipient   string
}

// DisplayDate is the en-US short form, e.g. 6/1/2025.
func (e Expense) DisplayDate() string { return e.Date.Display() }

// DisplayAmount always shows two decimals, e.g. 15000.00.
func (e Expense) DisplayAmount() string { return strconv.FormatFloat(e.Amount, 'f', 2, 64) }

func ExpenseKey(e Expense) int64 { return e.ID }

// ExpenseMapper converts expenses with the resource's date codec.
type ExpenseMapper struct {
	Resource ExpenseResource
}

type expenseWire struct {
	ID          int64           `json:"id,omitempty"`
	Date        json.RawMessage `json:"date"`
	Amount      json.Number     `json:"amount"`
	Description string          `json:"description"`
	Recipient   *string         `json:"recipient,omitempty"`
}

func (m ExpenseMapper) Decode(raw json.RawMessage) (Expense, error) {
	var w expenseWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Expense{}, err
	}
	date, err := m.Resource.Codec.Decode(w.Date)
	if err != nil {
		return Expense{}, fmt.Errorf("%s date: %w", m.Resource.Name, err)
	}
	var amount float64
	if w.Amount != "" {
		if amount, err = w.Amount.Float64(); err != nil {
			return Expense{}, fmt.Errorf("%s amount: %w", m.Resource.Name, err)
		}
	}
	out := Expense{ID: w.ID, Date: date, Amount: amount, Description: w.Description}
	if w.Recipient != nil {
		out.Recipient = *w.Recipient
	}
	return out, nil
}

func (m ExpenseMapper) Encode(e Expense) ([]byte, error) {
	date, err := m.Resource.Codec.Encode(e.Date)
	if err != nil {
		return nil, err
	}
	w := expenseWire{
		Date:        date,
		Amount:      json.Number(strconv.FormatFloat(e.Amount, 'f', -1, 64)),
		Description: e.Description,
	}
	if m.Resource.HasRecipient {
		recipient := e.Recipient
		w.Recipient = &recipient
	}
	return json.Marshal(w)
}

// ExpenseForm is the editable form: every field is the raw input text.
type ExpenseForm struct {
	Date        string
	Amount      string
	Description string
	Recipient   string
}

// SetDescription applies the word cap as the user types.
func (f *ExpenseForm) SetDescription(s string) {
	f.Description = form.TruncateWords(s, form.MaxDescriptionWords)
}

// ExpenseBinding ties expense records to their form for one resource.
type ExpenseBinding struct {
	Resource ExpenseResource
}

func (ExpenseBinding) Key(e Expense) int64 { return e.ID }

func (ExpenseBinding) Blank() ExpenseForm { return ExpenseForm{} }

func (ExpenseBinding) FormOf(e Expense) ExpenseForm {
	return ExpenseForm{
		Date:        e.Date.String(),
		Amount:      strconv.FormatFloat(e.Amount, 'f', -1, 64),
		Description: e.Description,
		Recipient:   e.Recipient,
	}
}

func (b ExpenseBinding) Build(f ExpenseForm) (Expense, error) {
	var v form.Validator
	v.Required("date", f.Date)
	v.Required("amount", f.Amount)
	v.Required("description", f.Description)
	if b.Resource.HasRecipient {
		v.Required("recipient", f.Recipient)
	}
	date, _ := v.Date("date", f.Date)
	amount, _ := v.Amount("amount", f.Amount)
	if err := v.Err(); err != nil {
		return Expense{}, err
	}
	out := Expense{Date: date, Amount: amount, Description: strings.TrimSpace(f.Description)}
	if b.Resource.HasRecipient {
		out.Recipient = strings.TrimSpace(f.Recipient)
	}
	return out, nil
}
