package finance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type expenseWire struct {
	ID          int64           `json:"id"`
	Date        json.RawMessage `json:"date"`
	Amount      json.Number     `json:"amount"`
	Description string          `json:"description"`
	Recipient   *string         `json:"recipient,omitempty"`
}

type inputWire struct {
	Date        json.RawMessage `json:"date"`
	Amount      json.Number     `json:"amount"`
	Description string          `json:"description"`
	Recipient   string          `json:"recipient"`
}

// MarshalExpense writes e in res's wire shape. Amounts are JSON numbers.
func MarshalExpense(res Resource, e Expense) (json.RawMessage, error) {
	date, err := res.DateCodec.Encode(e.Date)
	if err != nil {
		return nil, err
	}
	out := expenseWire{
		ID:          e.ID,
		Date:        date,
		Amount:      json.Number(e.Amount.StringFixed(2)),
		Description: e.Description,
	}
	if res.HasRecipient {
		recipient := e.Recipient
		out.Recipient = &recipient
	}
	return json.Marshal(out)
}

func MarshalExpenses(res Resource, items []Expense) (json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := MarshalExpense(res, item)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

// UnmarshalInput reads a create/update body. Any id in the body is ignored.
func UnmarshalInput(res Resource, raw []byte) (ExpenseInput, error) {
	var in inputWire
	if err := json.Unmarshal(raw, &in); err != nil {
		return ExpenseInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	date, err := res.DateCodec.Decode(in.Date)
	if err != nil {
		return ExpenseInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	var amount decimal.Decimal
	if in.Amount != "" {
		amount, err = decimal.NewFromString(in.Amount.String())
		if err != nil {
			return ExpenseInput{}, fmt.Errorf("%w: amount: %v", ErrInvalidInput, err)
		}
	}
	out := ExpenseInput{
		Date:        date,
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
	}
	if res.HasRecipient {
		out.Recipient = strings.TrimSpace(in.Recipient)
	}
	return out, nil
}
