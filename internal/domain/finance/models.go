package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"idms/internal/wiredate"
)

const (
	KindFixed    = "fixed"
	KindVariable = "variable"
)

// Resource describes one expense collection and its wire contract.
type Resource struct {
	Name         string
	Label        string
	Table        string
	Kind         string
	DateCodec    wiredate.Codec
	HasRecipient bool
}

type Expense struct {
	ID          int64
	Date        wiredate.Date
	Amount      decimal.Decimal
	Description string
	Recipient   string
	CreatedAt   time.Time
}

type ExpenseInput struct {
	Date        wiredate.Date
	Amount      decimal.Decimal
	Description string `validate:"required,max=1000"`
	Recipient   string `validate:"max=255"`
}
