package finance

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

func Total(items []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

func RenderReport(w io.Writer, res Resource, items []Expense, currency string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("%s Expenses", res.Label))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", time.Now().UTC().Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	headers := []string{"Date", "Amount", "Description"}
	widths := []float64{30, 35, 115}
	if res.HasRecipient {
		headers = []string{"Date", "Amount", "Recipient", "Description"}
		widths = []float64{30, 35, 45, 70}
	}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		cells := []string{item.Date.String(), item.Amount.StringFixed(2), item.Description}
		if res.HasRecipient {
			cells = []string{item.Date.String(), item.Amount.StringFixed(2), item.Recipient, item.Description}
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s %s", Total(items).StringFixed(2), currency))

	return pdf.Output(w)
}
