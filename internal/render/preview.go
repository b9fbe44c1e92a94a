// Package render maps an invoice to its two output forms: the on-screen
// preview and the exportable PDF document. Both go through the shared
// formatting rules in internal/money, so they always show the same digits.
package render

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/rezonia/invoice-editor/internal/model"
	"github.com/rezonia/invoice-editor/internal/money"
)

// Display labels, shared by preview and export.
const (
	LabelTitle       = "FAKTURA"
	LabelInvoiceID   = "Broj fakture"
	LabelDate        = "Datum"
	LabelFrom        = "Od"
	LabelBillTo      = "Primalac"
	LabelDescription = "Opis"
	LabelQuantity    = "Količina"
	LabelRate        = "Cena"
	LabelAmount      = "Iznos"
	LabelTotal       = "Ukupno"
	LabelFooter      = "Thank you for your business!"
)

// Row is one rendered line item. Rate and Amount carry the currency suffix.
type Row struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// View is the structured preview of an invoice, with every number already
// formatted for display.
type View struct {
	Title  string `json:"title"`
	ID     string `json:"id"`
	Date   string `json:"date"`
	From   string `json:"from"`
	BillTo string `json:"billTo"`
	Rows   []Row  `json:"rows"`
	Total  string `json:"total"`
	Footer string `json:"footer"`
}

// Preview projects an invoice into its display view.
func Preview(inv *model.Invoice) View {
	currency := string(inv.Currency)

	rows := make([]Row, 0, len(inv.Items))
	for _, item := range inv.Items {
		rows = append(rows, Row{
			Description: item.Description,
			Quantity:    money.FormatQuantity(item.Quantity),
			Rate:        money.FormatWithCurrency(item.Rate, currency),
			Amount:      money.FormatWithCurrency(item.Amount, currency),
		})
	}

	return View{
		Title:  LabelTitle,
		ID:     inv.ID,
		Date:   inv.Date,
		From:   inv.From,
		BillTo: inv.BillTo,
		Rows:   rows,
		Total:  money.FormatWithCurrency(inv.GrandTotal(), currency),
		Footer: LabelFooter,
	}
}

// Text renders the view as plain text, for the CLI preview command.
func (v View) Text() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n\n", v.Title)
	fmt.Fprintf(&buf, "%s #: %s\n", LabelInvoiceID, v.ID)
	fmt.Fprintf(&buf, "%s: %s\n\n", LabelDate, v.Date)
	fmt.Fprintf(&buf, "%s:\n%s\n\n", LabelFrom, v.From)
	fmt.Fprintf(&buf, "%s:\n%s\n\n", LabelBillTo, v.BillTo)

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", LabelDescription, LabelQuantity, LabelRate, LabelAmount)
	for _, row := range v.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Description, row.Quantity, row.Rate, row.Amount)
	}
	w.Flush()

	fmt.Fprintf(&buf, "\n%s: %s\n", LabelTotal, v.Total)
	return buf.String()
}
