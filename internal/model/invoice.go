package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-editor/internal/money"
)

// Currency is the invoice currency code
type Currency string

// Supported currencies
const (
	CurrencyRSD Currency = "RSD"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// DefaultCurrency is the currency of a freshly created invoice
const DefaultCurrency = CurrencyRSD

// ParseCurrency validates a raw currency code
func ParseCurrency(raw string) (Currency, bool) {
	switch Currency(raw) {
	case CurrencyRSD, CurrencyEUR, CurrencyUSD:
		return Currency(raw), true
	}
	return "", false
}

// DateLayout is the calendar date format used throughout (ISO, no time part)
const DateLayout = "2006-01-02"

// LineItem is one row of the invoice. Amount is derived from Quantity and
// Rate and is never edited directly.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Recalculate refreshes the derived amount: round2(quantity * rate).
// Must be called after any change to Quantity or Rate.
func (li *LineItem) Recalculate() {
	li.Amount = money.LineAmount(li.Quantity, li.Rate)
}

// NewLineItem returns the default empty line: quantity 1, rate 0, amount 0.
func NewLineItem() LineItem {
	return LineItem{
		Quantity: decimal.NewFromInt(1),
		Rate:     money.Zero,
		Amount:   money.Zero,
	}
}

// Invoice is the canonical invoice state of one editing session.
type Invoice struct {
	ID       string     `json:"id"`
	From     string     `json:"from"`
	BillTo   string     `json:"billTo"`
	Date     string     `json:"date"`
	Currency Currency   `json:"currency"`
	Items    []LineItem `json:"items"`
}

// New creates a fresh invoice: unique id, today's date, default currency,
// exactly one empty line item. The sender text is seeded from the value
// remembered by the persistence store, if any.
func New(from string) *Invoice {
	return &Invoice{
		ID:       uuid.NewString(),
		From:     from,
		Date:     time.Now().Format(DateLayout),
		Currency: DefaultCurrency,
		Items:    []LineItem{NewLineItem()},
	}
}

// GrandTotal computes round2 of the sum of all line amounts.
// It is derived on every call and never stored.
func (inv *Invoice) GrandTotal() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(inv.Items))
	for _, item := range inv.Items {
		amounts = append(amounts, item.Amount)
	}
	return money.Round2(money.Sum(amounts))
}

// IsExportable reports whether the invoice is complete enough to export:
// sender and recipient are filled in, and at least one line has a
// description and a positive amount. Whitespace-only text does not count.
func (inv *Invoice) IsExportable() bool {
	if strings.TrimSpace(inv.From) == "" || strings.TrimSpace(inv.BillTo) == "" {
		return false
	}
	for _, item := range inv.Items {
		if strings.TrimSpace(item.Description) != "" && item.Amount.GreaterThan(money.Zero) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so an export can work on a stable snapshot
// while edits continue.
func (inv *Invoice) Clone() *Invoice {
	cp := *inv
	cp.Items = make([]LineItem, len(inv.Items))
	copy(cp.Items, inv.Items)
	return &cp
}
