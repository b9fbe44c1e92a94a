// Package invoicelib provides a public API for building and rendering
// invoices.
//
// This package exposes the core types for creating an invoice, applying
// field edits, and producing the preview and PDF projections.
//
// Example usage:
//
//	sess := invoicelib.NewSession(invoicelib.NewMemoryStore(), zerolog.Nop())
//	_ = sess.EditHeader(invoicelib.FieldFrom, "ACME d.o.o.\nBelgrade")
//	_ = sess.EditItem(0, invoicelib.FieldDescription, "Consulting")
//	_ = sess.EditItem(0, invoicelib.FieldRate, "50")
//	pdf, err := invoicelib.ExportPDF(sess.Invoice())
//	if err != nil {
//	    log.Fatal(err)
//	}
package invoicelib

import (
	"github.com/rezonia/invoice-editor/internal/editor"
	"github.com/rezonia/invoice-editor/internal/model"
	"github.com/rezonia/invoice-editor/internal/render"
	"github.com/rezonia/invoice-editor/internal/store"
)

// Re-export core types for public API
type (
	Invoice  = model.Invoice
	LineItem = model.LineItem
	Currency = model.Currency
	Session  = editor.Session
	Store    = store.Store
	View     = render.View
	Row      = render.Row
)

// Re-export currencies
const (
	CurrencyRSD = model.CurrencyRSD
	CurrencyEUR = model.CurrencyEUR
	CurrencyUSD = model.CurrencyUSD
)

// Re-export edit field names
const (
	FieldFrom        = editor.FieldFrom
	FieldBillTo      = editor.FieldBillTo
	FieldDate        = editor.FieldDate
	FieldCurrency    = editor.FieldCurrency
	FieldDescription = editor.FieldDescription
	FieldQuantity    = editor.FieldQuantity
	FieldRate        = editor.FieldRate
)

// Re-export error types
type (
	EditError   = model.EditError
	ExportError = model.ExportError
)

// KeyFrom is the store key under which the sender text is remembered
const KeyFrom = store.KeyFrom

// Re-export constructors and projections
var (
	NewInvoice     = model.New
	NewSession     = editor.NewSession
	NewMemoryStore = store.NewMemory
	NewFileStore   = store.NewFile
	Preview        = render.Preview
	ExportPDF      = render.ExportPDF
	Filename       = render.Filename
)
