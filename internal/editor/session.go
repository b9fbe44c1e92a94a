// Package editor applies field edits to an invoice. A Session owns exactly
// one invoice; every edit is atomic and total, and always leaves the
// invoice in a valid state.
package editor

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rezonia/invoice-editor/internal/model"
	"github.com/rezonia/invoice-editor/internal/money"
	"github.com/rezonia/invoice-editor/internal/store"
)

// Header field names accepted by EditHeader
const (
	FieldFrom     = "from"
	FieldBillTo   = "billTo"
	FieldDate     = "date"
	FieldCurrency = "currency"
)

// Item field names accepted by EditItem
const (
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldRate        = "rate"
)

// Session is the single owner of one invoice under edit. Edits are applied
// one at a time; the embedded lock serializes callers from a concurrent
// boundary such as the HTTP server.
type Session struct {
	mu      sync.Mutex
	invoice *model.Invoice
	store   store.Store
	log     zerolog.Logger
}

// NewSession creates a fresh invoice, seeding the sender text from the
// value the store remembers from a previous session. A store read failure
// simply leaves the sender empty.
func NewSession(st store.Store, log zerolog.Logger) *Session {
	from := ""
	if st != nil {
		if saved, ok := st.Get(store.KeyFrom); ok {
			from = saved
		}
	}
	return &Session{
		invoice: model.New(from),
		store:   st,
		log:     log,
	}
}

// Invoice returns a snapshot copy of the current invoice state.
func (s *Session) Invoice() *model.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoice.Clone()
}

// EditHeader replaces one header field verbatim. A change of the sender
// text to a non-empty value is also written to the store, fire-and-forget,
// so it survives to the next session.
func (s *Session) EditHeader(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case FieldFrom:
		s.invoice.From = value
		s.rememberFrom(value)
	case FieldBillTo:
		s.invoice.BillTo = value
	case FieldDate:
		s.invoice.Date = value
	case FieldCurrency:
		currency, ok := model.ParseCurrency(value)
		if !ok {
			return model.NewEditError(field, fmt.Sprintf("unsupported currency %q", value), nil)
		}
		s.invoice.Currency = currency
	default:
		return model.NewEditError(field, "unknown header field", nil)
	}
	return nil
}

// EditItem applies one edit to the line item at index. Numeric fields go
// through the zero-fallback parse and refresh the line's derived amount;
// the description is stored verbatim.
func (s *Session) EditItem(index int, field, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.invoice.Items) {
		return model.NewEditError(field, fmt.Sprintf("item index %d out of range", index), nil)
	}
	item := &s.invoice.Items[index]

	switch field {
	case FieldDescription:
		item.Description = raw
	case FieldQuantity:
		item.Quantity = money.ParseOrZero(raw)
		item.Recalculate()
	case FieldRate:
		item.Rate = money.ParseOrZero(raw)
		item.Recalculate()
	default:
		return model.NewEditError(field, "unknown item field", nil)
	}
	return nil
}

// AddItem appends a new empty line item.
func (s *Session) AddItem() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoice.Items = append(s.invoice.Items, model.NewLineItem())
}

// RemoveItem removes the line item at index. The last remaining item can
// never be removed; in that case RemoveItem is a no-op for any index.
func (s *Session) RemoveItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.invoice.Items) <= 1 {
		return nil
	}
	if index < 0 || index >= len(s.invoice.Items) {
		return model.NewEditError("items", fmt.Sprintf("item index %d out of range", index), nil)
	}
	s.invoice.Items = append(s.invoice.Items[:index], s.invoice.Items[index+1:]...)
	return nil
}

// rememberFrom persists the sender text, best-effort. Caller holds the lock.
func (s *Session) rememberFrom(value string) {
	if s.store == nil || strings.TrimSpace(value) == "" {
		return
	}
	if err := s.store.Set(store.KeyFrom, value); err != nil {
		s.log.Warn().Err(err).Msg("could not remember sender text")
	}
}
