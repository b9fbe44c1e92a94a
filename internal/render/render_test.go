package render_test

import (
	"bytes"
	"compress/zlib"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-editor/internal/model"
	"github.com/rezonia/invoice-editor/internal/money"
	"github.com/rezonia/invoice-editor/internal/render"
)

func sampleInvoice() *model.Invoice {
	inv := model.New("ACME d.o.o.\nKralja Petra 1\nBelgrade")
	inv.BillTo = "Client Ltd\nLondon"
	inv.Date = "2026-08-29"
	inv.Items = []model.LineItem{
		{Description: "Consulting", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(50)},
	}
	inv.Items[0].Recalculate()
	return inv
}

func TestPreview(t *testing.T) {
	inv := sampleInvoice()

	view := render.Preview(inv)

	assert.Equal(t, inv.ID, view.ID)
	assert.Equal(t, "2026-08-29", view.Date)
	assert.Equal(t, inv.From, view.From)
	assert.Equal(t, inv.BillTo, view.BillTo)

	require.Len(t, view.Rows, 1)
	row := view.Rows[0]
	assert.Equal(t, "Consulting", row.Description)
	assert.Equal(t, "10", row.Quantity)
	assert.Equal(t, "50.00 RSD", row.Rate)
	assert.Equal(t, "500.00 RSD", row.Amount)

	assert.Equal(t, "500.00 RSD", view.Total)
}

func TestPreview_TotalMatchesSharedFormatting(t *testing.T) {
	inv := sampleInvoice()

	view := render.Preview(inv)

	// The preview total is exactly the shared formatting of the grand
	// total; the PDF export builds its total string the same way.
	want := money.FormatWithCurrency(inv.GrandTotal(), string(inv.Currency))
	assert.Equal(t, want, view.Total)
}

func TestPreview_CurrencyChangesOnlySuffix(t *testing.T) {
	inv := sampleInvoice()
	rsd := render.Preview(inv)

	inv.Currency = model.CurrencyEUR
	eur := render.Preview(inv)

	assert.Equal(t, strings.TrimSuffix(rsd.Total, " RSD"), strings.TrimSuffix(eur.Total, " EUR"))
	assert.Equal(t,
		strings.TrimSuffix(rsd.Rows[0].Amount, " RSD"),
		strings.TrimSuffix(eur.Rows[0].Amount, " EUR"))
	assert.Equal(t, rsd.Rows[0].Quantity, eur.Rows[0].Quantity)
}

func TestPreview_RowOrder(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = append(inv.Items, model.LineItem{Description: "Hosting", Quantity: decimal.NewFromInt(1)})

	view := render.Preview(inv)

	require.Len(t, view.Rows, 2)
	assert.Equal(t, "Consulting", view.Rows[0].Description)
	assert.Equal(t, "Hosting", view.Rows[1].Description)
}

func TestView_Text(t *testing.T) {
	text := render.Preview(sampleInvoice()).Text()

	assert.Contains(t, text, render.LabelTitle)
	assert.Contains(t, text, "Consulting")
	assert.Contains(t, text, "500.00 RSD")
	assert.Contains(t, text, render.LabelTotal+": 500.00 RSD")
}

func TestFilename(t *testing.T) {
	inv := sampleInvoice()
	assert.Equal(t, "invoice-"+inv.ID+".pdf", render.Filename(inv))
}

func TestExportPDF(t *testing.T) {
	data, err := render.ExportPDF(sampleInvoice())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "artifact must be a PDF document")
	assert.Greater(t, len(data), 500)
}

func TestExportPDF_WrapsLongDescriptions(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = append(inv.Items, model.LineItem{
		Description: strings.Repeat("a very long description that has to wrap ", 6),
		Quantity:    decimal.NewFromInt(2),
		Rate:        decimal.RequireFromString("19.99"),
	})
	inv.Items[1].Recalculate()

	data, err := render.ExportPDF(inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

// pdfText returns the concatenated content streams of a PDF document,
// inflating the zlib-compressed ones, so tests can look at the text
// operators the renderer emitted.
func pdfText(t *testing.T, data []byte) string {
	t.Helper()

	var out bytes.Buffer
	rest := data
	for {
		i := bytes.Index(rest, []byte("stream"))
		if i < 0 {
			break
		}
		rest = rest[i+len("stream"):]
		rest = bytes.TrimPrefix(rest, []byte("\r"))
		rest = bytes.TrimPrefix(rest, []byte("\n"))

		j := bytes.Index(rest, []byte("endstream"))
		if j < 0 {
			break
		}
		raw := rest[:j]
		if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if inflated, err := io.ReadAll(zr); err == nil {
				out.Write(inflated)
			}
			zr.Close()
		} else {
			out.Write(raw)
		}
		rest = rest[j+len("endstream"):]
	}
	return out.String()
}

func TestExportPDF_MatchesPreviewStrings(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = append(inv.Items, model.LineItem{
		Description: "Hosting",
		Quantity:    decimal.NewFromInt(3),
		Rate:        decimal.RequireFromString("0.1"),
	})
	inv.Items[1].Recalculate()
	view := render.Preview(inv)

	data, err := render.ExportPDF(inv)
	require.NoError(t, err)
	text := pdfText(t, data)

	// The document must carry exactly the strings the preview shows:
	// same rounding, same currency suffix.
	assert.Contains(t, text, render.LabelTotal+": "+view.Total)
	for _, row := range view.Rows {
		assert.Contains(t, text, row.Description)
		assert.Contains(t, text, row.Quantity)
		assert.Contains(t, text, row.Rate)
		assert.Contains(t, text, row.Amount)
	}
}

func TestExportPDF_KeepsLabelDiacritics(t *testing.T) {
	data, err := render.ExportPDF(sampleInvoice())
	require.NoError(t, err)

	// The quantity column header is written in cp1250, where č is 0xe8
	assert.Contains(t, pdfText(t, data), "Koli\xe8ina")
}

func TestExportPDF_EmptyFieldsStillRender(t *testing.T) {
	// The export endpoint gates on IsExportable, but the renderer itself
	// must not choke on a bare invoice.
	data, err := render.ExportPDF(model.New(""))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
