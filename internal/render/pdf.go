package render

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/rezonia/invoice-editor/internal/model"
	"github.com/rezonia/invoice-editor/internal/money"
)

// A4 portrait layout, in mm. Mirrors the preview column proportions.
const (
	pageLeft   = 20.0
	pageRight  = 190.0
	tableWidth = pageRight - pageLeft

	colDescWidth   = 70.0
	colQtyX        = 100.0
	colRateX       = 120.0
	colAmountX     = 160.0
	lineHeight     = 5.0
	rowPadding     = 5.0
	addressWidth   = 80.0
	footerY        = 280.0
	titleY         = 20.0
	metaY          = 40.0
	partiesY       = 60.0
	tableStartY    = 90.0
	tableHeaderH   = 8.0
	totalBoxWidth  = 70.0
	totalBoxHeight = 10.0
)

// Filename returns the deterministic artifact name for an invoice.
func Filename(inv *model.Invoice) string {
	return "invoice-" + inv.ID + ".pdf"
}

// ExportPDF renders the invoice as a single-file PDF document. Generation
// is all-or-nothing: the produced bytes are validated before being
// returned, and any failure yields an ExportError with no artifact.
func ExportPDF(inv *model.Invoice) ([]byte, error) {
	currency := string(inv.Currency)

	pdf := gofpdf.New("P", "mm", "A4", "")
	// cp1250 covers the Serbian Latin letters in the labels
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(44, 62, 80)
	pdf.SetXY(pageLeft, titleY-5)
	pdf.CellFormat(tableWidth, 10, tr(LabelTitle), "", 0, "C", false, 0, "")

	// Invoice number and date
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageLeft, metaY, tr(LabelInvoiceID+": "+inv.ID))
	pdf.Text(pageLeft, metaY+5, tr(LabelDate+": "+inv.Date))

	// Sender and recipient blocks, long text wrapped to the column width
	writeAddressBlock(pdf, tr, pageLeft, partiesY, LabelFrom+":", inv.From)
	writeAddressBlock(pdf, tr, 120, partiesY, LabelBillTo+":", inv.BillTo)

	// Table header
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Rect(pageLeft, tableStartY, tableWidth, tableHeaderH, "F")
	pdf.Text(pageLeft+5, tableStartY+5.5, tr(LabelDescription))
	pdf.Text(colQtyX, tableStartY+5.5, tr(LabelQuantity))
	pdf.Text(colRateX, tableStartY+5.5, tr(LabelRate))
	pdf.Text(colAmountX, tableStartY+5.5, tr(LabelAmount))

	// Item rows with alternating banding
	y := tableStartY + 15
	pdf.SetTextColor(44, 62, 80)
	for i, item := range inv.Items {
		descLines := pdf.SplitText(tr(item.Description), colDescWidth)
		if len(descLines) == 0 {
			descLines = []string{""}
		}
		rowHeight := float64(len(descLines))*lineHeight + rowPadding

		if i%2 == 0 {
			pdf.SetFillColor(245, 247, 250)
			pdf.Rect(pageLeft, y-5, tableWidth, rowHeight, "F")
		}

		for j, line := range descLines {
			pdf.Text(pageLeft+5, y+float64(j)*lineHeight, line)
		}
		pdf.Text(colQtyX, y, money.FormatQuantity(item.Quantity))
		pdf.Text(colRateX, y, tr(money.FormatWithCurrency(item.Rate, currency)))
		pdf.Text(colAmountX, y, tr(money.FormatWithCurrency(item.Amount, currency)))

		y += rowHeight + rowPadding
	}

	// Highlighted grand total
	y += 10
	pdf.SetFillColor(52, 73, 94)
	pdf.Rect(colRateX, y-5, totalBoxWidth, totalBoxHeight, "F")
	pdf.SetTextColor(255, 255, 255)
	total := LabelTotal + ": " + money.FormatWithCurrency(inv.GrandTotal(), currency)
	pdf.SetXY(colRateX, y-5)
	pdf.CellFormat(totalBoxWidth-5, totalBoxHeight, tr(total), "", 0, "R", false, 0, "")

	// Footer
	pdf.SetTextColor(128, 128, 128)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(pageLeft, footerY)
	pdf.CellFormat(tableWidth, 5, tr(LabelFooter), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, model.NewExportError("generate", "rendering the document failed", err)
	}

	if err := validatePDF(buf.Bytes()); err != nil {
		return nil, model.NewExportError("validate", "generated document is not a valid PDF", err)
	}
	return buf.Bytes(), nil
}

func writeAddressBlock(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, label, text string) {
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(52, 73, 94)
	pdf.Text(x, y, tr(label))
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(44, 62, 80)
	pdf.SetXY(x, y+1)
	pdf.MultiCell(addressWidth, lineHeight, tr(text), "", "L", false)
}

// validatePDF checks the finished artifact with pdfcpu so a broken
// document is never handed out.
func validatePDF(data []byte) error {
	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed
	return api.Validate(bytes.NewReader(data), conf)
}
