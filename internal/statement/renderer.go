package statement

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	interfaces "github.com/sheikh-saqib/ledger-statement-mailer/internal/interfaces"
	"github.com/sheikh-saqib/ledger-statement-mailer/internal/models"
)

// Page geometry in points.
const (
	margin    = 50.0
	rowHeight = 14.0
	rowGap    = 5.0
	fontName  = "Helvetica"
)

var (
	columnWidths  = [...]float64{90, 90, 160, 80, 80, 90}
	columnHeaders = [...]string{"Date", "Reference", "Particulars", "Debit", "Credit", "Balance"}
)

// ColumnX is the left edge of column i: the margin plus the widths of the
// columns before it.
func ColumnX(i int) float64 {
	x := margin
	for _, w := range columnWidths[:i] {
		x += w
	}
	return x
}

// numeric columns (Debit, Credit, Balance) are right aligned.
func columnAlign(i int) string {
	if i >= 3 {
		return "R"
	}
	return "L"
}

// PDFRenderer draws ledger statements with the core PDF fonts.
type PDFRenderer struct {
	format *Formatter
}

func NewPDFRenderer(format *Formatter) *PDFRenderer {
	return &PDFRenderer{format: format}
}

// Render returns the complete PDF. Nothing is returned on error.
func (r *PDFRenderer) Render(party models.Party, entries []models.LedgerEntry, fy models.FinancialYear) ([]byte, error) {
	pdf := r.build(party, entries, fy)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render statement for %s: %w", party.ID, err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) build(party models.Party, entries []models.LedgerEntry, fy models.FinancialYear) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetTitle("Ledger Statement - "+party.Name, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	// The core fonts are cp1252 and have no rupee sign.
	text := func(s string) string {
		return tr(strings.ReplaceAll(s, "₹", "Rs."))
	}
	line := func(size, height float64, s string) {
		pdf.SetFont(fontName, "", size)
		pdf.MultiCell(0, height, text(s), "", "L", false)
	}

	line(18, 22, party.Name)
	pdf.Ln(9)
	line(12, 15, party.Address)
	if party.Phone != "" {
		line(12, 15, "Phone: "+party.Phone)
	}
	pdf.Ln(15)

	line(14, 17, "Ledger Statement")
	line(11, 14, "Financial Year: "+fy.Label)
	line(11, 14, fmt.Sprintf("Period: %s - %s", r.format.Date(fy.Start), r.format.Date(fy.End)))
	pdf.Ln(14)

	_, pageHeight := pdf.GetPageSize()
	y := r.header(pdf, pdf.GetY()+10)
	for _, e := range entries {
		if y+rowHeight > pageHeight-margin {
			pdf.AddPage()
			y = r.header(pdf, margin)
		}
		for i, cell := range r.cells(e) {
			pdf.SetXY(ColumnX(i), y)
			pdf.CellFormat(columnWidths[i], rowHeight, text(cell), "", 0, columnAlign(i), false, 0, "")
		}
		y += rowHeight + rowGap
	}
	return pdf
}

// header draws the bold column titles at y and leaves the regular font
// selected. It returns the y of the first row below it.
func (r *PDFRenderer) header(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont(fontName, "B", 11)
	for i, h := range columnHeaders {
		pdf.SetXY(ColumnX(i), y)
		pdf.CellFormat(columnWidths[i], rowHeight, h, "", 0, columnAlign(i), false, 0, "")
	}
	pdf.SetFont(fontName, "", 11)
	return y + rowHeight + rowGap
}

func (r *PDFRenderer) cells(e models.LedgerEntry) [len(columnWidths)]string {
	return [len(columnWidths)]string{
		r.format.Date(e.Date),
		e.Reference,
		e.Particulars,
		r.format.Amount(e.Debit),
		r.format.Amount(e.Credit),
		r.format.Money(e.Balance),
	}
}

var _ interfaces.StatementRenderer = (*PDFRenderer)(nil)
