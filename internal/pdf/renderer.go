// AngelaMos | 2026
// renderer.go

// Package pdf renders documents and invoices to downloadable PDFs,
// applying the visual template styling used by the on-screen preview.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicery/internal/config"
	"github.com/carterperez-dev/invoicery/internal/template"
)

type Line struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

type Data struct {
	Title          string
	Number         string
	Status         string
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	ClientName     string
	ClientAddress  string
	ClientEmail    string
	IssueDate      time.Time
	DueDate        *time.Time
	Currency       string
	Lines          []Line
	Notes          string
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Style          template.Style
}

type Renderer struct {
	prefix string
}

func NewRenderer(cfg config.PDFConfig) *Renderer {
	prefix := cfg.FilenamePrefix
	if prefix == "" {
		prefix = "invoice"
	}
	return &Renderer{prefix: prefix}
}

// Filename builds the download name {prefix}_{number}_{date}.pdf with
// the number stripped down to filesystem-safe characters.
func (r *Renderer) Filename(number string, date time.Time) string {
	sanitized := sanitizeNumber(number)
	if sanitized == "" {
		sanitized = "draft"
	}
	return fmt.Sprintf(
		"%s_%s_%s.pdf",
		r.prefix,
		sanitized,
		date.Format("2006-01-02"),
	)
}

func sanitizeNumber(number string) string {
	var b strings.Builder
	for _, c := range number {
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '-':
			b.WriteRune(c)
		case c == ' ', c == '/', c == '_', c == '#':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func (r *Renderer) Render(d Data) ([]byte, error) {
	style := d.Style
	if style.FontFamily == "" {
		style = template.DefaultStyle()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)

	if style.ShowFooter {
		pdf.SetFooterFunc(func() {
			pdf.SetY(-15)
			pdf.SetFont(style.FontFamily, "I", 8)
			pdf.SetTextColor(128, 128, 128)
			pdf.CellFormat(0, 10,
				fmt.Sprintf("%s | Page %d", d.CompanyName, pdf.PageNo()),
				"", 0, "C", false, 0, "")
		})
	}

	pdf.AddPage()

	pr, pg, pb := hexToRGB(style.PrimaryColor)
	sr, sg, sb := hexToRGB(style.SecondaryColor)

	r.drawHeader(pdf, d, style, pr, pg, pb)
	r.drawParties(pdf, d, style, sr, sg, sb)
	r.drawTable(pdf, d, style, pr, pg, pb)
	r.drawTotals(pdf, d, style, pr, pg, pb)

	if d.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont(style.FontFamily, "B", 9)
		pdf.SetTextColor(sr, sg, sb)
		pdf.Cell(0, 5, "Notes")
		pdf.Ln(5)
		pdf.SetFont(style.FontFamily, "", 9)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(0, 4.5, d.Notes, "", "L", false)
	}

	if style.ShowWatermark {
		drawWatermark(pdf, d, style)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) drawHeader(
	pdf *gofpdf.Fpdf,
	d Data,
	style template.Style,
	pr, pg, pb int,
) {
	align := alignCode(style.HeaderAlignment)

	title := d.Title
	if title == "" {
		title = "INVOICE"
	}

	pdf.SetFont(style.FontFamily, "B", 24)
	pdf.SetTextColor(pr, pg, pb)
	pdf.CellFormat(0, 12, title, "", 1, align, false, 0, "")

	pdf.SetFont(style.FontFamily, "", 10)
	pdf.SetTextColor(60, 60, 60)

	if d.Number != "" {
		pdf.CellFormat(0, 5, "No. "+d.Number, "", 1, align, false, 0, "")
	}

	dateLine := "Issued " + d.IssueDate.Format("Jan 2, 2006")
	if d.DueDate != nil {
		dateLine += "  |  Due " + d.DueDate.Format("Jan 2, 2006")
	}
	pdf.CellFormat(0, 5, dateLine, "", 1, align, false, 0, "")

	if d.Status != "" {
		pdf.SetFont(style.FontFamily, "B", 10)
		pdf.CellFormat(0, 6, d.Status, "", 1, align, false, 0, "")
	}

	// Rule under the header except for the minimal layout.
	if style.Layout != template.LayoutMinimal {
		pdf.Ln(2)
		pdf.SetDrawColor(pr, pg, pb)
		pdf.SetLineWidth(0.6)
		x, y := pdf.GetX(), pdf.GetY()
		pdf.Line(x, y, 195, y)
	}
	pdf.Ln(6)
}

func (r *Renderer) drawParties(
	pdf *gofpdf.Fpdf,
	d Data,
	style template.Style,
	sr, sg, sb int,
) {
	startY := pdf.GetY()

	pdf.SetFont(style.FontFamily, "B", 9)
	pdf.SetTextColor(sr, sg, sb)
	pdf.Cell(90, 5, "FROM")
	pdf.SetXY(105, startY)
	pdf.Cell(90, 5, "BILL TO")
	pdf.Ln(5)

	pdf.SetFont(style.FontFamily, "", 10)
	pdf.SetTextColor(30, 30, 30)

	fromLines := partyLines(d.CompanyName, d.CompanyAddress, d.CompanyEmail)
	toLines := partyLines(d.ClientName, d.ClientAddress, d.ClientEmail)

	y := pdf.GetY()
	for i := 0; i < len(fromLines) || i < len(toLines); i++ {
		if i < len(fromLines) {
			pdf.SetXY(15, y)
			pdf.Cell(90, 5, fromLines[i])
		}
		if i < len(toLines) {
			pdf.SetXY(105, y)
			pdf.Cell(90, 5, toLines[i])
		}
		y += 5
	}
	pdf.SetY(y + 6)
}

func partyLines(name, address, email string) []string {
	lines := []string{name}
	for _, l := range strings.Split(address, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if email != "" {
		lines = append(lines, email)
	}
	return lines
}

func (r *Renderer) drawTable(
	pdf *gofpdf.Fpdf,
	d Data,
	style template.Style,
	pr, pg, pb int,
) {
	const (
		descW   = 95
		qtyW    = 20
		priceW  = 30
		amountW = 35
	)

	filled := style.Layout == template.LayoutModern
	border := "1"
	if style.Layout == template.LayoutMinimal {
		border = "B"
	}

	pdf.SetFont(style.FontFamily, "B", 9)
	if filled {
		pdf.SetFillColor(pr, pg, pb)
		pdf.SetTextColor(255, 255, 255)
	} else {
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(pr, pg, pb)
	}
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)

	pdf.CellFormat(descW, 8, "Description", border, 0, "L", true, 0, "")
	pdf.CellFormat(qtyW, 8, "Qty", border, 0, "R", true, 0, "")
	pdf.CellFormat(priceW, 8, "Unit Price", border, 0, "R", true, 0, "")
	pdf.CellFormat(amountW, 8, "Amount", border, 1, "R", true, 0, "")

	pdf.SetFont(style.FontFamily, "", 9)
	pdf.SetTextColor(30, 30, 30)

	for _, line := range d.Lines {
		pdf.CellFormat(descW, 7, line.Description, border, 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, 7,
			line.Quantity.String(), border, 0, "R", false, 0, "")
		pdf.CellFormat(priceW, 7,
			formatAmount(d.Currency, line.UnitPrice), border, 0, "R", false, 0, "")
		pdf.CellFormat(amountW, 7,
			formatAmount(d.Currency, line.Amount.Round(2)), border, 1, "R", false, 0, "")
	}
}

func (r *Renderer) drawTotals(
	pdf *gofpdf.Fpdf,
	d Data,
	style template.Style,
	pr, pg, pb int,
) {
	labelW, valueW := 40.0, 35.0
	x := 195 - labelW - valueW

	row := func(label, value string, bold bool) {
		font := ""
		if bold {
			font = "B"
		}
		pdf.SetFont(style.FontFamily, font, 10)
		pdf.SetX(x)
		pdf.CellFormat(labelW, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 7, value, "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetTextColor(60, 60, 60)
	row("Subtotal", formatAmount(d.Currency, d.Subtotal), false)

	if d.Discount.IsPositive() {
		row("Discount", "-"+formatAmount(d.Currency, d.Discount), false)
	}

	row(
		fmt.Sprintf("Tax (%s%%)", d.TaxRate.String()),
		formatAmount(d.Currency, d.TaxAmount),
		false,
	)

	pdf.SetTextColor(pr, pg, pb)
	row("Total", formatAmount(d.Currency, d.Total), true)
}

func drawWatermark(pdf *gofpdf.Fpdf, d Data, style template.Style) {
	text := d.Status
	if text == "" {
		text = "DRAFT"
	}

	pdf.SetFont(style.FontFamily, "B", 60)
	pdf.SetTextColor(235, 235, 235)
	pdf.TransformBegin()
	pdf.TransformRotate(45, 105, 150)
	pdf.SetXY(45, 140)
	pdf.CellFormat(120, 20, text, "", 0, "C", false, 0, "")
	pdf.TransformEnd()
}

func formatAmount(currency string, amount decimal.Decimal) string {
	if currency == "" {
		currency = "USD"
	}
	return currency + " " + amount.StringFixed(2)
}

func alignCode(alignment string) string {
	switch alignment {
	case template.AlignCenter:
		return "C"
	case template.AlignRight:
		return "R"
	default:
		return "L"
	}
}

func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{
			hex[0], hex[0], hex[1], hex[1], hex[2], hex[2],
		})
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}

	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}
