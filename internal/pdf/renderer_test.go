// AngelaMos | 2026
// renderer_test.go

package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/invoicery/internal/config"
	"github.com/carterperez-dev/invoicery/internal/template"
)

func testRenderer() *Renderer {
	return NewRenderer(config.PDFConfig{FilenamePrefix: "invoice"})
}

func TestFilenameSanitizesNumber(t *testing.T) {
	r := testRenderer()
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		number string
		want   string
	}{
		{"INV-2026-001", "invoice_INV-2026-001_2026-03-14.pdf"},
		{"INV #42/a", "invoice_INV--42-a_2026-03-14.pdf"},
		{"../../etc", "invoice_etc_2026-03-14.pdf"},
		{"", "invoice_draft_2026-03-14.pdf"},
		{"!!!", "invoice_draft_2026-03-14.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Filename(tt.number, date))
	}
}

func TestRenderProducesPDFBytes(t *testing.T) {
	r := testRenderer()
	due := time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)

	data := Data{
		Title:          "INVOICE",
		Number:         "INV-001",
		CompanyName:    "Acme Corp",
		CompanyAddress: "1 Main St\nSpringfield",
		CompanyEmail:   "billing@acme.test",
		ClientName:     "Globex",
		ClientAddress:  "2 Side Ave",
		ClientEmail:    "ap@globex.test",
		IssueDate:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		DueDate:        &due,
		Currency:       "USD",
		Lines: []Line{
			{
				Description: "Consulting",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromInt(10),
				Amount:      decimal.NewFromInt(20),
			},
		},
		Notes:     "Net 30.",
		Subtotal:  decimal.NewFromInt(20),
		Discount:  decimal.Zero,
		TaxRate:   decimal.NewFromInt(20),
		TaxAmount: decimal.NewFromInt(4),
		Total:     decimal.NewFromInt(24),
		Style:     template.DefaultStyle(),
	}

	out, err := r.Render(data)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderEveryLayoutVariant(t *testing.T) {
	r := testRenderer()

	for _, layout := range []string{
		template.LayoutClassic,
		template.LayoutModern,
		template.LayoutMinimal,
	} {
		style := template.DefaultStyle()
		style.Layout = layout
		style.ShowWatermark = true
		style.HeaderAlignment = template.AlignCenter

		out, err := r.Render(Data{
			Title:       "DOCUMENT",
			CompanyName: "Acme",
			ClientName:  "Globex",
			IssueDate:   time.Now(),
			Style:       style,
		})
		require.NoError(t, err, layout)
		assert.NotEmpty(t, out, layout)
	}
}
