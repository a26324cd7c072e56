// AngelaMos | 2026
// entity.go

package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicery/internal/document"
)

// Invoice shares the document's line-item and styling shape and adds a
// formal number plus a lifecycle status.
type Invoice struct {
	ID             string                 `db:"id"`
	UserID         string                 `db:"user_id"`
	InvoiceNumber  string                 `db:"invoice_number"`
	Status         Status                 `db:"status"`
	CompanyName    string                 `db:"company_name"`
	CompanyAddress string                 `db:"company_address"`
	CompanyEmail   string                 `db:"company_email"`
	ClientName     string                 `db:"client_name"`
	ClientAddress  string                 `db:"client_address"`
	ClientEmail    string                 `db:"client_email"`
	IssueDate      time.Time              `db:"issue_date"`
	DueDate        *time.Time             `db:"due_date"`
	Currency       string                 `db:"currency"`
	Items          document.LineItems     `db:"items"`
	Notes          string                 `db:"notes"`
	Subtotal       decimal.Decimal        `db:"subtotal"`
	Discount       decimal.Decimal        `db:"discount"`
	TaxRate        decimal.Decimal        `db:"tax_rate"`
	TaxAmount      decimal.Decimal        `db:"tax_amount"`
	Total          decimal.Decimal        `db:"total"`
	TemplateID     *string                `db:"template_id"`
	StyleOverride  document.StyleOverride `db:"style_override"`
	CreatedAt      time.Time              `db:"created_at"`
	UpdatedAt      time.Time              `db:"updated_at"`
}
