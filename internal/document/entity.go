// AngelaMos | 2026
// entity.go

package document

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicery/internal/template"
)

// LineItem is one billable row. Amount is the stored quantity × unit
// price, persisted so renders never recompute.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// LineItems persists as a single JSONB column.
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]LineItem{})
	}
	return json.Marshal(l)
}

func (l *LineItems) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan line items: unsupported type %T", src)
	}

	return json.Unmarshal(data, l)
}

// StyleOverride is an optional inline style stored as JSONB; nil means
// the document inherits from its template.
type StyleOverride struct {
	*template.Style
}

func (s StyleOverride) Value() (driver.Value, error) {
	if s.Style == nil {
		return nil, nil
	}
	return json.Marshal(s.Style)
}

func (s *StyleOverride) Scan(src any) error {
	if src == nil {
		s.Style = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan style override: unsupported type %T", src)
	}

	style := &template.Style{}
	if err := json.Unmarshal(data, style); err != nil {
		return err
	}
	s.Style = style
	return nil
}

func (s StyleOverride) MarshalJSON() ([]byte, error) {
	if s.Style == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Style)
}

func (s *StyleOverride) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		s.Style = nil
		return nil
	}

	style := &template.Style{}
	if err := json.Unmarshal(data, style); err != nil {
		return err
	}
	s.Style = style
	return nil
}

type Document struct {
	ID             string          `db:"id"`
	UserID         string          `db:"user_id"`
	Number         *string         `db:"number"`
	CompanyName    string          `db:"company_name"`
	CompanyAddress string          `db:"company_address"`
	CompanyEmail   string          `db:"company_email"`
	ClientName     string          `db:"client_name"`
	ClientAddress  string          `db:"client_address"`
	ClientEmail    string          `db:"client_email"`
	IssueDate      time.Time       `db:"issue_date"`
	DueDate        *time.Time      `db:"due_date"`
	Currency       string          `db:"currency"`
	Items          LineItems       `db:"items"`
	Notes          string          `db:"notes"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	Discount       decimal.Decimal `db:"discount"`
	TaxRate        decimal.Decimal `db:"tax_rate"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	Total          decimal.Decimal `db:"total"`
	TemplateID     *string         `db:"template_id"`
	StyleOverride  StyleOverride   `db:"style_override"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
