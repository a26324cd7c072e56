// AngelaMos | 2026
// dto.go

package document

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicery/internal/template"
)

type LineItemRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=255"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type CreateDocumentRequest struct {
	Number         *string           `json:"number,omitempty"         validate:"omitempty,max=50"`
	CompanyName    string            `json:"company_name"             validate:"required,max=200"`
	CompanyAddress string            `json:"company_address"          validate:"max=500"`
	CompanyEmail   string            `json:"company_email"            validate:"omitempty,email,max=255"`
	ClientName     string            `json:"client_name"              validate:"required,max=200"`
	ClientAddress  string            `json:"client_address"           validate:"max=500"`
	ClientEmail    string            `json:"client_email"             validate:"omitempty,email,max=255"`
	IssueDate      *time.Time        `json:"issue_date,omitempty"`
	DueDate        *time.Time        `json:"due_date,omitempty"`
	Currency       string            `json:"currency"                 validate:"omitempty,len=3,uppercase"`
	Items          []LineItemRequest `json:"items"                    validate:"required,min=1,max=100,dive"`
	Notes          string            `json:"notes"                    validate:"max=2000"`
	Discount       decimal.Decimal   `json:"discount"`
	TaxRate        *decimal.Decimal  `json:"tax_rate,omitempty"`
	TemplateID     *string           `json:"template_id,omitempty"    validate:"omitempty,uuid4"`
	StyleOverride  *template.Style   `json:"style_override,omitempty"`
}

type UpdateDocumentRequest = CreateDocumentRequest

type DocumentResponse struct {
	ID             string          `json:"id"`
	Number         *string         `json:"number"`
	CompanyName    string          `json:"company_name"`
	CompanyAddress string          `json:"company_address"`
	CompanyEmail   string          `json:"company_email"`
	ClientName     string          `json:"client_name"`
	ClientAddress  string          `json:"client_address"`
	ClientEmail    string          `json:"client_email"`
	IssueDate      time.Time       `json:"issue_date"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Currency       string          `json:"currency"`
	Items          LineItems       `json:"items"`
	Notes          string          `json:"notes,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	TemplateID     *string         `json:"template_id,omitempty"`
	StyleOverride  StyleOverride   `json:"style_override"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ListDocumentsParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

func (p *ListDocumentsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListDocumentsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToDocumentResponse(d *Document) DocumentResponse {
	return DocumentResponse{
		ID:             d.ID,
		Number:         d.Number,
		CompanyName:    d.CompanyName,
		CompanyAddress: d.CompanyAddress,
		CompanyEmail:   d.CompanyEmail,
		ClientName:     d.ClientName,
		ClientAddress:  d.ClientAddress,
		ClientEmail:    d.ClientEmail,
		IssueDate:      d.IssueDate,
		DueDate:        d.DueDate,
		Currency:       d.Currency,
		Items:          d.Items,
		Notes:          d.Notes,
		Subtotal:       d.Subtotal,
		Discount:       d.Discount,
		TaxRate:        d.TaxRate,
		TaxAmount:      d.TaxAmount,
		Total:          d.Total,
		TemplateID:     d.TemplateID,
		StyleOverride:  d.StyleOverride,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func ToDocumentResponseList(docs []Document) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		responses = append(responses, ToDocumentResponse(&d))
	}
	return responses
}
