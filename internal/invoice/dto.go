// AngelaMos | 2026
// dto.go

package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicery/internal/document"
	"github.com/carterperez-dev/invoicery/internal/template"
)

type CreateInvoiceRequest struct {
	InvoiceNumber  string                     `json:"invoice_number"           validate:"required,min=1,max=50"`
	CompanyName    string                     `json:"company_name"             validate:"required,max=200"`
	CompanyAddress string                     `json:"company_address"          validate:"max=500"`
	CompanyEmail   string                     `json:"company_email"            validate:"omitempty,email,max=255"`
	ClientName     string                     `json:"client_name"              validate:"required,max=200"`
	ClientAddress  string                     `json:"client_address"           validate:"max=500"`
	ClientEmail    string                     `json:"client_email"             validate:"omitempty,email,max=255"`
	IssueDate      *time.Time                 `json:"issue_date,omitempty"`
	DueDate        *time.Time                 `json:"due_date,omitempty"`
	Currency       string                     `json:"currency"                 validate:"omitempty,len=3,uppercase"`
	Items          []document.LineItemRequest `json:"items"                    validate:"required,min=1,max=100,dive"`
	Notes          string                     `json:"notes"                    validate:"max=2000"`
	Discount       decimal.Decimal            `json:"discount"`
	TaxRate        *decimal.Decimal           `json:"tax_rate,omitempty"`
	TemplateID     *string                    `json:"template_id,omitempty"    validate:"omitempty,uuid4"`
	StyleOverride  *template.Style            `json:"style_override,omitempty"`
}

type UpdateInvoiceRequest = CreateInvoiceRequest

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT SENT PAID OVERDUE CANCELLED"`
}

type InvoiceResponse struct {
	ID             string                 `json:"id"`
	InvoiceNumber  string                 `json:"invoice_number"`
	Status         Status                 `json:"status"`
	CompanyName    string                 `json:"company_name"`
	CompanyAddress string                 `json:"company_address"`
	CompanyEmail   string                 `json:"company_email"`
	ClientName     string                 `json:"client_name"`
	ClientAddress  string                 `json:"client_address"`
	ClientEmail    string                 `json:"client_email"`
	IssueDate      time.Time              `json:"issue_date"`
	DueDate        *time.Time             `json:"due_date,omitempty"`
	Currency       string                 `json:"currency"`
	Items          document.LineItems     `json:"items"`
	Notes          string                 `json:"notes,omitempty"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	Discount       decimal.Decimal        `json:"discount"`
	TaxRate        decimal.Decimal        `json:"tax_rate"`
	TaxAmount      decimal.Decimal        `json:"tax_amount"`
	Total          decimal.Decimal        `json:"total"`
	TemplateID     *string                `json:"template_id,omitempty"`
	StyleOverride  document.StyleOverride `json:"style_override"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type ListInvoicesParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Status   string `json:"status"`
}

func (p *ListInvoicesParams) Normalize() {
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

func (p *ListInvoicesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToInvoiceResponse(inv *Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		Status:         inv.Status,
		CompanyName:    inv.CompanyName,
		CompanyAddress: inv.CompanyAddress,
		CompanyEmail:   inv.CompanyEmail,
		ClientName:     inv.ClientName,
		ClientAddress:  inv.ClientAddress,
		ClientEmail:    inv.ClientEmail,
		IssueDate:      inv.IssueDate,
		DueDate:        inv.DueDate,
		Currency:       inv.Currency,
		Items:          inv.Items,
		Notes:          inv.Notes,
		Subtotal:       inv.Subtotal,
		Discount:       inv.Discount,
		TaxRate:        inv.TaxRate,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		TemplateID:     inv.TemplateID,
		StyleOverride:  inv.StyleOverride,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

func ToInvoiceResponseList(invoices []Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		responses = append(responses, ToInvoiceResponse(&inv))
	}
	return responses
}
