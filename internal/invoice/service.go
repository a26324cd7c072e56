// AngelaMos | 2026
// service.go

package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicery/internal/core"
	"github.com/carterperez-dev/invoicery/internal/document"
	"github.com/carterperez-dev/invoicery/internal/money"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create always starts an invoice in DRAFT regardless of the request.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateInvoiceRequest,
) (*Invoice, error) {
	inv := &Invoice{
		ID:     uuid.New().String(),
		UserID: userID,
		Status: StatusDraft,
	}

	if err := applyRequest(inv, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, id string,
) (*Invoice, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListInvoicesParams,
) ([]Invoice, int, error) {
	return s.repo.List(ctx, userID, params)
}

// Update only applies to drafts; once an invoice has been sent its
// content is frozen and only the status may change.
func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateInvoiceRequest,
) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !inv.Status.Editable() {
		return nil, core.ForbiddenError(fmt.Sprintf(
			"cannot edit invoice in %s status", inv.Status,
		))
	}

	if err := applyRequest(inv, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	inv, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if !inv.Status.Deletable() {
		return core.ForbiddenError(fmt.Sprintf(
			"cannot delete invoice in %s status", inv.Status,
		))
	}

	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	userID, id string,
	target Status,
) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(inv.Status, target); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, userID, id, target); err != nil {
		return nil, err
	}

	inv.Status = target
	return inv, nil
}

// applyRequest maps request fields onto the entity and recomputes all
// monetary aggregates. Totals are never accepted from the caller.
func applyRequest(inv *Invoice, req CreateInvoiceRequest) error {
	items, lines, err := buildLineItems(req.Items)
	if err != nil {
		return err
	}

	discount := req.Discount
	if discount.IsNegative() {
		return fmt.Errorf(
			"discount cannot be negative: %w",
			core.ErrInvalidInput,
		)
	}

	taxRate := decimal.NewFromInt(money.DefaultTaxRate)
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			return fmt.Errorf(
				"tax rate cannot be negative: %w",
				core.ErrInvalidInput,
			)
		}
		taxRate = *req.TaxRate
	}

	totals := money.Calculate(lines, discount, taxRate)

	inv.InvoiceNumber = req.InvoiceNumber
	inv.CompanyName = req.CompanyName
	inv.CompanyAddress = req.CompanyAddress
	inv.CompanyEmail = req.CompanyEmail
	inv.ClientName = req.ClientName
	inv.ClientAddress = req.ClientAddress
	inv.ClientEmail = req.ClientEmail
	inv.Currency = req.Currency
	if inv.Currency == "" {
		inv.Currency = "USD"
	}
	inv.IssueDate = time.Now()
	if req.IssueDate != nil {
		inv.IssueDate = *req.IssueDate
	}
	inv.DueDate = req.DueDate
	inv.Items = items
	inv.Notes = req.Notes
	inv.Subtotal = totals.Subtotal
	inv.Discount = totals.Discount
	inv.TaxRate = taxRate
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
	inv.TemplateID = req.TemplateID
	inv.StyleOverride = document.StyleOverride{Style: req.StyleOverride}

	return nil
}

func buildLineItems(
	reqs []document.LineItemRequest,
) (document.LineItems, []money.Line, error) {
	items := make(document.LineItems, 0, len(reqs))
	lines := make([]money.Line, 0, len(reqs))

	for i, r := range reqs {
		if r.Quantity.IsNegative() || r.UnitPrice.IsNegative() {
			return nil, nil, fmt.Errorf(
				"item %d: quantity and unit price cannot be negative: %w",
				i+1,
				core.ErrInvalidInput,
			)
		}

		line := money.Line{Quantity: r.Quantity, UnitPrice: r.UnitPrice}
		lines = append(lines, line)

		items = append(items, document.LineItem{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Amount:      money.LineTotal(line),
		})
	}

	return items, lines, nil
}
