// AngelaMos | 2026
// service.go

package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicery/internal/core"
	"github.com/carterperez-dev/invoicery/internal/money"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateDocumentRequest,
) (*Document, error) {
	doc := &Document{
		ID:     uuid.New().String(),
		UserID: userID,
	}

	if err := applyRequest(doc, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, id string,
) (*Document, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListDocumentsParams,
) ([]Document, int, error) {
	return s.repo.List(ctx, userID, params)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateDocumentRequest,
) (*Document, error) {
	doc, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := applyRequest(doc, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// Duplicate copies a document under a fresh identifier with the number
// reset and the issue date set to today. The original is untouched.
func (s *Service) Duplicate(
	ctx context.Context,
	userID, id string,
) (*Document, error) {
	original, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	copied := *original
	copied.ID = uuid.New().String()
	copied.Number = nil
	copied.IssueDate = time.Now()
	copied.Items = append(LineItems(nil), original.Items...)

	if err := s.repo.Create(ctx, &copied); err != nil {
		return nil, err
	}

	return &copied, nil
}

// applyRequest maps request fields onto the entity and recomputes all
// monetary aggregates. Totals are never accepted from the caller.
func applyRequest(doc *Document, req CreateDocumentRequest) error {
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

	doc.Number = req.Number
	doc.CompanyName = req.CompanyName
	doc.CompanyAddress = req.CompanyAddress
	doc.CompanyEmail = req.CompanyEmail
	doc.ClientName = req.ClientName
	doc.ClientAddress = req.ClientAddress
	doc.ClientEmail = req.ClientEmail
	doc.Currency = req.Currency
	if doc.Currency == "" {
		doc.Currency = "USD"
	}
	doc.IssueDate = time.Now()
	if req.IssueDate != nil {
		doc.IssueDate = *req.IssueDate
	}
	doc.DueDate = req.DueDate
	doc.Items = items
	doc.Notes = req.Notes
	doc.Subtotal = totals.Subtotal
	doc.Discount = totals.Discount
	doc.TaxRate = taxRate
	doc.TaxAmount = totals.TaxAmount
	doc.Total = totals.Total
	doc.TemplateID = req.TemplateID
	doc.StyleOverride = StyleOverride{Style: req.StyleOverride}

	return nil
}

func buildLineItems(
	reqs []LineItemRequest,
) (LineItems, []money.Line, error) {
	items := make(LineItems, 0, len(reqs))
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

		items = append(items, LineItem{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Amount:      money.LineTotal(line),
		})
	}

	return items, lines, nil
}
