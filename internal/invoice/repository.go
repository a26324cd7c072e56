// AngelaMos | 2026
// repository.go

package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/invoicery/internal/core"
)

// Queries are user-scoped the same way documents are: an invoice you
// do not own reads as absent.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, userID, id string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	UpdateStatus(ctx context.Context, userID, id string, status Status) error
	Delete(ctx context.Context, userID, id string) error
	List(
		ctx context.Context,
		userID string,
		params ListInvoicesParams,
	) ([]Invoice, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const invoiceColumns = `
	id, user_id, invoice_number, status, company_name, company_address,
	company_email, client_name, client_address, client_email, issue_date,
	due_date, currency, items, notes, subtotal, discount, tax_rate,
	tax_amount, total, template_id, style_override, created_at, updated_at`

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	query := `
		INSERT INTO invoices (
			id, user_id, invoice_number, status, company_name,
			company_address, company_email, client_name, client_address,
			client_email, issue_date, due_date, currency, items, notes,
			subtotal, discount, tax_rate, tax_amount, total, template_id,
			style_override
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, inv, query,
		inv.ID,
		inv.UserID,
		inv.InvoiceNumber,
		inv.Status,
		inv.CompanyName,
		inv.CompanyAddress,
		inv.CompanyEmail,
		inv.ClientName,
		inv.ClientAddress,
		inv.ClientEmail,
		inv.IssueDate,
		inv.DueDate,
		inv.Currency,
		inv.Items,
		inv.Notes,
		inv.Subtotal,
		inv.Discount,
		inv.TaxRate,
		inv.TaxAmount,
		inv.Total,
		inv.TemplateID,
		inv.StyleOverride,
	)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	userID, id string,
) (*Invoice, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM invoices WHERE id = $1 AND user_id = $2`,
		invoiceColumns,
	)

	var inv Invoice
	err := r.db.GetContext(ctx, &inv, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get invoice: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	return &inv, nil
}

func (r *repository) Update(ctx context.Context, inv *Invoice) error {
	query := `
		UPDATE invoices
		SET invoice_number = $3, company_name = $4, company_address = $5,
			company_email = $6, client_name = $7, client_address = $8,
			client_email = $9, issue_date = $10, due_date = $11,
			currency = $12, items = $13, notes = $14, subtotal = $15,
			discount = $16, tax_rate = $17, tax_amount = $18, total = $19,
			template_id = $20, style_override = $21, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &inv.UpdatedAt, query,
		inv.ID,
		inv.UserID,
		inv.InvoiceNumber,
		inv.CompanyName,
		inv.CompanyAddress,
		inv.CompanyEmail,
		inv.ClientName,
		inv.ClientAddress,
		inv.ClientEmail,
		inv.IssueDate,
		inv.DueDate,
		inv.Currency,
		inv.Items,
		inv.Notes,
		inv.Subtotal,
		inv.Discount,
		inv.TaxRate,
		inv.TaxAmount,
		inv.Total,
		inv.TemplateID,
		inv.StyleOverride,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update invoice: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	userID, id string,
	status Status,
) error {
	query := `
		UPDATE invoices
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update invoice status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM invoices WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete invoice: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	userID string,
	params ListInvoicesParams,
) ([]Invoice, int, error) {
	params.Normalize()

	conditions := []string{"user_id = $1"}
	args := []any{userID}
	argIdx := 2

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(client_name ILIKE $%d OR invoice_number ILIKE $%d)",
			argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM invoices WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		invoiceColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var invoices []Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}

	return invoices, total, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
