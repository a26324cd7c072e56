// AngelaMos | 2026
// repository.go

package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/invoicery/internal/core"
)

// Every query is scoped by user_id: a document owned by someone else
// is indistinguishable from one that does not exist.
type Repository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, userID, id string) (*Document, error)
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, userID, id string) error
	List(
		ctx context.Context,
		userID string,
		params ListDocumentsParams,
	) ([]Document, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const documentColumns = `
	id, user_id, number, company_name, company_address, company_email,
	client_name, client_address, client_email, issue_date, due_date,
	currency, items, notes, subtotal, discount, tax_rate, tax_amount,
	total, template_id, style_override, created_at, updated_at`

func (r *repository) Create(ctx context.Context, doc *Document) error {
	query := `
		INSERT INTO documents (
			id, user_id, number, company_name, company_address, company_email,
			client_name, client_address, client_email, issue_date, due_date,
			currency, items, notes, subtotal, discount, tax_rate, tax_amount,
			total, template_id, style_override
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, doc, query,
		doc.ID,
		doc.UserID,
		doc.Number,
		doc.CompanyName,
		doc.CompanyAddress,
		doc.CompanyEmail,
		doc.ClientName,
		doc.ClientAddress,
		doc.ClientEmail,
		doc.IssueDate,
		doc.DueDate,
		doc.Currency,
		doc.Items,
		doc.Notes,
		doc.Subtotal,
		doc.Discount,
		doc.TaxRate,
		doc.TaxAmount,
		doc.Total,
		doc.TemplateID,
		doc.StyleOverride,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	userID, id string,
) (*Document, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM documents WHERE id = $1 AND user_id = $2`,
		documentColumns,
	)

	var doc Document
	err := r.db.GetContext(ctx, &doc, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get document: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

func (r *repository) Update(ctx context.Context, doc *Document) error {
	query := `
		UPDATE documents
		SET number = $3, company_name = $4, company_address = $5,
			company_email = $6, client_name = $7, client_address = $8,
			client_email = $9, issue_date = $10, due_date = $11,
			currency = $12, items = $13, notes = $14, subtotal = $15,
			discount = $16, tax_rate = $17, tax_amount = $18, total = $19,
			template_id = $20, style_override = $21, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &doc.UpdatedAt, query,
		doc.ID,
		doc.UserID,
		doc.Number,
		doc.CompanyName,
		doc.CompanyAddress,
		doc.CompanyEmail,
		doc.ClientName,
		doc.ClientAddress,
		doc.ClientEmail,
		doc.IssueDate,
		doc.DueDate,
		doc.Currency,
		doc.Items,
		doc.Notes,
		doc.Subtotal,
		doc.Discount,
		doc.TaxRate,
		doc.TaxAmount,
		doc.Total,
		doc.TemplateID,
		doc.StyleOverride,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update document: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM documents WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete document: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	userID string,
	params ListDocumentsParams,
) ([]Document, int, error) {
	params.Normalize()

	conditions := []string{"user_id = $1"}
	args := []any{userID}
	argIdx := 2

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(client_name ILIKE $%d OR number ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM documents WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM documents
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		documentColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var docs []Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}

	return docs, total, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
