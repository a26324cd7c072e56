// AngelaMos | 2026
// repository.go

package template

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/invoicery/internal/core"
)

type Repository interface {
	Create(ctx context.Context, tmpl *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	GetDefault(ctx context.Context) (*Template, error)
	List(ctx context.Context) ([]Template, error)
	Update(ctx context.Context, tmpl *Template) error
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const templateColumns = `
	id, name, primary_color, secondary_color, font_family, layout,
	header_alignment, show_watermark, show_footer, is_default,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, tmpl *Template) error {
	query := `
		INSERT INTO templates (
			id, name, primary_color, secondary_color, font_family, layout,
			header_alignment, show_watermark, show_footer, is_default
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, false
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, tmpl, query,
		tmpl.ID,
		tmpl.Name,
		tmpl.PrimaryColor,
		tmpl.SecondaryColor,
		tmpl.FontFamily,
		tmpl.Layout,
		tmpl.HeaderAlignment,
		tmpl.ShowWatermark,
		tmpl.ShowFooter,
	)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Template, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM templates WHERE id = $1`,
		templateColumns,
	)

	var tmpl Template
	err := r.db.GetContext(ctx, &tmpl, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get template: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	return &tmpl, nil
}

func (r *repository) GetDefault(ctx context.Context) (*Template, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM templates WHERE is_default = true LIMIT 1`,
		templateColumns,
	)

	var tmpl Template
	err := r.db.GetContext(ctx, &tmpl, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get default template: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get default template: %w", err)
	}

	return &tmpl, nil
}

func (r *repository) List(ctx context.Context) ([]Template, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM templates ORDER BY name`,
		templateColumns,
	)

	var templates []Template
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	return templates, nil
}

func (r *repository) Update(ctx context.Context, tmpl *Template) error {
	query := `
		UPDATE templates
		SET name = $2, primary_color = $3, secondary_color = $4,
			font_family = $5, layout = $6, header_alignment = $7,
			show_watermark = $8, show_footer = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &tmpl.UpdatedAt, query,
		tmpl.ID,
		tmpl.Name,
		tmpl.PrimaryColor,
		tmpl.SecondaryColor,
		tmpl.FontFamily,
		tmpl.Layout,
		tmpl.HeaderAlignment,
		tmpl.ShowWatermark,
		tmpl.ShowFooter,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update template: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM templates WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete template: %w", core.ErrNotFound)
	}

	return nil
}

// SetDefault clears every default flag and sets one inside a single
// transaction, so exactly one template ends up default.
func (r *repository) SetDefault(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE templates SET is_default = false WHERE is_default = true`,
		); err != nil {
			return fmt.Errorf("clear default templates: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE templates
			 SET is_default = true, updated_at = NOW()
			 WHERE id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("set default template: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("set default template: %w", err)
		}

		if rows == 0 {
			return fmt.Errorf("set default template: %w", core.ErrNotFound)
		}

		return nil
	})
}
