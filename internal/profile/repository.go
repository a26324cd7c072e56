// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/invoicery/internal/core"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*BusinessProfile, error)
	Upsert(ctx context.Context, p *BusinessProfile) error
	SetLogoURL(ctx context.Context, userID, logoURL string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const profileColumns = `
	id, user_id, company_name, company_address, company_email,
	company_phone, website, tax_id, logo_url, created_at, updated_at`

func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*BusinessProfile, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM business_profiles WHERE user_id = $1`,
		profileColumns,
	)

	var p BusinessProfile
	err := r.db.GetContext(ctx, &p, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get business profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get business profile: %w", err)
	}

	return &p, nil
}

// Upsert writes the full profile, keeping any logo uploaded earlier.
func (r *repository) Upsert(ctx context.Context, p *BusinessProfile) error {
	query := `
		INSERT INTO business_profiles (
			id, user_id, company_name, company_address, company_email,
			company_phone, website, tax_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			company_address = EXCLUDED.company_address,
			company_email = EXCLUDED.company_email,
			company_phone = EXCLUDED.company_phone,
			website = EXCLUDED.website,
			tax_id = EXCLUDED.tax_id,
			updated_at = NOW()
		RETURNING id, logo_url, created_at, updated_at`

	err := r.db.GetContext(ctx, p, query,
		p.ID,
		p.UserID,
		p.CompanyName,
		p.CompanyAddress,
		p.CompanyEmail,
		p.CompanyPhone,
		p.Website,
		p.TaxID,
	)
	if err != nil {
		return fmt.Errorf("upsert business profile: %w", err)
	}

	return nil
}

func (r *repository) SetLogoURL(
	ctx context.Context,
	userID, logoURL string,
) error {
	query := `
		UPDATE business_profiles
		SET logo_url = $2, updated_at = NOW()
		WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID, logoURL)
	if err != nil {
		return fmt.Errorf("set logo url: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set logo url: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set logo url: %w", core.ErrNotFound)
	}

	return nil
}
