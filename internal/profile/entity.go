// AngelaMos | 2026
// entity.go

package profile

import "time"

// BusinessProfile is the sender identity stamped on documents and
// invoices. One row per user.
type BusinessProfile struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	CompanyName    string    `db:"company_name"`
	CompanyAddress string    `db:"company_address"`
	CompanyEmail   string    `db:"company_email"`
	CompanyPhone   string    `db:"company_phone"`
	Website        string    `db:"website"`
	TaxID          string    `db:"tax_id"`
	LogoURL        *string   `db:"logo_url"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
