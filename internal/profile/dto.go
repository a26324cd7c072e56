// AngelaMos | 2026
// dto.go

package profile

import "time"

type UpdateProfileRequest struct {
	CompanyName    string `json:"company_name"    validate:"required,max=200"`
	CompanyAddress string `json:"company_address" validate:"max=500"`
	CompanyEmail   string `json:"company_email"   validate:"omitempty,email,max=255"`
	CompanyPhone   string `json:"company_phone"   validate:"max=50"`
	Website        string `json:"website"         validate:"omitempty,url,max=255"`
	TaxID          string `json:"tax_id"          validate:"max=50"`
}

type ProfileResponse struct {
	CompanyName    string    `json:"company_name"`
	CompanyAddress string    `json:"company_address"`
	CompanyEmail   string    `json:"company_email"`
	CompanyPhone   string    `json:"company_phone"`
	Website        string    `json:"website"`
	TaxID          string    `json:"tax_id"`
	LogoURL        *string   `json:"logo_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type LogoResponse struct {
	LogoURL string `json:"logo_url"`
}

func ToProfileResponse(p *BusinessProfile) ProfileResponse {
	return ProfileResponse{
		CompanyName:    p.CompanyName,
		CompanyAddress: p.CompanyAddress,
		CompanyEmail:   p.CompanyEmail,
		CompanyPhone:   p.CompanyPhone,
		Website:        p.Website,
		TaxID:          p.TaxID,
		LogoURL:        p.LogoURL,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
