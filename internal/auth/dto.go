// AngelaMos | 2026
// dto.go

package auth

import (
	"time"

	"github.com/carterperez-dev/invoicery/internal/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// InviteToken is a signed action token minted out of band; it lets the
// first admin account be bootstrapped without a role field in the body.
type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email,max=255"`
	Password    string `json:"password"     validate:"required,min=8,max=128"`
	Name        string `json:"name"         validate:"required,min=1,max=100"`
	InviteToken string `json:"invite_token" validate:"omitempty"`
}

// VerifyEmailRequest identifies the pending account either by the
// action token returned from register or by the raw email address.
type VerifyEmailRequest struct {
	ActionToken string `json:"action_token" validate:"omitempty"`
	Email       string `json:"email"        validate:"omitempty,email,max=255"`
	Code        string `json:"code"         validate:"required,min=4,max=10"`
}

type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email,max=255"`
	Code        string `json:"code"         validate:"required,min=4,max=10"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`

	// Claims backs the session cookie the handler sets; it never
	// serializes into the response body.
	Claims *middleware.AccessTokenClaims `json:"-"`
}

// RegisterResponse carries no tokens: the account stays locked until
// the emailed code is verified.
type RegisterResponse struct {
	User        UserResponse `json:"user"`
	ActionToken string       `json:"action_token"`
	ExpiresIn   int          `json:"expires_in"`
}

type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=128"`
}
