// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/invoicery/internal/core"
	"github.com/carterperez-dev/invoicery/internal/mail"
	"github.com/carterperez-dev/invoicery/internal/middleware"
	"github.com/carterperez-dev/invoicery/internal/otp"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenReuse         = errors.New("token reuse detected")
	ErrEmailExists        = errors.New("email already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Verified     bool
	TokenVersion int
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name, role string,
	) (*UserInfo, error)
	IncrementTokenVersion(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	MarkVerified(ctx context.Context, userID string) error
}

type Service struct {
	repo         Repository
	jwt          *JWTManager
	userProvider UserProvider
	codes        *otp.Service
	mailer       mail.Sender
	blacklist    Blacklist
}

// Service is the TokenVerifier the authenticated routes use, so every
// bearer token passes the blacklist and token-version checks.
var _ middleware.TokenVerifier = (*Service)(nil)

func NewService(
	repo Repository,
	jwt *JWTManager,
	userProvider UserProvider,
	codes *otp.Service,
	mailer mail.Sender,
	blacklist Blacklist,
) *Service {
	return &Service{
		repo:         repo,
		jwt:          jwt,
		userProvider: userProvider,
		codes:        codes,
		mailer:       mailer,
		blacklist:    blacklist,
	}
}

// Register creates an unverified account and emails a verification
// code. No tokens are issued until the code is confirmed.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*RegisterResponse, error) {
	email := strings.ToLower(req.Email)

	role := ""
	if req.InviteToken != "" {
		invite, err := s.jwt.VerifyActionToken(ctx, req.InviteToken, ActionInvite)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(invite.Email, email) {
			return nil, fmt.Errorf(
				"register: invite issued for a different email: %w",
				core.ErrTokenInvalid,
			)
		}
		role = invite.Role
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, email, passwordHash, req.Name, role)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	code, err := s.codes.Issue(ctx, otp.PurposeVerifyEmail, email)
	if err != nil {
		return nil, fmt.Errorf("issue verification code: %w", err)
	}

	if err := s.mailer.SendVerificationCode(email, user.Name, code); err != nil {
		return nil, fmt.Errorf("send verification email: %w", err)
	}

	actionToken, err := s.jwt.CreateActionToken(ActionClaims{
		Email:   email,
		Purpose: ActionVerifyEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("create action token: %w", err)
	}

	return &RegisterResponse{
		User: UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			Verified:  false,
			CreatedAt: time.Now(),
		},
		ActionToken: actionToken,
		ExpiresIn:   int(s.jwt.ActionTokenTTL() / time.Second),
	}, nil
}

// VerifyEmail confirms the emailed code, flips the verified flag and
// signs the user in. The account is identified by the action token
// when present, otherwise by the raw email.
func (s *Service) VerifyEmail(
	ctx context.Context,
	req VerifyEmailRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	email := strings.ToLower(req.Email)

	if req.ActionToken != "" {
		claims, err := s.jwt.VerifyActionToken(
			ctx,
			req.ActionToken,
			ActionVerifyEmail,
		)
		if err != nil {
			return nil, err
		}
		email = strings.ToLower(claims.Email)
	}

	if email == "" {
		return nil, fmt.Errorf(
			"verify email: action token or email required: %w",
			core.ErrInvalidInput,
		)
	}

	if err := s.codes.Verify(ctx, otp.PurposeVerifyEmail, email, req.Code); err != nil {
		return nil, err
	}

	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.Verified {
		if err := s.userProvider.MarkVerified(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("mark verified: %w", err)
		}
		user.Verified = true
	}

	return s.createAuthResponse(ctx, user, userAgent, ipAddress, "", nil)
}

// ResendCode replaces any outstanding verification code. The response
// is identical whether or not the account exists.
func (s *Service) ResendCode(ctx context.Context, email string) error {
	email = strings.ToLower(email)

	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	if user.Verified {
		return nil
	}

	if err := s.codes.Invalidate(ctx, otp.PurposeVerifyEmail, email); err != nil {
		return fmt.Errorf("invalidate code: %w", err)
	}

	code, err := s.codes.Issue(ctx, otp.PurposeVerifyEmail, email)
	if err != nil {
		return fmt.Errorf("issue verification code: %w", err)
	}

	if err := s.mailer.SendVerificationCode(email, user.Name, code); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	return nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, ErrEmailNotVerified
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.userProvider.UpdatePassword(ctx, user.ID, newHash)
	}

	return s.createAuthResponse(ctx, user, userAgent, ipAddress, "", nil)
}

func (s *Service) Refresh(
	ctx context.Context,
	refreshToken, userAgent, ipAddress string,
) (*AuthResponse, error) {
	tokenHash := core.HashToken(refreshToken)

	storedToken, err := s.repo.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	if storedToken.IsUsed {
		//nolint:errcheck // security revocation continues regardless
		_ = s.repo.RevokeByFamilyID(ctx, storedToken.FamilyID)
		return nil, ErrTokenReuse
	}

	if !storedToken.IsValid() {
		if storedToken.IsRevoked() {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
		}
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenExpired)
	}

	user, err := s.userProvider.GetByID(ctx, storedToken.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return s.createAuthResponse(
		ctx,
		user,
		userAgent,
		ipAddress,
		storedToken.FamilyID,
		&storedToken.ID,
	)
}

// Logout blacklists the presented access token and revokes the given
// refresh token. The access token dies even when the refresh token is
// already gone.
func (s *Service) Logout(
	ctx context.Context,
	refreshToken, userID string,
	access *middleware.AccessTokenClaims,
) error {
	if access != nil && access.TokenID != "" {
		if err := s.RevokeAccessToken(ctx, access.TokenID, access.ExpiresAt); err != nil {
			return err
		}
	}

	tokenHash := core.HashToken(refreshToken)

	storedToken, err := s.repo.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find token: %w", err)
	}

	if storedToken.UserID != userID {
		return fmt.Errorf("logout: %w", core.ErrForbidden)
	}

	if err := s.repo.RevokeByID(ctx, storedToken.ID); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	if err := s.repo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke all tokens: %w", err)
	}

	if err := s.userProvider.IncrementTokenVersion(ctx, userID); err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	return nil
}

func (s *Service) RevokeAccessToken(
	ctx context.Context,
	jti string,
	expiresAt time.Time,
) error {
	if s.blacklist == nil {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	return s.blacklist.Revoke(ctx, jti, ttl)
}

func (s *Service) IsAccessTokenBlacklisted(
	ctx context.Context,
	jti string,
) (bool, error) {
	if s.blacklist == nil {
		return false, nil
	}

	return s.blacklist.IsRevoked(ctx, jti)
}

// VerifyAccessToken checks the signature, then rejects tokens that
// were blacklisted at logout or minted before the user's current token
// version.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenID != "" {
		revoked, err := s.IsAccessTokenBlacklisted(ctx, claims.TokenID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
		}
	}

	if err := s.ValidateTokenVersion(ctx, claims.UserID, claims.TokenVersion); err != nil {
		return nil, err
	}

	return claims, nil
}

func (s *Service) GetActiveSessions(
	ctx context.Context,
	userID string,
) ([]SessionInfo, error) {
	tokens, err := s.repo.GetActiveSessionsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	sessions := make([]SessionInfo, 0, len(tokens))
	for _, t := range tokens {
		sessions = append(sessions, SessionInfo{
			ID:        t.ID,
			UserAgent: t.UserAgent,
			IPAddress: t.IPAddress,
			CreatedAt: t.CreatedAt,
			ExpiresAt: t.ExpiresAt,
		})
	}

	return sessions, nil
}

func (s *Service) RevokeSession(
	ctx context.Context,
	userID, sessionID string,
) error {
	token, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("find session: %w", err)
	}

	if token.UserID != userID {
		return fmt.Errorf("revoke session: %w", core.ErrForbidden)
	}

	if err := s.repo.RevokeByID(ctx, sessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID, currentPassword, newPassword string,
) error {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	valid, _, err := core.VerifyPasswordWithRehash(
		currentPassword,
		user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.LogoutAll(ctx, userID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}

	return nil
}

// ForgotPassword sends a reset code when the account exists. The
// caller always gets the same answer either way.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(email)

	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	code, err := s.codes.Issue(ctx, otp.PurposeResetPassword, email)
	if err != nil {
		return fmt.Errorf("issue reset code: %w", err)
	}

	if err := s.mailer.SendResetCode(email, user.Name, code); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	return nil
}

// ResetPassword burns the reset code, replaces the password and
// revokes every outstanding session.
func (s *Service) ResetPassword(
	ctx context.Context,
	req ResetPasswordRequest,
) error {
	email := strings.ToLower(req.Email)

	if err := s.codes.Verify(ctx, otp.PurposeResetPassword, email, req.Code); err != nil {
		return err
	}

	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.LogoutAll(ctx, user.ID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}

	//nolint:errcheck // best-effort notification
	_ = s.mailer.SendResetConfirmation(email, user.Name)

	return nil
}

func (s *Service) ValidateTokenVersion(
	ctx context.Context,
	userID string,
	tokenVersion int,
) error {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if tokenVersion < user.TokenVersion {
		return fmt.Errorf("validate token version: %w", core.ErrTokenRevoked)
	}

	return nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		Verified: user.Verified,
	}, nil
}

func (s *Service) createAuthResponse(
	ctx context.Context,
	user *UserInfo,
	userAgent, ipAddress, familyID string,
	oldTokenID *string,
) (*AuthResponse, error) {
	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID:       user.ID,
		Role:         user.Role,
		Verified:     user.Verified,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshData, err := s.jwt.CreateRefreshToken(user.ID, familyID)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	newTokenID := uuid.New().String()

	refreshTokenEntity := &RefreshToken{
		ID:        newTokenID,
		UserID:    user.ID,
		TokenHash: refreshData.Hash,
		FamilyID:  refreshData.FamilyID,
		ExpiresAt: refreshData.ExpiresAt,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}

	if err := s.repo.Create(ctx, refreshTokenEntity); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	if oldTokenID != nil {
		//nolint:errcheck // best-effort token chain tracking
		_ = s.repo.MarkAsUsed(ctx, *oldTokenID, newTokenID)
	}

	accessTTL := s.jwt.AccessTokenTTL()

	return &AuthResponse{
		User: UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			Verified:  user.Verified,
			CreatedAt: time.Now(),
		},
		Tokens: TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshData.Token,
			TokenType:    "Bearer",
			ExpiresIn:    int(accessTTL / time.Second),
			ExpiresAt:    time.Now().Add(accessTTL),
		},
		Claims: &middleware.AccessTokenClaims{
			UserID:       user.ID,
			Role:         user.Role,
			Verified:     user.Verified,
			TokenVersion: user.TokenVersion,
		},
	}, nil
}
