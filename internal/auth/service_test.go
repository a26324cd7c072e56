// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/invoicery/internal/config"
	"github.com/carterperez-dev/invoicery/internal/core"
	"github.com/carterperez-dev/invoicery/internal/otp"
)

type fakeUserProvider struct {
	mu    sync.Mutex
	users map[string]*UserInfo
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{users: make(map[string]*UserInfo)}
}

func (p *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, u := range p.users {
		if u.Email == strings.ToLower(email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (p *fakeUserProvider) GetByID(
	_ context.Context,
	id string,
) (*UserInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u, ok := p.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (p *fakeUserProvider) Create(
	_ context.Context,
	email, passwordHash, name, role string,
) (*UserInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, u := range p.users {
		if u.Email == strings.ToLower(email) {
			return nil, core.ErrDuplicateKey
		}
	}
	if role == "" {
		role = "user"
	}
	u := &UserInfo{
		ID:           "user-" + email,
		Email:        strings.ToLower(email),
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
	}
	p.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (p *fakeUserProvider) IncrementTokenVersion(
	_ context.Context,
	userID string,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u, ok := p.users[userID]; ok {
		u.TokenVersion++
		return nil
	}
	return core.ErrNotFound
}

func (p *fakeUserProvider) UpdatePassword(
	_ context.Context,
	userID, passwordHash string,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u, ok := p.users[userID]; ok {
		u.PasswordHash = passwordHash
		return nil
	}
	return core.ErrNotFound
}

func (p *fakeUserProvider) MarkVerified(
	_ context.Context,
	userID string,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u, ok := p.users[userID]; ok {
		u.Verified = true
		return nil
	}
	return core.ErrNotFound
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*RefreshToken)}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.CreatedAt = time.Now()
	copied := *token
	r.tokens[token.ID] = &copied
	return nil
}

func (r *fakeTokenRepo) FindByHash(
	_ context.Context,
	tokenHash string,
) (*RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			copied := *t
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeTokenRepo) FindByID(
	_ context.Context,
	id string,
) (*RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (r *fakeTokenRepo) MarkAsUsed(
	_ context.Context,
	id, replacedByID string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[id]; ok && !t.IsUsed {
		t.MarkAsUsed(replacedByID)
		return nil
	}
	return core.ErrNotFound
}

func (r *fakeTokenRepo) RevokeByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[id]; ok && !t.IsRevoked() {
		t.Revoke()
		return nil
	}
	return core.ErrNotFound
}

func (r *fakeTokenRepo) RevokeByFamilyID(
	_ context.Context,
	familyID string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.FamilyID == familyID && !t.IsRevoked() {
			t.Revoke()
		}
	}
	return nil
}

func (r *fakeTokenRepo) RevokeAllForUser(
	_ context.Context,
	userID string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID && !t.IsRevoked() {
			t.Revoke()
		}
	}
	return nil
}

func (r *fakeTokenRepo) GetActiveSessionsForUser(
	_ context.Context,
	userID string,
) ([]RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []RefreshToken
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsValid() {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

type memCodeStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemCodeStore() *memCodeStore {
	return &memCodeStore{values: make(map[string]string)}
}

func (s *memCodeStore) Save(
	_ context.Context,
	key, value string,
	_ time.Duration,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memCodeStore) ConsumeIfMatch(
	_ context.Context,
	key, value string,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok && v == value {
		delete(s.values, key)
		return true, nil
	}
	return false, nil
}

func (s *memCodeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return core.ErrNotFound
	}
	delete(s.values, key)
	return nil
}

type memBlacklist struct {
	mu   sync.Mutex
	jtis map[string]struct{}
}

func newMemBlacklist() *memBlacklist {
	return &memBlacklist{jtis: make(map[string]struct{})}
}

func (b *memBlacklist) Revoke(
	_ context.Context,
	jti string,
	_ time.Duration,
) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = struct{}{}
	return nil
}

func (b *memBlacklist) IsRevoked(
	_ context.Context,
	jti string,
) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.jtis[jti]
	return ok, nil
}

type recordingMailer struct {
	mu            sync.Mutex
	verifyCodes   map[string]string
	resetCodes    map[string]string
	confirmations []string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{
		verifyCodes: make(map[string]string),
		resetCodes:  make(map[string]string),
	}
}

func (m *recordingMailer) SendVerificationCode(to, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifyCodes[to] = code
	return nil
}

func (m *recordingMailer) SendResetCode(to, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetCodes[to] = code
	return nil
}

func (m *recordingMailer) SendResetConfirmation(to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, to)
	return nil
}

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     privatePath,
		PublicKeyPath:      publicPath,
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
		ActionTokenExpire:  15 * time.Minute,
		Issuer:             "test",
		Audience:           "test-api",
	})
	require.NoError(t, err)

	return manager
}

type testEnv struct {
	service *Service
	users   *fakeUserProvider
	mailer  *recordingMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newFakeUserProvider()
	mailer := newRecordingMailer()
	codes := otp.NewService(newMemCodeStore(), 6, 10*time.Minute)

	service := NewService(
		newFakeTokenRepo(),
		newTestJWTManager(t),
		users,
		codes,
		mailer,
		newMemBlacklist(),
	)

	return &testEnv{service: service, users: users, mailer: mailer}
}

func TestRegisterCreatesUnverifiedAndEmailsCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.service.Register(ctx, RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "correct-horse",
		Name:     "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.False(t, resp.User.Verified)
	assert.NotEmpty(t, resp.ActionToken)

	code := env.mailer.verifyCodes["alice@example.com"]
	assert.Len(t, code, 6)
}

func TestLoginRejectsUnverifiedAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Register(ctx, RegisterRequest{
		Email:    "bob@example.com",
		Password: "correct-horse",
		Name:     "Bob",
	})
	require.NoError(t, err)

	_, err = env.service.Login(ctx, LoginRequest{
		Email:    "bob@example.com",
		Password: "correct-horse",
	}, "ua", "127.0.0.1")

	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestVerifyEmailIssuesTokensAndMarksVerified(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.service.Register(ctx, RegisterRequest{
		Email:    "carol@example.com",
		Password: "correct-horse",
		Name:     "Carol",
	})
	require.NoError(t, err)

	code := env.mailer.verifyCodes["carol@example.com"]

	resp, err := env.service.VerifyEmail(ctx, VerifyEmailRequest{
		ActionToken: reg.ActionToken,
		Code:        code,
	}, "ua", "127.0.0.1")
	require.NoError(t, err)

	assert.True(t, resp.User.Verified)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)

	// Same code cannot be replayed.
	_, err = env.service.VerifyEmail(ctx, VerifyEmailRequest{
		Email: "carol@example.com",
		Code:  code,
	}, "ua", "127.0.0.1")
	assert.ErrorIs(t, err, otp.ErrCodeInvalid)

	// Login works now.
	login, err := env.service.Login(ctx, LoginRequest{
		Email:    "carol@example.com",
		Password: "correct-horse",
	}, "ua", "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, login.User.Verified)
}

func TestVerifyEmailWrongCodeKeepsRealCodeUsable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Register(ctx, RegisterRequest{
		Email:    "dave@example.com",
		Password: "correct-horse",
		Name:     "Dave",
	})
	require.NoError(t, err)

	_, err = env.service.VerifyEmail(ctx, VerifyEmailRequest{
		Email: "dave@example.com",
		Code:  "000000",
	}, "ua", "127.0.0.1")
	assert.ErrorIs(t, err, otp.ErrCodeInvalid)

	code := env.mailer.verifyCodes["dave@example.com"]
	_, err = env.service.VerifyEmail(ctx, VerifyEmailRequest{
		Email: "dave@example.com",
		Code:  code,
	}, "ua", "127.0.0.1")
	assert.NoError(t, err)
}

func TestRefreshReuseRevokesFamily(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.service.Register(ctx, RegisterRequest{
		Email:    "erin@example.com",
		Password: "correct-horse",
		Name:     "Erin",
	})
	require.NoError(t, err)

	first, err := env.service.VerifyEmail(ctx, VerifyEmailRequest{
		ActionToken: reg.ActionToken,
		Code:        env.mailer.verifyCodes["erin@example.com"],
	}, "ua", "127.0.0.1")
	require.NoError(t, err)

	second, err := env.service.Refresh(
		ctx,
		first.Tokens.RefreshToken,
		"ua",
		"127.0.0.1",
	)
	require.NoError(t, err)

	// Replaying the rotated-out token trips reuse detection.
	_, err = env.service.Refresh(
		ctx,
		first.Tokens.RefreshToken,
		"ua",
		"127.0.0.1",
	)
	assert.ErrorIs(t, err, ErrTokenReuse)

	// The whole family is revoked, including the newest token.
	_, err = env.service.Refresh(
		ctx,
		second.Tokens.RefreshToken,
		"ua",
		"127.0.0.1",
	)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.service.Register(ctx, RegisterRequest{
		Email:    "gail@example.com",
		Password: "correct-horse",
		Name:     "Gail",
	})
	require.NoError(t, err)

	resp, err := env.service.VerifyEmail(ctx, VerifyEmailRequest{
		ActionToken: reg.ActionToken,
		Code:        env.mailer.verifyCodes["gail@example.com"],
	}, "ua", "127.0.0.1")
	require.NoError(t, err)

	claims, err := env.service.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	require.NoError(t, err)
	require.NotEmpty(t, claims.TokenID)

	require.NoError(t, env.service.Logout(
		ctx,
		resp.Tokens.RefreshToken,
		claims.UserID,
		claims,
	))

	// The bearer token dies with the session, not at its natural expiry.
	_, err = env.service.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	// The refresh token is revoked too.
	_, err = env.service.Refresh(
		ctx,
		resp.Tokens.RefreshToken,
		"ua",
		"127.0.0.1",
	)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestLogoutAllInvalidatesOutstandingAccessTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.service.Register(ctx, RegisterRequest{
		Email:    "hank@example.com",
		Password: "correct-horse",
		Name:     "Hank",
	})
	require.NoError(t, err)

	resp, err := env.service.VerifyEmail(ctx, VerifyEmailRequest{
		ActionToken: reg.ActionToken,
		Code:        env.mailer.verifyCodes["hank@example.com"],
	}, "ua", "127.0.0.1")
	require.NoError(t, err)

	claims, err := env.service.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, env.service.LogoutAll(ctx, claims.UserID))

	// The version bump rejects tokens minted before logout-all.
	_, err = env.service.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestResetPasswordRevokesSessionsAndConfirms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.service.Register(ctx, RegisterRequest{
		Email:    "fay@example.com",
		Password: "old-password-1",
		Name:     "Fay",
	})
	require.NoError(t, err)

	_, err = env.service.VerifyEmail(ctx, VerifyEmailRequest{
		ActionToken: reg.ActionToken,
		Code:        env.mailer.verifyCodes["fay@example.com"],
	}, "ua", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, env.service.ForgotPassword(ctx, "fay@example.com"))
	resetCode := env.mailer.resetCodes["fay@example.com"]
	require.NotEmpty(t, resetCode)

	err = env.service.ResetPassword(ctx, ResetPasswordRequest{
		Email:       "fay@example.com",
		Code:        resetCode,
		NewPassword: "new-password-1",
	})
	require.NoError(t, err)

	assert.Contains(t, env.mailer.confirmations, "fay@example.com")

	_, err = env.service.Login(ctx, LoginRequest{
		Email:    "fay@example.com",
		Password: "old-password-1",
	}, "ua", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := env.service.Login(ctx, LoginRequest{
		Email:    "fay@example.com",
		Password: "new-password-1",
	}, "ua", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Tokens.AccessToken)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	env := newTestEnv(t)

	err := env.service.ForgotPassword(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, env.mailer.resetCodes)
}
