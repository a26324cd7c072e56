// AngelaMos | 2026
// session.go

package auth

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/carterperez-dev/invoicery/internal/config"
	"github.com/carterperez-dev/invoicery/internal/core"
	"github.com/carterperez-dev/invoicery/internal/middleware"
)

// SessionManager backs the browser cookie with the same identity a
// bearer token carries, so server-rendered pages skip the token dance.
type SessionManager struct {
	store      *sessions.CookieStore
	cookieName string
}

func NewSessionManager(cfg config.SessionConfig) *SessionManager {
	store := sessions.NewCookieStore([]byte(cfg.AuthKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{
		store:      store,
		cookieName: cfg.CookieName,
	}
}

func (m *SessionManager) Issue(
	w http.ResponseWriter,
	r *http.Request,
	claims *middleware.AccessTokenClaims,
) error {
	session, err := m.store.Get(r, m.cookieName)
	if err != nil {
		// A tampered or stale cookie still yields a fresh session.
		session, _ = m.store.New(r, m.cookieName)
	}

	session.Values["user_id"] = claims.UserID
	session.Values["role"] = claims.Role
	session.Values["verified"] = claims.Verified
	session.Values["token_version"] = claims.TokenVersion

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (m *SessionManager) VerifySession(
	r *http.Request,
) (*middleware.AccessTokenClaims, error) {
	session, err := m.store.Get(r, m.cookieName)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", core.ErrTokenInvalid)
	}

	if session.IsNew {
		return nil, fmt.Errorf("no session: %w", core.ErrUnauthorized)
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("session missing identity: %w", core.ErrTokenInvalid)
	}

	role, _ := session.Values["role"].(string)
	verified, _ := session.Values["verified"].(bool)
	tokenVersion, _ := session.Values["token_version"].(int)

	return &middleware.AccessTokenClaims{
		UserID:       userID,
		Role:         role,
		Verified:     verified,
		TokenVersion: tokenVersion,
	}, nil
}

func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) {
	session, err := m.store.Get(r, m.cookieName)
	if err != nil {
		return
	}

	session.Options.MaxAge = -1
	//nolint:errcheck // best-effort cookie removal
	_ = session.Save(r, w)
}

var _ middleware.SessionVerifier = (*SessionManager)(nil)
