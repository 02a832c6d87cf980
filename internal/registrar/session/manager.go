package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/pkg/cryptox"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/jwtx"
)

// CookieName is the session cookie. Sessions last DefaultTTL unless
// configured otherwise.
const (
	CookieName = "registrar.sid"
	DefaultTTL = 24 * time.Hour

	issuer = "registrar"
)

// Manager issues, resolves and destroys sessions. The cookie carries a
// signed token naming a random session id; the store holds the session
// under the id's fingerprint.
type Manager struct {
	Store  Store
	Tokens *jwtx.HS256
	TTL    time.Duration
	Secure bool
	Now    func() time.Time
}

// NewManager signs cookies with secret, which must be at least
// jwtx.MinSecretLength bytes. secure sets the cookie's Secure flag.
func NewManager(store Store, secret []byte, ttl time.Duration, secure bool) (*Manager, error) {
	tokens, err := jwtx.NewHS256(secret, issuer)
	if err != nil {
		return nil, fmt.Errorf("session secret: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		Store:  store,
		Tokens: tokens,
		TTL:    ttl,
		Secure: secure,
		Now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Issue creates a session for u and sets the cookie on w.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, u domain.User) (domain.Session, error) {
	now := m.Now()

	sid, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Session{}, err
	}

	s := domain.Session{
		ID:        cryptox.FingerprintToken(sid),
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.TTL),
	}
	if err := m.Store.Save(ctx, s); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}

	token, err := m.Tokens.Sign(jwtx.NewSessionClaims(sid, m.TTL, issuer, now))
	if err != nil {
		_ = m.Store.Delete(ctx, s.ID)
		return domain.Session{}, fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, m.cookie(token, s.ExpiresAt, int(m.TTL.Seconds())))
	return s, nil
}

// Resolve returns the session named by the request cookie. Missing,
// tampered and expired cookies resolve to ok=false.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (domain.Session, bool, error) {
	sid, ok := m.sessionID(r)
	if !ok {
		return domain.Session{}, false, nil
	}

	s, err := m.Store.Load(ctx, cryptox.FingerprintToken(sid), m.Now())
	if errors.Is(err, ErrNotFound) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	return s, true, nil
}

// Destroy removes the request's session, if any, and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer http.SetCookie(w, m.cookie("", time.Unix(0, 0), -1))

	sid, ok := m.sessionID(r)
	if !ok {
		return nil
	}
	return m.Store.Delete(ctx, cryptox.FingerprintToken(sid))
}

// Authenticate implements httpx.Authenticator.
func (m *Manager) Authenticate(r *http.Request) (httpx.Principal, bool, error) {
	s, ok, err := m.Resolve(r.Context(), r)
	if err != nil || !ok {
		return httpx.Principal{}, false, err
	}
	return httpx.Principal{
		SessionID:    s.ID,
		UserID:       s.UserID,
		Username:     s.Username,
		Role:         string(s.Role),
		Capabilities: s.Role.Capabilities(),
	}, true, nil
}

// Purge removes expired sessions from the store.
func (m *Manager) Purge(ctx context.Context) (int64, error) {
	return m.Store.Purge(ctx, m.Now())
}

// sessionID extracts the session id from a verified cookie token.
func (m *Manager) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	claims, err := m.Tokens.Verify(c.Value, m.Now())
	if err != nil {
		return "", false
	}
	return claims.SID, true
}

// cookie builds the session cookie. A negative maxAge deletes it.
func (m *Manager) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
