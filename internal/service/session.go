package service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/deppfellow/mongo-starter/internal/config"
	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the session token for browser clients.
const SessionCookieName = "session_token"

// Token purposes. A sign-in link token can never be used as a session.
const (
	purposeSession    = "session"
	purposeSignInLink = "signin_link"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongPurpose = errors.New("token issued for a different purpose")
)

type sessionClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 tokens signed with the auth secret.
type SessionManager struct {
	secret        []byte
	sessionMaxAge time.Duration
	linkMaxAge    time.Duration
	now           func() time.Time
}

func NewSessionManager(cfg config.AuthConfig) *SessionManager {
	return &SessionManager{
		secret:        []byte(cfg.SecretKey),
		sessionMaxAge: cfg.SessionMaxAge,
		linkMaxAge:    cfg.LinkMaxAge,
		now:           time.Now,
	}
}

// IssueSession signs a session token for user.
func (m *SessionManager) IssueSession(user *model.User) (string, *model.Session, error) {
	now := m.now()
	expires := now.Add(m.sessionMaxAge)

	token, err := m.sign(sessionClaims{
		Email:   user.Email,
		Name:    user.Name,
		Purpose: purposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	if err != nil {
		return "", nil, err
	}

	return token, &model.Session{
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		Name:      user.Name,
		ExpiresAt: expires.UTC().Truncate(time.Second),
	}, nil
}

// IssueSignInLink signs a short-lived token that proves control of email.
func (m *SessionManager) IssueSignInLink(email string) (string, error) {
	now := m.now()
	return m.sign(sessionClaims{
		Email:   model.NormalizeEmail(email),
		Purpose: purposeSignInLink,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   model.NormalizeEmail(email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.linkMaxAge)),
		},
	})
}

// VerifySignInLink returns the address a link token was issued for.
func (m *SessionManager) VerifySignInLink(token string) (string, error) {
	claims, err := m.parse(token, purposeSignInLink)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}

// ResolveSession reads the session token from the Authorization header or the
// session cookie. A missing, malformed or expired token yields no session.
func (m *SessionManager) ResolveSession(r *http.Request) (*model.Session, error) {
	token := requestToken(r, SessionCookieName)
	if token == "" {
		return nil, nil
	}

	claims, err := m.parse(token, purposeSession)
	if err != nil {
		return nil, nil
	}

	session := &model.Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return session, nil
}

func (m *SessionManager) sign(claims sessionClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *SessionManager) parse(token, purpose string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

// requestToken returns the bearer token, falling back to the named cookie.
func requestToken(r *http.Request, cookieName string) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
