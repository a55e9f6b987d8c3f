package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/mongo-starter/internal/config"
	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var issuedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSessions(secret string) *SessionManager {
	m := NewSessionManager(config.AuthConfig{
		SecretKey:     secret,
		SessionMaxAge: 24 * time.Hour,
		LinkMaxAge:    15 * time.Minute,
	})
	m.now = func() time.Time { return issuedAt }
	return m
}

func testUser() *model.User {
	return &model.User{ID: primitive.NewObjectID(), Email: "ada@example.com", Name: "Ada"}
}

func TestResolveSessionFromBearerAndCookie(t *testing.T) {
	m := newTestSessions("s3cret")
	user := testUser()

	token, issued, err := m.IssueSession(user)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(24*time.Hour), issued.ExpiresAt)

	bearer := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	bearer.Header.Set("Authorization", "Bearer "+token)

	cookie := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	cookie.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	for name, r := range map[string]*http.Request{"bearer": bearer, "cookie": cookie} {
		t.Run(name, func(t *testing.T) {
			session, err := m.ResolveSession(r)
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, user.ID.Hex(), session.UserID)
			assert.Equal(t, "ada@example.com", session.Email)
			assert.Equal(t, "Ada", session.Name)
			assert.Equal(t, issued.ExpiresAt, session.ExpiresAt)
		})
	}
}

func TestResolveSessionWithoutToken(t *testing.T) {
	session, err := newTestSessions("s3cret").ResolveSession(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestResolveSessionRejectsBadTokens(t *testing.T) {
	m := newTestSessions("s3cret")
	token, _, err := m.IssueSession(testUser())
	require.NoError(t, err)

	expired := newTestSessions("s3cret")
	expired.now = func() time.Time { return issuedAt.Add(25 * time.Hour) }

	link, err := m.IssueSignInLink("ada@example.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		m     *SessionManager
		token string
	}{
		{"expired", expired, token},
		{"wrong secret", newTestSessions("other"), token},
		{"sign-in link", m, link},
		{"garbage", m, "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Bearer "+tt.token)

			session, err := tt.m.ResolveSession(r)
			require.NoError(t, err)
			assert.Nil(t, session)
		})
	}
}

func TestSignInLinkRoundTrip(t *testing.T) {
	m := newTestSessions("s3cret")

	link, err := m.IssueSignInLink("  Ada@Example.com ")
	require.NoError(t, err)

	email, err := m.VerifySignInLink(link)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)

	late := newTestSessions("s3cret")
	late.now = func() time.Time { return issuedAt.Add(16 * time.Minute) }
	_, err = late.VerifySignInLink(link)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySignInLinkRejectsSessionToken(t *testing.T) {
	m := newTestSessions("s3cret")
	token, _, err := m.IssueSession(testUser())
	require.NoError(t, err)

	_, err = m.VerifySignInLink(token)
	assert.ErrorIs(t, err, ErrWrongPurpose)
}

func TestRequestTokenPrefersBearer(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
	assert.Equal(t, "header-token", requestToken(r, SessionCookieName))

	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Equal(t, "cookie-token", requestToken(r, SessionCookieName))
}
