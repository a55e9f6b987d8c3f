package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwks"
	clerkjwt "github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/rs/zerolog"
)

// clerkSessionCookie is the cookie Clerk's frontend SDKs set.
const clerkSessionCookie = "__session"

// ClerkSessions resolves sessions from Clerk-issued session tokens.
// Used when auth.provider is "clerk".
type ClerkSessions struct {
	logger *zerolog.Logger
	client *jwks.Client

	mu   sync.RWMutex
	keys map[string]*clerk.JSONWebKey
}

// NewClerkSessions sets the Clerk secret key and prepares a JWKS client.
func NewClerkSessions(secretKey string, logger *zerolog.Logger) *ClerkSessions {
	clerk.SetKey(secretKey)
	return &ClerkSessions{
		logger: logger,
		client: jwks.NewClient(&clerk.ClientConfig{}),
		keys:   make(map[string]*clerk.JSONWebKey),
	}
}

// ResolveSession verifies the token from the Authorization header or the
// Clerk session cookie. Invalid tokens yield no session.
func (s *ClerkSessions) ResolveSession(r *http.Request) (*model.Session, error) {
	token := requestToken(r, clerkSessionCookie)
	if token == "" {
		return nil, nil
	}

	ctx := r.Context()
	decoded, err := clerkjwt.Decode(ctx, &clerkjwt.DecodeParams{Token: token})
	if err != nil {
		return nil, nil
	}

	jwk, err := s.key(ctx, decoded.KeyID)
	if err != nil {
		return nil, err
	}

	claims, err := clerkjwt.Verify(ctx, &clerkjwt.VerifyParams{Token: token, JWK: jwk})
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejected clerk session token")
		return nil, nil
	}

	session := &model.Session{UserID: claims.Subject}
	if claims.Expiry != nil {
		session.ExpiresAt = time.Unix(*claims.Expiry, 0).UTC()
	}
	return session, nil
}

func (s *ClerkSessions) key(ctx context.Context, kid string) (*clerk.JSONWebKey, error) {
	s.mu.RLock()
	jwk, ok := s.keys[kid]
	s.mu.RUnlock()
	if ok {
		return jwk, nil
	}

	jwk, err := clerkjwt.GetJSONWebKey(ctx, &clerkjwt.GetJSONWebKeyParams{
		KeyID:      kid,
		JWKSClient: s.client,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.keys[kid] = jwk
	s.mu.Unlock()
	return jwk, nil
}
