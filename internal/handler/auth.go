package handler

import (
	"net/http"

	"github.com/deppfellow/mongo-starter/internal/middleware"
	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/deppfellow/mongo-starter/internal/service"
	"github.com/deppfellow/mongo-starter/internal/validation"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

type CredentialsRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name" validate:"omitempty,max=100"`
}

func (r *CredentialsRequest) Validate() error {
	return validation.Struct(r)
}

type EmailSignInRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

func (r *EmailSignInRequest) Validate() error {
	return validation.Struct(r)
}

type EmailCallbackRequest struct {
	Token string `query:"token" validate:"required"`
}

func (r *EmailCallbackRequest) Validate() error {
	return validation.Struct(r)
}

type SignInResponse struct {
	OK    bool        `json:"ok"`
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type AcceptedResponse struct {
	OK bool `json:"ok"`
}

type SessionResponse struct {
	OK      bool           `json:"ok"`
	Session *model.Session `json:"session"`
}

// SignInWithCredentials handles POST /api/auth/credentials.
func (h *AuthHandler) SignInWithCredentials(c echo.Context, req *CredentialsRequest) (*SignInResponse, error) {
	result, err := h.auth.SignInWithCredentials(c.Request().Context(), req.Email, req.Name)
	if err != nil {
		return nil, err
	}
	return h.signedIn(c, result), nil
}

// RequestEmailLink handles POST /api/auth/email.
func (h *AuthHandler) RequestEmailLink(c echo.Context, req *EmailSignInRequest) (*AcceptedResponse, error) {
	if err := h.auth.RequestSignInLink(c.Request().Context(), req.Email); err != nil {
		return nil, err
	}
	return &AcceptedResponse{OK: true}, nil
}

// EmailCallback handles GET /api/auth/callback/email?token=.
func (h *AuthHandler) EmailCallback(c echo.Context, req *EmailCallbackRequest) (*SignInResponse, error) {
	result, err := h.auth.SignInWithLink(c.Request().Context(), req.Token)
	if err != nil {
		return nil, err
	}
	return h.signedIn(c, result), nil
}

// GetSession handles GET /api/auth/session.
func (h *AuthHandler) GetSession(c echo.Context, _ *validation.Empty) (*SessionResponse, error) {
	return &SessionResponse{OK: true, Session: middleware.GetSession(c)}, nil
}

// signedIn sets the session cookie for browser clients and builds the body.
func (h *AuthHandler) signedIn(c echo.Context, result *service.SignInResult) *SignInResponse {
	c.SetCookie(&http.Cookie{
		Name:     service.SessionCookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.Session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.server.Config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	return &SignInResponse{OK: true, Token: result.Token, User: result.User}
}
