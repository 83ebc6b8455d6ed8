package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homebudget/internal/auth"
	apperrors "homebudget/internal/errors"
	"homebudget/internal/logger"
	"homebudget/internal/middleware"
	"homebudget/internal/uuid"
)

const oauthStateCookie = "oauth_state"

// AuthHandler handles the sign-in flow and the session cookie.
type AuthHandler struct {
	provider     auth.Provider
	sessions     *auth.Sessions
	allowed      func(email string) bool
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. Cookies are marked Secure when
// secureCookie is set.
func NewAuthHandler(provider auth.Provider, sessions *auth.Sessions, allowed func(email string) bool, secureCookie bool) *AuthHandler {
	return &AuthHandler{provider: provider, sessions: sessions, allowed: allowed, secureCookie: secureCookie}
}

// MeResponse describes the signed-in user.
type MeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Login redirects to the identity provider.
// @Summary     Start Google sign-in
// @Description Redirects to the Google consent screen with a one-time state
// @Tags        auth
// @Success     307 "Redirect to the identity provider"
// @Router      /auth/oauth/google [get]
func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.New()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/auth", "", h.secureCookie, true)
	c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthCodeURL(state))
}

// Callback completes sign-in and sets the session cookie.
// @Summary     Google sign-in callback
// @Description Exchanges the authorization code, checks the allow-list and sets the session cookie
// @Tags        auth
// @Param       code  query string true "Authorization code"
// @Param       state query string true "State issued by the login redirect"
// @Success     303 "Redirect to the application"
// @Failure     400 {object} ErrorResponse "Missing code or state mismatch"
// @Failure     401 {object} ErrorResponse "Sign-in failed or email not allowed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		respondWithError(c, apperrors.FieldError("state", "does not match the sign-in request"))
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/auth", "", h.secureCookie, true)

	code := c.Query("code")
	if code == "" {
		respondWithError(c, apperrors.FieldError("code", "is required"))
		return
	}

	user, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		logger.Get().Warnw("oauth exchange failed", "error", err)
		respondWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Sign-in failed"))
		return
	}
	if h.allowed != nil && !h.allowed(user.Email) {
		logger.Get().Warnw("sign-in refused", "email", user.Email)
		respondWithError(c, apperrors.ErrEmailNotAllowed)
		return
	}

	token, err := h.sessions.Issue(*user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.sessions.TTL().Seconds()), "/", "", h.secureCookie, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session cookie.
// @Summary     Sign out
// @Tags        auth
// @Produce     json
// @Success     200 {object} OKResponse
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

// Me returns the signed-in user.
// @Summary     Current user
// @Tags        auth
// @Produce     json
// @Security    SessionAuth
// @Success     200 {object} MeResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MeResponse{ID: userID, Email: c.GetString("email")})
}
