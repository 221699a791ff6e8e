package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/dto"
	"basegraph.app/roster/internal/http/middleware"
	"basegraph.app/roster/internal/service"
)

const (
	stateCookieName = "roster_oauth_state"
	stateMaxAge     = 600
)

type AuthHandlerConfig struct {
	DashboardURL  string
	CookieDomain  string
	SecureCookies bool
	SessionTTL    time.Duration
}

type AuthHandler struct {
	auth   service.AuthService
	tokens service.TokenIssuer
	cfg    AuthHandlerConfig
}

// NewAuthHandler builds the auth endpoints. tokens may be nil, which disables /auth/token.
func NewAuthHandler(auth service.AuthService, tokens service.TokenIssuer, cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, cfg: cfg}
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := generateState()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to initiate login"})
		return
	}

	authURL, err := h.auth.GetAuthorizationURL(state)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get authorization URL", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to initiate login"})
		return
	}

	h.setCookie(c, stateCookieName, state, stateMaxAge)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	if errParam := c.Query("error"); errParam != "" {
		slog.WarnContext(ctx, "OAuth error", "error", errParam, "description", c.Query("error_description"))
		h.redirectWithError(c, errParam)
		return
	}

	storedState, err := c.Cookie(stateCookieName)
	if err != nil || storedState == "" || c.Query("state") != storedState {
		slog.WarnContext(ctx, "state mismatch")
		h.redirectWithError(c, "invalid_state")
		return
	}
	h.setCookie(c, stateCookieName, "", -1)

	code := c.Query("code")
	if code == "" {
		h.redirectWithError(c, "no_code")
		return
	}

	user, session, err := h.auth.HandleCallback(ctx, code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			h.redirectWithError(c, "invalid_code")
			return
		}
		slog.ErrorContext(ctx, "failed to handle callback", "error", err)
		h.redirectWithError(c, "callback_failed")
		return
	}

	h.setCookie(c, middleware.SessionCookieName, strconv.FormatInt(session.ID, 10), int(h.sessionTTL().Seconds()))
	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)

	c.Redirect(http.StatusTemporaryRedirect, h.cfg.DashboardURL+"/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if sessionID, err := strconv.ParseInt(cookie, 10, 64); err == nil && sessionID > 0 {
			if err := h.auth.Logout(ctx, sessionID); err != nil {
				slog.WarnContext(ctx, "failed to delete session", "error", err, "session_id", sessionID)
			}
		}
	}

	h.setCookie(c, middleware.SessionCookieName, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the session user. Mounted behind RequireAuth.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	if identity.SessionID == 0 {
		c.JSON(http.StatusOK, dto.UserResponse{ID: formatID(identity.UserID), Email: identity.Email})
		return
	}

	user, err := h.auth.ValidateSession(c.Request.Context(), identity.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Token exchanges the current session for a short-lived bearer token.
func (h *AuthHandler) Token(c *gin.Context) {
	if h.tokens == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "bearer tokens are not enabled", Code: "tokens_disabled"})
		return
	}

	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	token, expiresAt, err := h.tokens.Issue(identity.UserID, identity.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenResponse(token, expiresAt))
}

func (h *AuthHandler) sessionTTL() time.Duration {
	if h.cfg.SessionTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return h.cfg.SessionTTL
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", h.cfg.CookieDomain, h.cfg.SecureCookies, true)
}

func (h *AuthHandler) redirectWithError(c *gin.Context, code string) {
	c.Redirect(http.StatusTemporaryRedirect, h.cfg.DashboardURL+"?auth_error="+code)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
